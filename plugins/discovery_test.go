// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("discovering plugin candidates", func() {

	fs := afero.NewOsFs()

	It("finds scripts in the root and one sub-directory level", func() {
		root := tempDir()
		for _, name := range []string{
			"a.lua",
			"notes.txt",
			".hidden.lua",
			"backup.lua~",
			"sub/b.lua",
			"sub/c.txt",
			"sub/.d.lua",
			"sub/deeper/e.lua",
			"__pycache__/f.lua",
			".git/g.lua",
		} {
			writeFile(filepath.Join(root, name), "-- nothing")
		}
		candidates, err := Discover(fs, root, TierOfficial)
		Expect(err).NotTo(HaveOccurred())
		Expect(candidates).To(ConsistOf(
			Candidate{Path: filepath.Join(root, "a.lua"), Tier: TierOfficial},
			Candidate{Path: filepath.Join(root, "sub", "b.lua"), Tier: TierOfficial},
		))
	})

	It("discovers the same candidates again", func() {
		root := tempDir()
		writeFile(filepath.Join(root, "x.lua"), "")
		writeFile(filepath.Join(root, "y", "y.lua"), "")
		writeFile(filepath.Join(root, "z", "z.lua"), "")
		first, err := Discover(fs, root, TierUser)
		Expect(err).NotTo(HaveOccurred())
		Expect(first).To(HaveLen(3))
		second, err := Discover(fs, root, TierUser)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(ConsistOf(first))
	})

	It("treats a missing root as empty", func() {
		candidates, err := Discover(fs, filepath.Join(tempDir(), "nowhere"), TierCommunity)
		Expect(err).NotTo(HaveOccurred())
		Expect(candidates).To(BeEmpty())
	})

	It("reports an unreadable root", func() {
		root := filepath.Join(tempDir(), "plugins")
		writeFile(root, "not a directory")
		_, err := Discover(fs, root, TierCore)
		var derr *DiscoveryError
		Expect(errors.As(err, &derr)).To(BeTrue())
		Expect(derr.Tier).To(Equal(TierCore))
		Expect(derr.Root).To(Equal(root))
		Expect(err.Error()).To(ContainSubstring("cannot discover core plugins"))
	})

	It("returns absolute candidate paths", func() {
		root := tempDir()
		writeFile(filepath.Join(root, "a.lua"), "")
		candidates, err := Discover(afero.NewBasePathFs(fs, root), "/", TierCore)
		Expect(err).NotTo(HaveOccurred())
		Expect(candidates).To(HaveLen(1))
		Expect(filepath.IsAbs(candidates[0].Path)).To(BeTrue())
	})

})
