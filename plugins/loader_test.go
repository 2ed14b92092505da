// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/syn-4ck/reptor/api"
	"github.com/syn-4ck/reptor/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("loading plugin scripts", func() {

	fs := afero.NewOsFs()

	load := func(content string) (*Unit, error) {
		GinkgoHelper()
		path := filepath.Join(tempDir(), "projects.lua")
		writeFile(path, content)
		u, err := LoadScript(fs, Candidate{Path: path, Tier: TierCore})
		if u != nil {
			DeferCleanup(u.Entry.(*scriptEntry).Close)
		}
		return u, err
	}

	It("loads a plugin with its metadata", func() {
		u, err := load(`
Projects = {
  group = "tools",
  meta = {
    name = "Project Explorer",
    author = "Syslifters",
    version = "1.2",
    website = "https://github.com/Syslifters/reptor",
    license = "MIT",
    tags = { "projects", " api " },
    summary = "Queries projects",
  },
}
function Projects.run(args) end
loader = Projects
`)
		Expect(err).NotTo(HaveOccurred())
		Expect(u).NotTo(BeNil())
		Expect(u.Identifier).To(Equal("Projects"))
		Expect(u.GroupTag).To(Equal("tools"))
		Expect(u.Meta).To(Equal(api.Meta{
			Name:    "Project Explorer",
			Author:  "Syslifters",
			Version: "1.2",
			Website: "https://github.com/Syslifters/reptor",
			License: "MIT",
			Tags:    []string{"projects", "api"},
			Summary: "Queries projects",
		}))
	})

	It("defaults missing metadata", func() {
		u, err := load(`Bare = { run = function(args) end }
loader = Bare`)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Identifier).To(Equal("Bare"))
		Expect(u.GroupTag).To(BeEmpty())
		Expect(u.Meta).To(Equal(api.Meta{}))
	})

	It("falls back to the file name for anonymous entry points", func() {
		u, err := load(`loader = { run = function(args) end }`)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Identifier).To(Equal("projects"))
	})

	It("picks the first of multiple identifiers", func() {
		u, err := load(`Zeta = { run = function(args) end }
Alpha = Zeta
loader = Zeta`)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Identifier).To(Equal("Alpha"))
	})

	It("reads YAML metadata and comma-separated tags", func() {
		u, err := load(`Nmap = { group = "importer", meta = [[
name: Nmap Importer
author: Syslifters
tags: scanner, network
summary: Formats nmap output
]] }
function Nmap.run(args) end
loader = Nmap`)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Meta.Name).To(Equal("Nmap Importer"))
		Expect(u.Meta.Author).To(Equal("Syslifters"))
		Expect(u.Meta.Tags).To(Equal([]string{"scanner", "network"}))
		Expect(u.Meta.Version).To(BeEmpty())

		u, err = load(`Nmap = { meta = "tags: [a, b]", run = function(args) end }
loader = Nmap`)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Meta.Tags).To(Equal([]string{"a", "b"}))
	})

	DescribeTable("skips scripts without entry point",
		func(content string) {
			u, err := load(content)
			Expect(err).NotTo(HaveOccurred())
			Expect(u).To(BeNil())
		},
		Entry("no loader", `Projects = { run = function(args) end }`),
		Entry("loader not a table", `loader = "Projects"`),
		Entry("loader without run", `loader = { meta = { name = "foo" } }`),
		Entry("empty script", ``),
	)

	DescribeTable("fails on broken scripts",
		func(content, reason string) {
			u, err := load(content)
			Expect(u).To(BeNil())
			var lerr *LoadError
			Expect(errors.As(err, &lerr)).To(BeTrue())
			Expect(lerr.Path).To(HaveSuffix("projects.lua"))
			Expect(err.Error()).To(ContainSubstring(reason))
		},
		Entry("syntax error", `loader = {`, "projects.lua"),
		Entry("raising", `error("boom")`, "boom"),
		Entry("broken YAML metadata", `loader = { meta = "tags: [", run = function(args) end }`, "invalid metadata"),
		Entry("metadata of wrong type", `loader = { meta = 42, run = function(args) end }`, "metadata must be a table or string"),
	)

	It("fails on unreadable scripts", func() {
		_, err := LoadScript(fs, Candidate{Path: filepath.Join(tempDir(), "gone.lua")})
		var lerr *LoadError
		Expect(errors.As(err, &lerr)).To(BeTrue())
	})

	When("running", func() {

		It("passes args and renders output", func() {
			u, err := load(`Projects = { meta = { summary = "projects" } }
function Projects.run(args)
  display("server", config("server"), #args, args[1])
end
loader = Projects`)
			Expect(err).NotTo(HaveOccurred())
			cfg, err := config.Load(config.Options{Fs: afero.NewMemMapFs(), Home: "/h", ShareDir: "/s"})
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Set("server", "https://reports.example.org")).To(Succeed())

			var out bytes.Buffer
			Expect(u.Entry.Run(context.Background(), &Invocation{
				Name:   "projects",
				Args:   []string{"--search", "foo"},
				Out:    &out,
				Config: cfg,
			})).To(Succeed())
			Expect(out.String()).To(Equal("server https://reports.example.org 2 --search\n"))
		})

		It("returns errors raised by the plugin", func() {
			u, err := load(`loader = { run = function(args) error("no project") end }`)
			Expect(err).NotTo(HaveOccurred())
			err = u.Entry.Run(context.Background(), &Invocation{Name: "projects", Out: &bytes.Buffer{}})
			Expect(err).To(MatchError(And(
				ContainSubstring("plugin projects failed"),
				ContainSubstring("no project"))))
		})

	})

})
