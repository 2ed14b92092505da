// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package core

import (
	"bytes"
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/syn-4ck/reptor/api"
	"github.com/syn-4ck/reptor/config"
	"github.com/syn-4ck/reptor/plugins"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("compiled-in plugins", func() {

	var opts config.Options
	var cfg *config.Config
	var reg *plugins.Registry

	BeforeEach(func() {
		opts = config.Options{Fs: afero.NewMemMapFs(), Home: "/home/r", ShareDir: "/share"}
		var err error
		cfg, err = config.Load(opts)
		Expect(err).NotTo(HaveOccurred())

		reg = plugins.NewRegistry()
		add := func(u *plugins.Unit, path string, tier plugins.Tier) {
			reg.Insert(plugins.DocsFor(u, plugins.Candidate{Path: path, Tier: tier}), u)
		}
		add(NewConfUnit(), "builtin:Conf", plugins.TierCore)
		add(NewPluginsUnit(), "builtin:Plugins", plugins.TierCore)
		add(&plugins.Unit{Identifier: "Projects", GroupTag: "tools", Meta: api.Meta{Version: "1.0"}},
			"/share/core/projects.lua", plugins.TierCore)
		add(&plugins.Unit{Identifier: "Projects", GroupTag: "tools", Meta: api.Meta{Version: "2.0", Author: "me"}},
			"/home/r/plugins/projects.lua", plugins.TierUser)
		add(&plugins.Unit{Identifier: "Notes", GroupTag: "upload"}, "/share/core/notes.lua", plugins.TierCore)
		add(&plugins.Unit{Identifier: "Notes", GroupTag: "tools"}, "/home/r/plugins/notes.lua", plugins.TierUser)
	})

	invoke := func(u *plugins.Unit, args ...string) (string, error) {
		GinkgoHelper()
		fs := pflag.NewFlagSet(u.Identifier, pflag.ContinueOnError)
		u.Entry.(plugins.Flagger).SetupFlags(fs)
		Expect(fs.Parse(args)).To(Succeed())
		out := &bytes.Buffer{}
		err := u.Entry.Run(context.Background(), &plugins.Invocation{
			Name:     u.Identifier,
			Args:     fs.Args(),
			Flags:    fs,
			Out:      out,
			Config:   cfg,
			Registry: reg,
		})
		return out.String(), err
	}

	Context("plugins", func() {

		It("lists the plugins group by group", func() {
			out, err := invoke(NewPluginsUnit())
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`^NAME\s+GROUP\s+ORIGIN\s+OVERWRITES\s+SUMMARY`))
			Expect(out).To(MatchRegexp(`projects\s+tool output processing\s+private\s+core`))
			Expect(out).To(MatchRegexp(`conf\s+configuration\s+core`))

			out, err = invoke(NewPluginsUnit(), "-o", "name")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`^conf\s+projects\s+notes\s+plugins\s*$`))
		})

		It("lists wide", func() {
			out, err := invoke(NewPluginsUnit(), "-o", "wide", "--no-headers")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).NotTo(ContainSubstring("NAME"))
			Expect(out).To(MatchRegexp(`projects\s+tool output processing\s+private\s+core\s+2\.0\s+me\s+/home/r/plugins/projects\.lua`))
		})

		It("sorts", func() {
			out, err := invoke(NewPluginsUnit(), "-o", "name", "--sort-by", "{.Name}")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`^conf\s+notes\s+plugins\s+projects\s*$`))
		})

		It("lists shadowed plugins", func() {
			out, err := invoke(NewPluginsUnit(), "--shadowed")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`notes\s+upload\s+core`))
			Expect(out).NotTo(ContainSubstring("projects"))
		})

		It("renders JSON", func() {
			out, err := invoke(NewPluginsUnit(), "-o", "json")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(MatchRegexp(`"Name":\s*"projects"`))
			Expect(out).To(MatchRegexp(`"Overwrites":\s*"core"`))
		})

		It("rejects invalid output formats", func() {
			_, err := invoke(NewPluginsUnit(), "-o", "foobar")
			Expect(err).To(HaveOccurred())
		})

		When("creating a new plugin", func() {

			It("creates a loadable plugin", func() {
				out, err := invoke(NewPluginsUnit(), "--new", "findings")
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(ContainSubstring(`created new plugin "findings"`))

				u, err := plugins.LoadScript(cfg.Fs(), plugins.Candidate{
					Path: "/home/r/plugins/findings/findings.lua",
					Tier: plugins.TierUser,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(u).NotTo(BeNil())
				DeferCleanup(u.Entry.(io.Closer).Close)
				Expect(u.Identifier).To(Equal("Findings"))
				Expect(plugins.Classify(u.GroupTag)).To(Equal(plugins.GroupOther))

				run := &bytes.Buffer{}
				Expect(u.Entry.Run(context.Background(), &plugins.Invocation{
					Name: "findings", Args: []string{"a", "b"}, Out: run,
				})).To(Succeed())
				Expect(run.String()).To(Equal("Hello from findings! a b\n"))
			})

			It("does not overwrite existing plugins", func() {
				Expect(afero.WriteFile(cfg.Fs(), "/home/r/plugins/findings/findings.lua", []byte("--"), 0o644)).To(Succeed())
				_, err := invoke(NewPluginsUnit(), "--new", "Findings")
				Expect(err).To(MatchError(ContainSubstring("already exists")))
			})

			It("rejects invalid names", func() {
				_, err := invoke(NewPluginsUnit(), "--new", "1st-plugin")
				Expect(err).To(MatchError(ContainSubstring("invalid plugin name")))
			})

		})

	})

	Context("conf", func() {

		It("shows the configuration", func() {
			out, err := invoke(NewConfUnit())
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("community: false"))
			Expect(out).To(ContainSubstring("user: /home/r/plugins"))

			out, err = invoke(NewConfUnit(), "--keys")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("plugin_dirs.user\n"))
		})

		It("changes and saves the configuration", func() {
			out, err := invoke(NewConfUnit(),
				"--set", "community=true",
				"--set", "token=secret",
				"--set", "server=https://demo.sysre.pt")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).NotTo(ContainSubstring("secret"))
			Expect(out).To(ContainSubstring("server: https://demo.sysre.pt"))

			reloaded, err := config.Load(opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Community).To(BeTrue())
			Expect(reloaded.Token).To(Equal("secret"))
		})

		It("rejects invalid settings", func() {
			_, err := invoke(NewConfUnit(), "--set", "bogus=1")
			Expect(err).To(MatchError(ContainSubstring("unknown configuration key")))
			_, err = invoke(NewConfUnit(), "--set", "community")
			Expect(err).To(MatchError(ContainSubstring("expected key=value")))
			exists, _ := afero.Exists(cfg.Fs(), cfg.File())
			Expect(exists).To(BeFalse())
		})

	})

})
