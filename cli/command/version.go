// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/syn-4ck/reptor"
	"github.com/syn-4ck/reptor/api"
	"github.com/syn-4ck/reptor/cli"
	"github.com/thediveo/go-plugger/v3"
)

func init() {
	plugger.Group[cli.SetupCLI]().Register(
		VersionSetupCLI, plugger.WithPlugin("version"))
}

// VersionSetupCLI adds the “version” command. The semantic version is the one
// defined for the main reptor package, unless overridden by a SemVer plugin.
// In addition, the version command tells the number of loaded plugins per
// origin.
func VersionSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version (with the number of loaded plugins).",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			semver := reptor.SemVersion
			for _, pluginsemver := range plugger.Group[cli.SemVer]().Symbols() {
				semver = pluginsemver()
				break
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (plugins: %s)\n",
				cmd.Parent().Name(), semver, pluginCounts())
		},
	})
}

// pluginCounts renders the number of loaded plugins per origin.
func pluginCounts() string {
	reg := Registry()
	if reg == nil {
		return "none"
	}
	counts := map[api.Origin]int{}
	for _, name := range reg.Names() {
		p, _ := reg.Lookup(name)
		counts[p.Docs.Origin]++
	}
	parts := []string{}
	for _, origin := range []api.Origin{api.OriginCore, api.OriginCommunity, api.OriginPrivate} {
		parts = append(parts, fmt.Sprintf("%d %s", counts[origin], origin))
	}
	return strings.Join(parts, ", ")
}
