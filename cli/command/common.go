// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Implements the reptor "root" command with its global CLI flags. The root
// command gets built only after the plugin loading sequence has run, as the
// loaded plugins become commands of their own.

package command

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/syn-4ck/reptor/cli"
	"github.com/syn-4ck/reptor/config"
	"github.com/syn-4ck/reptor/plugins"
	"github.com/thediveo/go-plugger/v3"
	"golang.org/x/exp/slices"
)

// Flag annotation for grouping mutually exclusive flags. Due to the open-ended
// plugin architecture of reptor we cannot directly use cobra's
// MarkFlagsMutuallyExclusive in plugins, but instead plugins need to annotate
// their flags and we then gather the groups with their flag members in order to
// issue MarkFlagsMutuallyExclusive as necessary.
const MutualFlagGroupAnnotation = "mutually-exclusive-group"

// Effective configuration and plugin registry of the current command line.
var (
	cfg      *config.Config
	registry *plugins.Registry
)

// newRootCmd returns a fresh "root" command, thus the reptor CLI itself.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reptor",
		Short: "Automate pentest reporting with SysReptor",
		Long: `reptor is a CLI tool for SysReptor pentest reporting. Almost all of its
commands are plugins: shipped core and official plugins, optional community
plugins, importers, exporters and your own private plugins, with later plugins
overwriting earlier ones of the same name.`,
		// See: https://github.com/spf13/cobra/issues/340
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Run the registered before-the-command plugins
			for _, beforeCmd := range plugger.Group[cli.BeforeCommand]().Symbols() {
				if err := beforeCmd(cmd); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// SetupCLI loads the configuration and all plugins and then returns the root
// command for the specified CLI args (without the program name), with the
// (sub)commands registered via the plugin mechanism as well as a command for
// each loaded plugin.
func SetupCLI(args []string) (*cobra.Command, error) {
	return setupCLI(args, config.Options{})
}

func setupCLI(args []string, opts config.Options, mopts ...plugins.Option) (*cobra.Command, error) {
	rootCmd := newRootCmd()
	cobra.EnableCommandSorting = false
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Configuration file (default $REPTOR_HOME/config.yaml)")
	pf.Bool("community", false, "Load community plugins")

	// Call registered plugins in order to add further CLI args as well as
	// commands to the root command (or below).
	for _, setupCLI := range plugger.Group[cli.SetupCLI]().Symbols() {
		setupCLI(rootCmd)
	}

	// Global flags following the name of a plugin taking its args as is
	// belong to that plugin, so in this case only the flags in front of the
	// command name count.
	lead, tail := splitCommand(args)
	leading, _ := scanGlobals(lead)
	leading.apply()
	g, _ := scanGlobals(args)
	c, reg, err := load(g, opts, mopts)
	if err != nil {
		return nil, err
	}
	if g != leading && len(tail) != 0 && takesRawArgs(rootCmd, reg, tail[0]) {
		reg.Close()
		g = leading
		if c, reg, err = load(g, opts, mopts); err != nil {
			return nil, err
		}
	}
	g.apply()
	Shutdown()
	cfg, registry = c, reg

	addPluginCommands(rootCmd, reg, c, len(lead))
	// Set groups of mutually exclusive flags as annotated.
	mutuallyExclusives(rootCmd)
	// Fill in/expand command example sections, where additional command
	// examples are available.
	for _, cmd := range rootCmd.Commands() {
		examples := cli.Examples(cmd.Name())
		if examples == "" {
			continue
		}
		cmd.Example = examples
	}
	rootCmd.SetArgs(args)
	return rootCmd, nil
}

// load returns the configuration and the plugins loaded according to the
// specified global flags.
func load(g globals, opts config.Options, mopts []plugins.Option) (*config.Config, *plugins.Registry, error) {
	if g.config != "" {
		opts.File = g.config
	}
	c, err := config.Load(opts)
	if err != nil {
		return nil, nil, err
	}
	if g.community {
		c.Community = true
	}
	reg, err := plugins.NewManager(c, mopts...).RunLoadingSequence()
	if err != nil {
		return nil, nil, err
	}
	return c, reg, nil
}

// takesRawArgs returns true if the named command will be a plugin command
// getting its args unparsed.
func takesRawArgs(root *cobra.Command, reg *plugins.Registry, name string) bool {
	if builtinCommand(root, name) != "" {
		return false
	}
	p, ok := reg.Lookup(name)
	if !ok {
		return false
	}
	_, parsesFlags := p.Unit.Entry.(plugins.Flagger)
	return !parsesFlags
}

// Config returns the effective configuration of the most recent SetupCLI.
func Config() *config.Config { return cfg }

// Registry returns the plugin registry of the most recent SetupCLI.
func Registry() *plugins.Registry { return registry }

// Shutdown releases the loaded plugins.
func Shutdown() {
	if registry == nil {
		return
	}
	registry.Close()
	registry = nil
}

// Annotate annotates the flag identified by name with the key=ann.
func Annotate(fs *pflag.FlagSet, flagname, key, ann string) {
	_ = fs.SetAnnotation(flagname, key, []string{ann})
}

// exclusivesMap maps an "exclusive" group (name) to its mutually exclusive
// flags (names).
type exclusivesMap map[string][]string

// mutuallyExclusives starts with the specified command and collects mutually
// exclusive flags as identified by their annotations. It then configures them
// into their groups. This process then recursively repeats with each child
// command.
func mutuallyExclusives(cmd *cobra.Command) {
	exclusives := exclusivesMap{}
	cmd.MarkFlagsMutuallyExclusive() // hack: trigger merging if not already happened
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		group := flag.Annotations[MutualFlagGroupAnnotation]
		if len(group) != 1 {
			return
		}
		members := exclusives[group[0]]
		if slices.Contains(members, flag.Name) {
			return
		}
		exclusives[group[0]] = append(members, flag.Name)
	})
	for _, members := range exclusives {
		cmd.MarkFlagsMutuallyExclusive(members...)
	}
	for _, subcmd := range cmd.Commands() {
		mutuallyExclusives(subcmd)
	}
}
