// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/syn-4ck/reptor/config"
	"github.com/syn-4ck/reptor/plugins"
	"golang.org/x/exp/slices"
)

// Annotations of plugin commands.
const (
	OriginAnnotation = "reptor-plugin-origin"
	PathAnnotation   = "reptor-plugin-path"
)

// reservedCommands are added by cobra only when executing the root command.
var reservedCommands = []string{"help", "completion"}

// addPluginCommands adds a command for each plugin listed in the registry's
// command groups, rendering each non-empty group as a cobra command group.
// Group entries whose name has been taken over by a plugin in another group
// get no command, so a name always runs the plugin the name index refers to.
// leading is the number of CLI args in front of the command name.
func addPluginCommands(root *cobra.Command, reg *plugins.Registry, c *config.Config, leading int) {
	for _, g := range reg.Groups() {
		added := false
		for _, d := range reg.Group(g) {
			p, ok := reg.Lookup(d.Name)
			if !ok || p.Docs != d {
				log.Debugf("not adding command for plugin %q from %q: overwritten in another group",
					d.Name, d.Path)
				continue
			}
			if clash := builtinCommand(root, d.Name); clash != "" {
				log.Warnf("ignoring plugin %q from %q: clashes with the %q command",
					d.Name, d.Path, clash)
				continue
			}
			if !added {
				root.AddGroup(&cobra.Group{ID: string(g), Title: heading(g)})
				added = true
			}
			root.AddCommand(pluginCommand(p, string(g), reg, c, leading))
		}
	}
}

// builtinCommand returns the name of the non-plugin command with the
// specified name or alias, if any.
func builtinCommand(root *cobra.Command, name string) string {
	if slices.Contains(reservedCommands, name) {
		return name
	}
	for _, cmd := range root.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return cmd.Name()
		}
	}
	return ""
}

// heading returns the help text heading of a command group.
func heading(g plugins.Group) string {
	title := g.Title()
	return strings.ToUpper(title[:1]) + title[1:] + ":"
}

// pluginCommand returns the command running the specified plugin. Plugins
// implementing plugins.Flagger get their flags parsed by cobra, all other
// plugins get their args as is, minus the leading global flags in front of
// the command name.
func pluginCommand(p *plugins.Plugin, groupID string, reg *plugins.Registry, c *config.Config, leading int) *cobra.Command {
	d := p.Docs
	cmd := &cobra.Command{
		Use:     d.Name,
		Short:   d.Summary,
		Long:    describe(p),
		GroupID: groupID,
		Annotations: map[string]string{
			OriginAnnotation: string(d.Origin),
			PathAnnotation:   d.Path,
		},
	}
	flagger, parsesFlags := p.Unit.Entry.(plugins.Flagger)
	if parsesFlags {
		flagger.SetupFlags(cmd.Flags())
	} else {
		cmd.DisableFlagParsing = true
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		p, ok := reg.Lookup(cmd.Name())
		if !ok {
			return fmt.Errorf("unknown plugin %q", cmd.Name())
		}
		inv := &plugins.Invocation{
			Name:     p.Docs.Name,
			Args:     args,
			Out:      cmd.OutOrStdout(),
			Config:   c,
			Registry: reg,
		}
		if parsesFlags {
			inv.Flags = cmd.Flags()
		} else {
			rest := args[min(leading, len(args)):]
			if wantsHelp(rest) {
				return cmd.Help()
			}
			inv.Args = rest
		}
		log.Debugf("running %s plugin %q from %q", p.Docs.Origin, p.Docs.Name, p.Docs.Path)
		return p.Unit.Entry.Run(cmd.Context(), inv)
	}
	return cmd
}

// wantsHelp returns true if the args ask for help before any "--".
func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-h", "--help":
			return true
		}
	}
	return false
}

// describe returns the long help text of a plugin, including the plugins it
// overwrites.
func describe(p *plugins.Plugin) string {
	d := p.Docs
	var b strings.Builder
	if d.Summary != "" {
		b.WriteString(d.Summary + "\n\n")
	}
	if d.DisplayName != "" {
		fmt.Fprintf(&b, "Plugin:    %s\n", d.DisplayName)
	}
	if d.Author != "" {
		fmt.Fprintf(&b, "Author:    %s\n", d.Author)
	}
	if d.Version != "" {
		fmt.Fprintf(&b, "Version:   %s\n", d.Version)
	}
	if d.Website != "" {
		fmt.Fprintf(&b, "Website:   %s\n", d.Website)
	}
	fmt.Fprintf(&b, "Origin:    %s (%s)\n", d.Origin, d.Path)
	for _, o := range d.Lineage() {
		fmt.Fprintf(&b, "Overwrites %s plugin (%s)\n", o.Origin, o.Path)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
