// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Provides the "reptor plugins" command for listing the loaded plugins and
// for creating new private plugins.

package core

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/syn-4ck/reptor/api"
	"github.com/syn-4ck/reptor/cli"
	"github.com/syn-4ck/reptor/cli/command"
	"github.com/syn-4ck/reptor/plugins"
	"github.com/thediveo/go-plugger/v3"
	"github.com/thediveo/klo"
)

// Builtin custom-columns templates
const (
	// PluginListTemplate defines the custom columns when listing plugins.
	PluginListTemplate = "NAME:{.Name},GROUP:{.Group},ORIGIN:{.Origin},OVERWRITES:{.Overwrites},SUMMARY:{.Summary}"
	// PluginWideListTemplate is like PluginListTemplate, but additionally
	// tacks on version, author and plugin path columns.
	PluginWideListTemplate = "NAME:{.Name},GROUP:{.Group},ORIGIN:{.Origin},OVERWRITES:{.Overwrites},VERSION:{.Version},AUTHOR:{.Author},PATH:{.Path}"

	// NameListTemplate for handling "-o name" and only showing a custom "name"
	// column; this template should be used with no headers shown, as kubectl
	// and others do.
	NameListTemplate = "NAME:{.Name}"
)

// exclusive flag group of the plugins command.
const newOrList = "new-or-list"

// validName matches the names of new plugins, which must be usable as Lua
// identifiers.
var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

func init() {
	plugger.Group[plugins.Builtin]().Register(NewPluginsUnit, plugger.WithPlugin("plugins"))
	plugger.Group[cli.CommandExamples]().Register(Examples, plugger.WithPlugin("core"))
}

// NewPluginsUnit returns the compiled-in “plugins” plugin.
func NewPluginsUnit() *plugins.Unit {
	return &plugins.Unit{
		Identifier: "Plugins",
		GroupTag:   string(plugins.GroupOther),
		Meta: api.Meta{
			Name:    "Plugins",
			Author:  "Syslifters",
			Version: "1.0",
			Tags:    []string{"core", "plugins"},
			Summary: "Lists loaded plugins or creates a new private plugin",
		},
		Entry: &pluginsEntry{},
	}
}

// pluginRow is a single row of the plugin listing.
type pluginRow struct {
	Name       string
	Group      string
	Origin     string
	Overwrites string
	Version    string
	Author     string
	Path       string
	Summary    string
}

type pluginsEntry struct{}

var (
	_ plugins.EntryPoint = (*pluginsEntry)(nil)
	_ plugins.Flagger    = (*pluginsEntry)(nil)
)

func (e *pluginsEntry) SetupFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "",
		"Output format. One of: json|yaml|name|wide|custom-columns=...|custom-columns-file=...|jsonpath=...|jsonpath-file=...")
	fs.Bool("no-headers", false, "When using the default or custom-column output format, don't print headers (default print headers).")
	fs.String("sort-by", "",
		"If non-empty, sort custom-columns using this field specification. The field specification is expressed as a JSONPath expression (e.g. '{.Name}').")
	fs.Bool("shadowed", false, "List only plugins still listed in a group, but overwritten by a plugin in another group.")
	fs.String("new", "", "Create a new private plugin with the specified name.")
	command.Annotate(fs, "new", command.MutualFlagGroupAnnotation, newOrList)
	command.Annotate(fs, "output", command.MutualFlagGroupAnnotation, newOrList)
}

func (e *pluginsEntry) Run(ctx context.Context, inv *plugins.Invocation) error {
	if name, err := inv.Flags.GetString("new"); err == nil && name != "" {
		return newPlugin(inv, name)
	}
	return listPlugins(inv)
}

// listPlugins prints the loaded plugins, group by group.
func listPlugins(inv *plugins.Invocation) error {
	// Get the output CLI flag and prepare a suitable object printer.
	prn, err := getPrinter(inv.Flags)
	if err != nil {
		return err
	}
	// ...throwing in sorting, if asked for. It depends on the object printer
	// if it will honor the sorted data or will just impose its own order
	// anyway.
	if sortby, err := inv.Flags.GetString("sort-by"); err == nil && sortby != "" {
		prn, err = klo.NewSortingPrinter(sortby, prn)
		if err != nil {
			return fmt.Errorf("invalid --sort-by: %w", err)
		}
	}
	shadowed, _ := inv.Flags.GetBool("shadowed")
	rows := []pluginRow{}
	if shadowed {
		for _, d := range inv.Registry.Shadowed() {
			rows = append(rows, row(d))
		}
	} else {
		for _, g := range inv.Registry.Groups() {
			for _, d := range inv.Registry.Group(g) {
				if p, ok := inv.Registry.Lookup(d.Name); !ok || p.Docs != d {
					continue
				}
				rows = append(rows, row(d))
			}
		}
	}
	log.Debugf("listing %d plugins", len(rows))
	return prn.Fprint(inv.Out, rows)
}

// row returns the listing row for the specified plugin docs.
func row(d *api.PluginDocs) pluginRow {
	overwrites := []string{}
	for _, o := range d.Lineage() {
		overwrites = append(overwrites, string(o.Origin))
	}
	return pluginRow{
		Name:       d.Name,
		Group:      plugins.Group(d.Group).Title(),
		Origin:     string(d.Origin),
		Overwrites: strings.Join(overwrites, ","),
		Version:    d.Version,
		Author:     d.Author,
		Path:       d.Path,
		Summary:    d.Summary,
	}
}

// getPrinter returns a value printer configured according to the output format
// chosen by the user, and some more optional output configuration flags.
func getPrinter(fs *pflag.FlagSet) (prn klo.ValuePrinter, err error) {
	outfmt, err := fs.GetString("output")
	if err != nil {
		return
	}
	if outfmt == "name" {
		prn, err = klo.PrinterFromFlag("custom-columns="+NameListTemplate, nil)
		if err != nil {
			panic(err)
		}
		prn.(*klo.CustomColumnsPrinter).HideHeaders = true
		return
	}
	prn, err = klo.PrinterFromFlag(outfmt, &klo.Specs{
		DefaultColumnSpec: PluginListTemplate,
		WideColumnSpec:    PluginWideListTemplate,
	})
	if err != nil {
		return
	}
	if ccprn, ok := prn.(*klo.CustomColumnsPrinter); ok {
		ccprn.Padding = 3
		if noheaders, err := fs.GetBool("no-headers"); err == nil {
			ccprn.HideHeaders = noheaders
		}
	}
	return
}

// newPlugin creates the skeleton of a new private plugin in its own directory
// inside the user plugin directory.
func newPlugin(inv *plugins.Invocation, name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid plugin name %q: must start with a letter and contain only letters, digits and underscores", name)
	}
	lower := strings.ToLower(name)
	dir := filepath.Join(inv.Config.PluginDirs.User, lower)
	path := filepath.Join(dir, lower+plugins.ScriptExt)
	fs := inv.Config.Fs()
	if exists, err := afero.Exists(fs, path); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("plugin file %q already exists", path)
	}
	if p, ok := inv.Registry.Lookup(lower); ok {
		log.Warnf("new plugin %q will overwrite the %s plugin from %q", lower, p.Docs.Origin, p.Docs.Path)
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create plugin directory: %w", err)
	}
	identifier := strings.ToUpper(name[:1]) + name[1:]
	if err := afero.WriteFile(fs, path, []byte(skeleton(identifier, lower)), 0o644); err != nil {
		return fmt.Errorf("cannot write plugin file: %w", err)
	}
	fmt.Fprintf(inv.Out, "created new plugin %q in %q\n", lower, path)
	return nil
}

// skeleton returns the script of a new plugin.
func skeleton(identifier, name string) string {
	return fmt.Sprintf(`-- %[2]s plugin for reptor.
%[1]s = {
  -- one of: configuration, upload, tools, importers, exporters, other
  group = "other",
  meta = {
    name = "%[1]s",
    author = "",
    version = "0.1",
    website = "",
    license = "",
    tags = {},
    summary = "Describe what %[2]s does",
  },
}

-- run gets called with the command line args following "reptor %[2]s",
-- unless they ask for help using "-h" or "--help".
function %[1]s.run(args)
  display("Hello from %[2]s!", table.concat(args, " "))
end

loader = %[1]s
`, identifier, name)
}
