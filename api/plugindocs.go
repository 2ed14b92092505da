// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// This statically typed data model describes loaded plugins: the metadata
// block a plugin declares about itself, as well as the documentation record
// the plugin registry derives from it. The same model is used when rendering
// plugin listings as JSON or YAML.

package api

// Origin tells where a plugin came from, independent of the exact plugin
// directory it was found in.
type Origin string

const (
	// OriginCore plugins ship with reptor: core, official, importer and
	// exporter plugins.
	OriginCore Origin = "core"
	// OriginCommunity plugins are maintained by the community and are only
	// loaded when enabled.
	OriginCommunity Origin = "community"
	// OriginPrivate plugins are the user's own plugins.
	OriginPrivate Origin = "private"
)

// Meta is the optional metadata block a plugin declares. All fields are
// optional and default to their zero values.
type Meta struct {
	// Informational display name; this is NOT the name a plugin gets
	// registered and invoked under.
	Name    string   `json:"name" yaml:"name"`
	Author  string   `json:"author" yaml:"author"`
	Version string   `json:"version" yaml:"version"`
	Website string   `json:"website" yaml:"website"`
	License string   `json:"license" yaml:"license"`
	Tags    []string `json:"tags" yaml:"tags"`
	// Short one-line help text.
	Summary string `json:"summary" yaml:"summary"`
}

// PluginDocs describes a loaded plugin. PluginDocs are never modified after
// they have been handed out by the plugin registry.
type PluginDocs struct {
	// Unique, lower-case plugin name derived from the plugin's entry point
	// identifier; plugins are invoked by this name.
	Name string `json:"name" yaml:"name"`
	// The free-form name from the plugin's metadata block.
	DisplayName string `json:"display-name,omitempty" yaml:"display-name,omitempty"`
	// Absolute path of the plugin file, or "builtin:<identifier>" for plugins
	// compiled into reptor.
	Path string `json:"path" yaml:"path"`
	// Where this plugin came from.
	Origin Origin `json:"origin" yaml:"origin"`
	// Command group identifier the plugin belongs to.
	Group string `json:"group" yaml:"group"`

	Author  string   `json:"author,omitempty" yaml:"author,omitempty"`
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
	Website string   `json:"website,omitempty" yaml:"website,omitempty"`
	License string   `json:"license,omitempty" yaml:"license,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary string   `json:"summary,omitempty" yaml:"summary,omitempty"`

	// The plugin this plugin replaced, if any. This is a diagnostic
	// back-reference only: the overwritten plugin must never be run.
	Overwrites *PluginDocs `json:"overwrites,omitempty" yaml:"overwrites,omitempty"`
}

// Lineage returns the chain of plugins overwritten by this plugin, most
// recently overwritten first.
func (d *PluginDocs) Lineage() []*PluginDocs {
	var lineage []*PluginDocs
	for o := d.Overwrites; o != nil; o = o.Overwrites {
		lineage = append(lineage, o)
	}
	return lineage
}
