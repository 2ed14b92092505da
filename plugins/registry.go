// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"io"
	"sort"
	"strings"

	"github.com/syn-4ck/reptor/api"
	"golang.org/x/exp/slices"
)

// Plugin is a registered plugin: its documentation and its loaded unit.
type Plugin struct {
	Docs *api.PluginDocs
	Unit *Unit
}

// Registry indexes loaded plugins by name and keeps them per command group in
// loading order. A Registry gets populated once and is read-only afterwards;
// it is not safe for concurrent modification.
type Registry struct {
	loaded map[string]*Plugin
	groups map[Group][]*api.PluginDocs
	units  []*Unit // all units ever inserted, for Close.
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		loaded: map[string]*Plugin{},
		groups: map[Group][]*api.PluginDocs{},
	}
}

// Insert registers a plugin, overwriting any plugin of the same name. Insert
// stores and returns a copy of docs: if the group of docs already lists a
// plugin with the same name, that plugin is removed from the group and
// referenced as the copy's Overwrites, and the copy is then appended to the
// group. Independent of the group, the name index then refers to the new
// plugin.
func (r *Registry) Insert(docs *api.PluginDocs, u *Unit) *api.PluginDocs {
	d := *docs
	d.Overwrites = nil
	g := Group(d.Group)
	seq := r.groups[g]
	if idx := slices.IndexFunc(seq, func(e *api.PluginDocs) bool { return e.Name == d.Name }); idx >= 0 {
		d.Overwrites = seq[idx]
		seq = slices.Delete(seq, idx, idx+1)
	}
	r.groups[g] = append(seq, &d)
	r.loaded[d.Name] = &Plugin{Docs: &d, Unit: u}
	r.units = append(r.units, u)
	return &d
}

// Lookup returns the plugin registered under the specified name, if any.
// Names are case-insensitive.
func (r *Registry) Lookup(name string) (*Plugin, bool) {
	p, ok := r.loaded[strings.ToLower(name)]
	return p, ok
}

// IsLoaded returns true if a plugin is registered under the specified name.
func (r *Registry) IsLoaded(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the names of all registered plugins in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.loaded))
	for name := range r.loaded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int { return len(r.loaded) }

// Group returns the plugins listed in the specified command group, in
// order.
func (r *Registry) Group(g Group) []*api.PluginDocs {
	return slices.Clone(r.groups[g])
}

// Groups returns the command groups listing at least one plugin, in display
// order.
func (r *Registry) Groups() []Group {
	gs := []Group{}
	for _, g := range groups {
		if len(r.groups[g]) != 0 {
			gs = append(gs, g)
		}
	}
	return gs
}

// Shadowed returns the group entries whose name is nowadays served by a
// plugin from another group. This happens when a later tier redefines a
// plugin name in a different group: the group of the earlier plugin then
// still lists it, while invoking the name runs the later plugin.
func (r *Registry) Shadowed() []*api.PluginDocs {
	shadowed := []*api.PluginDocs{}
	for _, g := range groups {
		for _, d := range r.groups[g] {
			if p, ok := r.loaded[d.Name]; !ok || p.Docs != d {
				shadowed = append(shadowed, d)
			}
		}
	}
	return shadowed
}

// Close releases the resources of all units ever registered, including the
// overwritten ones. The registry must not be used afterwards.
func (r *Registry) Close() {
	for _, u := range r.units {
		if u == nil {
			continue
		}
		if closer, ok := u.Entry.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	r.units = nil
}
