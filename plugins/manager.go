// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/syn-4ck/reptor/config"
)

// Manager runs the plugin loading sequence.
type Manager struct {
	cfg      *config.Config
	fs       afero.Fs
	builtins func() []Builtin
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem to discover and load plugin scripts from,
// instead of the filesystem of the configuration.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) { m.fs = fs }
}

// WithBuiltins sets the compiled-in plugins, instead of those registered with
// the Builtin plugin group.
func WithBuiltins(builtins ...Builtin) Option {
	return func(m *Manager) {
		m.builtins = func() []Builtin { return builtins }
	}
}

// NewManager returns a plugin manager for the specified configuration.
func NewManager(cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:      cfg,
		fs:       cfg.Fs(),
		builtins: registeredBuiltins,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// tierRoot is a plugin tier together with its root directory.
type tierRoot struct {
	tier Tier
	root string
}

// tierRoots returns the tiers to load in loading order, leaving out the
// community tier when community plugins are disabled.
func (m *Manager) tierRoots() []tierRoot {
	dirs := m.cfg.PluginDirs
	roots := []tierRoot{
		{TierCore, dirs.Core},
		{TierOfficial, dirs.Official},
	}
	if m.cfg.Community {
		roots = append(roots, tierRoot{TierCommunity, dirs.Community})
	} else {
		log.Debugf("community plugins disabled")
	}
	return append(roots,
		tierRoot{TierImporter, dirs.Importers},
		tierRoot{TierExporter, dirs.Exporters},
		tierRoot{TierUser, dirs.User},
	)
}

// RunLoadingSequence loads all plugins tier by tier and returns the resulting
// registry. The compiled-in plugins are loaded first as part of the core
// tier. Loading is all or nothing: the first discovery or load error aborts
// the loading sequence and no registry is returned.
func (m *Manager) RunLoadingSequence() (*Registry, error) {
	log.Info("loading plugins...")
	reg := NewRegistry()
	for _, tr := range m.tierRoots() {
		if tr.tier == TierCore {
			m.loadBuiltins(reg)
		}
		if tr.root == "" {
			continue
		}
		candidates, err := Discover(m.fs, tr.root, tr.tier)
		if err != nil {
			reg.Close()
			return nil, err
		}
		log.Debugf("found %d %s plugin candidates in %q", len(candidates), tr.tier, tr.root)
		for _, c := range candidates {
			u, err := LoadScript(m.fs, c)
			if err != nil {
				reg.Close()
				return nil, err
			}
			if u == nil {
				continue
			}
			m.register(reg, u, c)
		}
	}
	for _, d := range reg.Shadowed() {
		log.Warnf("plugin %q (%s) is still listed in group %q, but is overwritten by a plugin in another group",
			d.Name, d.Path, Group(d.Group).Title())
	}
	log.Debugf("loaded plugins: %s", strings.Join(reg.Names(), ", "))
	return reg, nil
}

// loadBuiltins registers the compiled-in plugins.
func (m *Manager) loadBuiltins(reg *Registry) {
	for _, builtin := range m.builtins() {
		u := builtin()
		if u == nil || u.Entry == nil || u.Identifier == "" {
			continue
		}
		m.register(reg, u, Candidate{Path: BuiltinPathPrefix + u.Identifier, Tier: TierCore})
	}
}

func (m *Manager) register(reg *Registry, u *Unit, c Candidate) {
	d := reg.Insert(DocsFor(u, c), u)
	if d.Overwrites != nil {
		log.Debugf("%s plugin %q from %q overwrites %s plugin from %q",
			d.Origin, d.Name, d.Path, d.Overwrites.Origin, d.Overwrites.Path)
		return
	}
	log.Debugf("%s plugin %q loaded from %q", d.Origin, d.Name, d.Path)
}
