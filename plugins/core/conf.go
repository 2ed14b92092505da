// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Provides the "reptor conf" command for showing and changing the reptor
// configuration.

package core

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/syn-4ck/reptor/api"
	"github.com/syn-4ck/reptor/plugins"
	"github.com/thediveo/go-plugger/v3"
)

func init() {
	plugger.Group[plugins.Builtin]().Register(NewConfUnit, plugger.WithPlugin("conf"))
}

// NewConfUnit returns the compiled-in “conf” plugin.
func NewConfUnit() *plugins.Unit {
	return &plugins.Unit{
		Identifier: "Conf",
		GroupTag:   string(plugins.GroupConfiguration),
		Meta: api.Meta{
			Name:    "Conf",
			Author:  "Syslifters",
			Version: "1.0",
			Tags:    []string{"core", "configuration"},
			Summary: "Shows or changes the reptor configuration",
		},
		Entry: &confEntry{},
	}
}

type confEntry struct{}

var (
	_ plugins.EntryPoint = (*confEntry)(nil)
	_ plugins.Flagger    = (*confEntry)(nil)
)

func (e *confEntry) SetupFlags(fs *pflag.FlagSet) {
	fs.StringArray("set", nil, "Set a configuration value in the form key=value; can be repeated.")
	fs.Bool("keys", false, "List the configuration keys instead of the configuration.")
}

// Run applies and saves any changes first and then shows the effective
// configuration.
func (e *confEntry) Run(ctx context.Context, inv *plugins.Invocation) error {
	c := inv.Config
	sets, _ := inv.Flags.GetStringArray("set")
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q, expected key=value", set)
		}
		if err := c.Set(strings.TrimSpace(key), value); err != nil {
			return err
		}
	}
	if len(sets) != 0 {
		if err := c.Save(); err != nil {
			return err
		}
		log.Infof("configuration saved to %q", c.File())
	}
	if keys, _ := inv.Flags.GetBool("keys"); keys {
		for _, key := range c.Keys() {
			fmt.Fprintln(inv.Out, key)
		}
		return nil
	}
	y, err := c.YAML()
	if err != nil {
		return err
	}
	_, err = inv.Out.Write(y)
	return err
}
