// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"context"
	"io"

	"github.com/spf13/pflag"
	"github.com/syn-4ck/reptor/api"
	"github.com/syn-4ck/reptor/config"
)

// EntryPoint is the single designated symbol a plugin unit exposes.
type EntryPoint interface {
	Run(ctx context.Context, inv *Invocation) error
}

// Flagger is optionally implemented by entry points that want their CLI
// flags parsed. Entry points without it get their args unparsed.
type Flagger interface {
	SetupFlags(fs *pflag.FlagSet)
}

// Invocation carries everything a plugin gets when run.
type Invocation struct {
	// Name the plugin was invoked under.
	Name string
	// Positional args, or all args for entry points not implementing Flagger.
	Args []string
	// Parsed flags, if the entry point implements Flagger.
	Flags    *pflag.FlagSet
	Out      io.Writer
	Config   *config.Config
	Registry *Registry
}

// Unit is a loaded plugin.
type Unit struct {
	// Identifier of the entry point; the lower-cased identifier becomes the
	// plugin name.
	Identifier string
	// Group tag as declared by the plugin, see Classify.
	GroupTag string
	Meta     api.Meta
	Entry    EntryPoint
}

// Candidate is a discovered, not yet loaded plugin.
type Candidate struct {
	Path string
	Tier Tier
}
