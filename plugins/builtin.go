// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import "github.com/thediveo/go-plugger/v3"

// BuiltinPathPrefix prefixes the pseudo paths of compiled-in plugins.
const BuiltinPathPrefix = "builtin:"

// Builtin defines an exposed plugin symbol type for compiled-in plugin units.
// Packages register their Builtin factories in their init functions, for
// instance:
//
//	plugger.Group[plugins.Builtin]().Register(NewFooUnit, plugger.WithPlugin("foo"))
//
// A factory returning nil, or a unit without entry point, is skipped.
type Builtin func() *Unit

// registeredBuiltins returns the Builtin factories registered with the
// go-plugger Builtin group.
func registeredBuiltins() []Builtin {
	return plugger.Group[Builtin]().Symbols()
}
