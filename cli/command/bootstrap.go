// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package command

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// globals are the global CLI flags needed before the root command exists:
// the plugin loading sequence depends on them.
type globals struct {
	config    string
	community bool
	debug     bool
}

// scanGlobals picks the global flags from the specified CLI args and returns
// them together with the remaining args. Scanning stops at "--".
func scanGlobals(args []string) (g globals, rest []string) {
	rest = []string{}
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		name, value, hasValue := strings.Cut(arg, "=")
		switch {
		case arg == "--":
			return g, append(rest, args[idx:]...)
		case name == "-d" || name == "--debug":
			g.debug = boolValue(value, hasValue)
		case name == "--community":
			g.community = boolValue(value, hasValue)
		case name == "--config":
			if hasValue {
				g.config = value
				continue
			}
			if idx+1 < len(args) {
				idx++
				g.config = args[idx]
			}
		default:
			rest = append(rest, arg)
		}
	}
	return g, rest
}

// splitCommand splits the specified CLI args in front of the first
// positional arg, that is, the command name. Without a command name, all args
// are leading args.
func splitCommand(args []string) (lead, tail []string) {
	for idx := 0; idx < len(args); idx++ {
		arg := args[idx]
		switch {
		case arg == "--":
			return args, nil
		case arg == "--config":
			idx++
		case strings.HasPrefix(arg, "-"):
		default:
			return args[:idx], args[idx:]
		}
	}
	return args, nil
}

// boolValue returns the value of a boolean flag, where a flag without value
// means true. Invalid values are taken as false.
func boolValue(value string, hasValue bool) bool {
	if !hasValue {
		return true
	}
	b, _ := strconv.ParseBool(value)
	return b
}

// apply enables debug logging early, so that plugin loading diagnostics
// already show up.
func (g globals) apply() {
	if g.debug {
		log.SetLevel(log.DebugLevel)
	}
}
