// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import "fmt"

// DiscoveryError is returned when an existing tier directory cannot be
// enumerated.
type DiscoveryError struct {
	Tier Tier
	Root string
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("cannot discover %s plugins in %q: %s", e.Tier, e.Root, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// LoadError is returned when a plugin candidate fails to load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load plugin %q: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
