// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"github.com/thediveo/go-plugger/v3"
	"golang.org/x/exp/slices"
)

// Examples collects the examples for the specified command, as returned by
// the registered CommandExamples plugins, in plugin order. Examples are
// separated by empty lines; duplicate examples are dropped, as different
// plugins might well be providing examples for the same plugin command.
func Examples(command string) string {
	examples := []string{}
	for _, example := range plugger.Group[CommandExamples]().Symbols() {
		text := strings.Trim(example()[command], "\n")
		if text == "" || slices.Contains(examples, text) {
			continue
		}
		examples = append(examples, text)
	}
	return strings.Join(examples, "\n\n")
}
