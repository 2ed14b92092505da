// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import "strings"

// Group is a command group plugins are classified into. The set of groups is
// closed; plugins not declaring a known group end up in GroupOther.
type Group string

const (
	GroupConfiguration Group = "configuration"
	GroupUpload        Group = "upload"
	GroupTools         Group = "tools"
	GroupImporters     Group = "importers"
	GroupExporters     Group = "exporters"
	GroupOther         Group = "other"
)

// groups in display order.
var groups = []Group{
	GroupConfiguration, GroupUpload, GroupTools, GroupImporters, GroupExporters, GroupOther,
}

// groupTags maps the group tags plugins may declare to their groups.
var groupTags = map[string]Group{
	"configuration": GroupConfiguration,
	"conf":          GroupConfiguration,
	"upload":        GroupUpload,
	"tool":          GroupTools,
	"tools":         GroupTools,
	"importer":      GroupImporters,
	"importers":     GroupImporters,
	"exporter":      GroupExporters,
	"exporters":     GroupExporters,
}

// Groups returns all command groups in display order.
func Groups() []Group {
	return append([]Group(nil), groups...)
}

// Classify returns the command group for the group tag declared by a plugin.
func Classify(tag string) Group {
	if g, ok := groupTags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return g
	}
	return GroupOther
}

// Title returns the human-readable group title used in help texts.
func (g Group) Title() string {
	if g == GroupTools {
		return "tool output processing"
	}
	return string(g)
}
