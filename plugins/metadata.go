// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"fmt"
	"strings"

	"github.com/syn-4ck/reptor/api"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// DocsFor returns the documentation record for a loaded unit found at the
// specified candidate.
func DocsFor(u *Unit, c Candidate) *api.PluginDocs {
	return &api.PluginDocs{
		Name:        strings.ToLower(u.Identifier),
		DisplayName: u.Meta.Name,
		Path:        c.Path,
		Origin:      c.Tier.Origin(),
		Group:       string(Classify(u.GroupTag)),
		Author:      u.Meta.Author,
		Version:     u.Meta.Version,
		Website:     u.Meta.Website,
		License:     u.Meta.License,
		Tags:        slices.Clone(u.Meta.Tags),
		Summary:     u.Meta.Summary,
	}
}

// metaFromLua returns the metadata block from a Lua value: either a table, or
// a string with a YAML document. Missing fields default to their zero values.
func metaFromLua(v lua.LValue) (api.Meta, error) {
	switch v := v.(type) {
	case *lua.LNilType:
		return api.Meta{}, nil
	case lua.LString:
		return metaFromYAML([]byte(v))
	case *lua.LTable:
		return api.Meta{
			Name:    lua.LVAsString(v.RawGetString("name")),
			Author:  lua.LVAsString(v.RawGetString("author")),
			Version: lua.LVAsString(v.RawGetString("version")),
			Website: lua.LVAsString(v.RawGetString("website")),
			License: lua.LVAsString(v.RawGetString("license")),
			Tags:    tagsFromLua(v.RawGetString("tags")),
			Summary: lua.LVAsString(v.RawGetString("summary")),
		}, nil
	}
	return api.Meta{}, fmt.Errorf("metadata must be a table or string, not %s", v.Type())
}

// tagsFromLua accepts either a list of tags or a comma-separated string.
func tagsFromLua(v lua.LValue) []string {
	switch v := v.(type) {
	case lua.LString:
		return splitTags(string(v))
	case *lua.LTable:
		tags := []string{}
		for idx := 1; idx <= v.Len(); idx++ {
			if tag := strings.TrimSpace(lua.LVAsString(v.RawGetInt(idx))); tag != "" {
				tags = append(tags, tag)
			}
		}
		return tags
	}
	return nil
}

// yamlMeta mirrors api.Meta, but accepts tags as a list or as a
// comma-separated string.
type yamlMeta struct {
	Name    string      `yaml:"name"`
	Author  string      `yaml:"author"`
	Version string      `yaml:"version"`
	Website string      `yaml:"website"`
	License string      `yaml:"license"`
	Tags    interface{} `yaml:"tags"`
	Summary string      `yaml:"summary"`
}

func metaFromYAML(doc []byte) (api.Meta, error) {
	var ym yamlMeta
	if err := yaml.Unmarshal(doc, &ym); err != nil {
		return api.Meta{}, fmt.Errorf("invalid metadata: %w", err)
	}
	meta := api.Meta{
		Name:    ym.Name,
		Author:  ym.Author,
		Version: ym.Version,
		Website: ym.Website,
		License: ym.License,
		Summary: ym.Summary,
	}
	switch tags := ym.Tags.(type) {
	case string:
		meta.Tags = splitTags(tags)
	case []interface{}:
		meta.Tags = []string{}
		for _, tag := range tags {
			if s := strings.TrimSpace(fmt.Sprint(tag)); s != "" {
				meta.Tags = append(meta.Tags, s)
			}
		}
	}
	return meta, nil
}

func splitTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
