// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package plugins

import (
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ScriptExt is the file extension of plugin scripts.
const ScriptExt = ".lua"

// cacheDirs are directory names of transient artifacts never containing
// plugins.
var cacheDirs = map[string]bool{
	"__pycache__": true,
	"__cache__":   true,
}

// Discover returns the plugin candidates found in the root directory of a
// tier: plugin scripts directly inside root, as well as plugin scripts in the
// immediate sub-directories of root. The candidates are returned in directory
// listing order. A non-existing root is not an error and yields no
// candidates.
func Discover(fs afero.Fs, root string, tier Tier) ([]Candidate, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, &DiscoveryError{Tier: tier, Root: root, Err: err}
	}
	if exists, err := afero.Exists(fs, root); err != nil {
		return nil, &DiscoveryError{Tier: tier, Root: root, Err: err}
	} else if !exists {
		log.Debugf("no %s plugin directory %q", tier, root)
		return nil, nil
	}
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, &DiscoveryError{Tier: tier, Root: root, Err: err}
	}
	candidates := []Candidate{}
	for _, entry := range entries {
		if transient(entry.Name()) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if !entry.IsDir() {
			if isScript(entry.Name()) {
				candidates = append(candidates, Candidate{Path: path, Tier: tier})
			}
			continue
		}
		subentries, err := afero.ReadDir(fs, path)
		if err != nil {
			log.Warnf("skipping unreadable %s plugin directory %q: %s", tier, path, err)
			continue
		}
		for _, subentry := range subentries {
			if subentry.IsDir() || transient(subentry.Name()) || !isScript(subentry.Name()) {
				continue
			}
			candidates = append(candidates, Candidate{
				Path: filepath.Join(path, subentry.Name()),
				Tier: tier,
			})
		}
	}
	return candidates, nil
}

// transient returns true for names of hidden files and directories, editor
// backups, and cache directories.
func transient(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") || cacheDirs[name]
}

func isScript(name string) bool {
	return filepath.Ext(name) == ScriptExt
}
