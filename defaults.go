// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package reptor

// SemVersion is the semantic version of the reptor CLI.
const SemVersion = "0.1.0"

const (
	// HomeEnv names the environment variable overriding the reptor home
	// directory.
	HomeEnv = "REPTOR_HOME"
	// DefaultHomeDir is the name of the reptor home directory inside the user's
	// home directory, when not overridden by HomeEnv.
	DefaultHomeDir = ".sysreptor"
	// ConfigFileName is the name of the configuration file inside the reptor
	// home directory.
	ConfigFileName = "config.yaml"
)
