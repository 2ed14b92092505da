// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/syn-4ck/reptor"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding configuration
// keys, such as REPTOR_COMMUNITY or REPTOR_PLUGIN_DIRS_USER.
const EnvPrefix = "REPTOR"

// redacted replaces secrets when rendering the configuration.
const redacted = "********"

// PluginDirs lists the root directories of the plugin tiers.
type PluginDirs struct {
	Core      string `mapstructure:"core"`
	Official  string `mapstructure:"official"`
	Community string `mapstructure:"community"`
	Importers string `mapstructure:"importers"`
	Exporters string `mapstructure:"exporters"`
	User      string `mapstructure:"user"`
}

// Config is the effective reptor configuration, merged from defaults, the
// configuration file and REPTOR_* environment variables.
type Config struct {
	Server    string `mapstructure:"server"`
	Token     string `mapstructure:"token"`
	ProjectID string `mapstructure:"project_id"`
	// Community enables loading community plugins.
	Community  bool       `mapstructure:"community"`
	PluginDirs PluginDirs `mapstructure:"plugin_dirs"`

	v *viper.Viper
	// stored holds only what came from the configuration file or got Set, so
	// that Save never persists defaults or environment overrides.
	stored *viper.Viper
	fs     afero.Fs
	file   string
}

// Options control where the configuration gets loaded from. Zero values
// select the defaults.
type Options struct {
	// Filesystem to load from and save to; defaults to the OS filesystem.
	Fs afero.Fs
	// Configuration file; defaults to config.yaml inside Home.
	File string
	// reptor home directory; defaults to $REPTOR_HOME or ~/.sysreptor.
	Home string
	// Directory containing the shipped plugin tiers; defaults to the
	// "plugins" directory next to the reptor executable.
	ShareDir string
}

// Load returns the effective configuration. A missing configuration file is
// not an error.
func Load(opts Options) (*Config, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	home, err := homeDir(opts.Home)
	if err != nil {
		return nil, err
	}
	if opts.File == "" {
		opts.File = filepath.Join(home, reptor.ConfigFileName)
	}
	if opts.ShareDir == "" {
		opts.ShareDir = shareDir()
	}

	v := viper.New()
	v.SetFs(opts.Fs)
	v.SetConfigFile(opts.File)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server", "")
	v.SetDefault("token", "")
	v.SetDefault("project_id", "")
	v.SetDefault("community", false)
	v.SetDefault("plugin_dirs.core", filepath.Join(opts.ShareDir, "core"))
	v.SetDefault("plugin_dirs.official", filepath.Join(opts.ShareDir, "official"))
	v.SetDefault("plugin_dirs.community", filepath.Join(opts.ShareDir, "community"))
	v.SetDefault("plugin_dirs.importers", filepath.Join(opts.ShareDir, "importers"))
	v.SetDefault("plugin_dirs.exporters", filepath.Join(opts.ShareDir, "exporters"))
	v.SetDefault("plugin_dirs.user", filepath.Join(home, "plugins"))

	stored := viper.New()
	stored.SetFs(opts.Fs)
	stored.SetConfigFile(opts.File)
	stored.SetConfigType("yaml")

	exists, err := afero.Exists(opts.Fs, opts.File)
	if err != nil {
		return nil, fmt.Errorf("cannot access configuration file %q: %w", opts.File, err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid configuration file %q: %w", opts.File, err)
		}
		if err := stored.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("invalid configuration file %q: %w", opts.File, err)
		}
	}

	c := &Config{v: v, stored: stored, fs: opts.Fs, file: opts.File}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// homeDir returns the reptor home directory.
func homeDir(home string) (string, error) {
	if home != "" {
		return home, nil
	}
	if home = os.Getenv(reptor.HomeEnv); home != "" {
		return home, nil
	}
	userhome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(userhome, reptor.DefaultHomeDir), nil
}

// shareDir returns the directory of the plugin tiers shipped with reptor.
func shareDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "plugins"
	}
	return filepath.Join(filepath.Dir(exe), "plugins")
}

// File returns the configuration file path, regardless of whether it exists.
func (c *Config) File() string { return c.file }

// Fs returns the filesystem the configuration was loaded from.
func (c *Config) Fs() afero.Fs { return c.fs }

// Get returns the value of the specified key as a string, or "" if unknown.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Keys returns the known configuration keys in sorted order.
func (c *Config) Keys() []string {
	keys := c.v.AllKeys()
	slices.Sort(keys)
	return keys
}

// Set changes the value of a known configuration key. An invalid value leaves
// the configuration unchanged. The change is only persisted by Save.
func (c *Config) Set(key, value string) error {
	key = strings.ToLower(key)
	if !slices.Contains(c.v.AllKeys(), key) {
		return fmt.Errorf("unknown configuration key %q", key)
	}
	previous := c.v.Get(key)
	c.v.Set(key, value)
	if err := c.v.Unmarshal(c); err != nil {
		c.v.Set(key, previous)
		_ = c.v.Unmarshal(c)
		return fmt.Errorf("invalid value for %q: %w", key, err)
	}
	c.stored.Set(key, value)
	return nil
}

// Save writes the settings read from the configuration file together with
// the changes made by Set back to the configuration file, creating the
// reptor home directory if necessary. Defaults and environment overrides are
// never written.
func (c *Config) Save() error {
	if c.file == "" {
		return errors.New("no configuration file")
	}
	if err := c.fs.MkdirAll(filepath.Dir(c.file), 0o700); err != nil {
		return fmt.Errorf("cannot create configuration directory: %w", err)
	}
	if err := c.stored.WriteConfigAs(c.file); err != nil {
		return fmt.Errorf("cannot write configuration file %q: %w", c.file, err)
	}
	return nil
}

// YAML renders the effective configuration, with secrets redacted.
func (c *Config) YAML() ([]byte, error) {
	settings := c.v.AllSettings()
	if c.Token != "" {
		settings["token"] = redacted
	}
	return yaml.Marshal(settings)
}
