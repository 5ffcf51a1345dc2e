// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for hunt configuration.
	DefaultConfigDir = ".hunt"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultResourcesDir holds archived matches and the match database.
	DefaultResourcesDir = "resources"
	// DefaultDatabaseFile is the SQLite file name inside the resources dir.
	DefaultDatabaseFile = "match_data.db"
)

// Config holds static configuration (read-only after init).
type Config struct {
	Attributes   AttributesConfig `yaml:"attributes,omitempty"`
	ProfileID    int              `yaml:"profile_id,omitempty"`
	ResourcesDir string           `yaml:"resources_dir,omitempty"`
	Archive      ArchiveConfig    `yaml:"archive,omitempty"`
	SQLite       SQLiteConfig     `yaml:"sqlite,omitempty"`
	Qdrant       QdrantConfig     `yaml:"qdrant,omitempty"`
	Log          LogConfig        `yaml:"log,omitempty"`
	Watch        WatchConfig      `yaml:"watch,omitempty"`
}

// AttributesConfig locates and interprets the telemetry file.
type AttributesConfig struct {
	// Path is the attributes.xml file. Located from Steam libraries when empty.
	Path string `yaml:"path,omitempty"`
	// Bounds selects how teams and players are counted: "probe" or "declared".
	Bounds string `yaml:"bounds,omitempty"`
}

// ArchiveConfig controls the on-disk JSON archive of matches.
type ArchiveConfig struct {
	Compress bool `yaml:"compress,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite match database.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// Defaults to <resources_dir>/match_data.db.
	Path string `yaml:"path,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant lobby index.
type QdrantConfig struct {
	Enabled    bool   `yaml:"enabled,omitempty"`
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// LogConfig controls console logging.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	Color bool   `yaml:"color,omitempty"`
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	// Debounce coalesces bursts of writes into one re-parse.
	Debounce time.Duration `yaml:"debounce,omitempty"`
	// PollInterval is used where inotify is unavailable.
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Attributes: AttributesConfig{
			Bounds: "probe",
		},
		ResourcesDir: DefaultResourcesDir,
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "hunt_lobbies",
		},
		Log: LogConfig{
			Level: "debug",
			Color: true,
		},
		Watch: WatchConfig{
			Debounce:     50 * time.Millisecond,
			PollInterval: time.Second,
		},
	}
}

// Load loads configuration from the .hunt directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.resolvePaths(basePath)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv("HUNT_ATTRIBUTES_PATH"); path != "" {
		c.Attributes.Path = path
	}
	if id := os.Getenv("HUNT_PROFILE_ID"); id != "" {
		n, err := strconv.Atoi(id)
		if err != nil {
			return fmt.Errorf("invalid HUNT_PROFILE_ID %q: %w", id, err)
		}
		c.ProfileID = n
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" {
		if c.Qdrant.APIKey == "" {
			c.Qdrant.APIKey = key
		}
	}
	return nil
}

// resolvePaths makes relative paths absolute against basePath.
func (c *Config) resolvePaths(basePath string) {
	if c.ResourcesDir == "" {
		c.ResourcesDir = DefaultResourcesDir
	}
	if !filepath.IsAbs(c.ResourcesDir) {
		c.ResourcesDir = filepath.Join(basePath, c.ResourcesDir)
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = filepath.Join(c.ResourcesDir, DefaultDatabaseFile)
	} else if c.SQLite.Path != ":memory:" && !filepath.IsAbs(c.SQLite.Path) {
		c.SQLite.Path = filepath.Join(basePath, c.SQLite.Path)
	}
}

// ConfigDir returns the path to the .hunt config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}
