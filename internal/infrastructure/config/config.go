// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for xungho configuration.
	DefaultConfigDir = ".xungho"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultTreesFile is the default family-tree registry file name.
	DefaultTreesFile = "trees.yaml"
	// DefaultDBFile is the SQLite file name inside a tree directory.
	DefaultDBFile = "family.db"
)

// Environment variables that override file settings.
const (
	EnvRegion          = "XUNGHO_REGION"
	EnvMaxGeneration   = "XUNGHO_MAX_GENERATION"
	EnvMetricsTextfile = "XUNGHO_METRICS_TEXTFILE"
	EnvLogLevel        = "XUNGHO_LOG_LEVEL"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Kinship KinshipConfig `yaml:"kinship,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	SQLite  SQLiteConfig  `yaml:"sqlite,omitempty"`
}

// KinshipConfig holds defaults for relationship queries.
type KinshipConfig struct {
	// Region is the dialect for kinship terms: bac, trung or nam.
	Region string `yaml:"region,omitempty"`
	// MaxGeneration caps the generation gap that gets a specific term.
	MaxGeneration int `yaml:"max_generation,omitempty"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	// Textfile, when set, receives Prometheus metrics in text format after
	// each command, for pickup by a node_exporter textfile collector.
	Textfile string `yaml:"textfile,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite family store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	// For per-tree databases, this is computed dynamically using SQLitePathForTree.
	Path string `yaml:"path,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Kinship: KinshipConfig{
			Region:        "bac",
			MaxGeneration: 4,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the .xungho directory in the given path.
// A .env file in the working directory is loaded first when present.
func Load(basePath string) (*Config, error) {
	_ = godotenv.Load()

	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'xungho trees create' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if region := strings.TrimSpace(os.Getenv(EnvRegion)); region != "" {
		c.Kinship.Region = region
	}
	if raw := strings.TrimSpace(os.Getenv(EnvMaxGeneration)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			slog.Warn("ignoring invalid max generation override",
				slog.String("env", EnvMaxGeneration),
				slog.String("value", raw))
		} else {
			c.Kinship.MaxGeneration = n
		}
	}
	if path := strings.TrimSpace(os.Getenv(EnvMetricsTextfile)); path != "" {
		c.Metrics.Textfile = path
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		c.Log.Level = level
	}
}

// ConfigDir returns the path to the .xungho config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// TreesFilePath returns the path to the trees registry file.
func TreesFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultTreesFile)
}

// SanitizeTreeName converts a tree name to a safe directory name.
func SanitizeTreeName(name string) string {
	name = strings.ToLower(name)

	// Replace spaces and hyphens with underscores
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// TreeDir returns the directory path for a given tree.
func TreeDir(basePath, treeName string) string {
	return filepath.Join(basePath, DefaultConfigDir, "trees", SanitizeTreeName(treeName))
}

// SQLitePathForTree returns the SQLite database path for a given tree.
func SQLitePathForTree(basePath, treeName string) string {
	return filepath.Join(TreeDir(basePath, treeName), DefaultDBFile)
}
