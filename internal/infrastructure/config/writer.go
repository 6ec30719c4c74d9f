package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# xungho configuration

kinship:
  # bac, trung or nam (or set XUNGHO_REGION)
  region: bac
  # generation gap beyond which terms degrade to "họ hàng xa" (max 4)
  max_generation: 4

log:
  level: warn

# metrics:
#   textfile: /var/lib/node_exporter/textfile/xungho.prom
`

// WriteDefault creates the .xungho directory and writes a default config
// file. An existing config file is left untouched.
func WriteDefault(basePath string) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if Exists(basePath) {
		return nil
	}

	if err := os.WriteFile(ConfigFilePath(basePath), []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file.
func Write(basePath string, cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(ConfigFilePath(basePath), data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Exists checks if a xungho config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
