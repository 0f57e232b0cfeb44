// Package config provides configuration file support for Diavlos.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the Diavlos configuration file structure.
type Config struct {
	// Defaults are applied when flags are not specified
	Defaults Defaults `yaml:"defaults"`
}

// Defaults holds default values for open parameters.
type Defaults struct {
	// Socket family: inet or inet6
	Family string `yaml:"family"`

	// Network
	Source    string `yaml:"source"`
	Interface string `yaml:"interface"`

	// Worker pool
	Workers int `yaml:"workers"`

	// Output mode
	JSON    bool `yaml:"json"`
	Verbose bool `yaml:"verbose"`
	NoColor bool `yaml:"no_color"`

	// Logging: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Family:    "inet",
			Source:    "",
			Interface: "",
			Workers:   4,
			JSON:      false,
			Verbose:   false,
			NoColor:   false,
			LogLevel:  "info",
		},
	}
}

// Load reads configuration from the default config file locations.
// It searches in order:
//  1. ./diavlos.yaml (current directory)
//  2. ~/.config/diavlos/config.yaml (Linux/macOS)
//  3. %APPDATA%\diavlos\config.yaml (Windows)
//
// If no config file is found, returns default configuration.
func Load() (*Config, error) {
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return LoadFrom(path)
		}
	}

	// No config file found, return defaults
	return DefaultConfig(), nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the configuration to the default user config path.
func (c *Config) Save() error {
	return c.SaveTo(getUserConfigPath())
}

// SaveTo writes the configuration to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// getConfigPaths returns the list of config file paths to search.
func getConfigPaths() []string {
	paths := []string{
		"diavlos.yaml",
		"diavlos.yml",
		".diavlos.yaml",
		".diavlos.yml",
	}

	if userPath := getUserConfigPath(); userPath != "" {
		paths = append(paths, userPath)
	}

	return paths
}

// getUserConfigPath returns the user-specific config file path.
func getUserConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "diavlos", "config.yaml")
		}
	default: // Linux, macOS, etc.
		home, err := os.UserHomeDir()
		if err == nil {
			// Check XDG_CONFIG_HOME first
			xdgConfig := os.Getenv("XDG_CONFIG_HOME")
			if xdgConfig != "" {
				return filepath.Join(xdgConfig, "diavlos", "config.yaml")
			}
			return filepath.Join(home, ".config", "diavlos", "config.yaml")
		}
	}
	return ""
}

// GetConfigPath returns the path where user config would be saved.
func GetConfigPath() string {
	return getUserConfigPath()
}

// GenerateExample generates an example configuration file content.
func GenerateExample() string {
	return `# Diavlos Configuration File
# Location: ~/.config/diavlos/config.yaml (Linux/macOS)
#           ./diavlos.yaml (current directory)

defaults:
  # Socket family: inet (IPv4) or inet6 (IPv6)
  family: inet

  # Source address to bind the socket to (empty = no bind)
  source: ""

  # Source interface to restrict the socket to (empty = no restriction)
  interface: ""

  # Worker goroutines executing open requests
  workers: 4

  # Output mode
  json: false             # JSON output
  verbose: false          # Detailed table output
  no_color: false         # Disable colors

  # Log level: debug, info, warn, error
  log_level: info
`
}
