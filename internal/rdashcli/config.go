package rdashcli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// KeyMap binds the dashboard's logical actions to physical keys. Arrow
// keys, enter and esc are always accepted in addition to these bindings.
type KeyMap struct {
	Up     string `yaml:"up"`
	Down   string `yaml:"down"`
	Add    string `yaml:"add"`
	Delete string `yaml:"delete"`
	Reload string `yaml:"reload"`
	Help   string `yaml:"help"`
	Quit   string `yaml:"quit"`
}

// Config holds all rdash configuration.
type Config struct {
	StorePath   string `yaml:"store_path,omitempty"`
	SudoCommand string `yaml:"sudo_command"`
	Keys        KeyMap `yaml:"keys"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SudoCommand: "sudo",
		Keys: KeyMap{
			Up:     "k",
			Down:   "j",
			Add:    "a",
			Delete: "d",
			Reload: "r",
			Help:   "?",
			Quit:   "q",
		},
	}
}

// ResolveStorePath returns the program store path to use. Priority:
// explicit > Config.StorePath > default.
func (c *Config) ResolveStorePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if c.StorePath != "" {
		return c.StorePath
	}
	return DefaultStorePath()
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rdash", "config.yaml")
}

// LoadConfig reads config from file, falling back to defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("RDASH_STORE"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("RDASH_SUDO"); v != "" {
		cfg.SudoCommand = v
	}

	return cfg, nil
}

// SaveConfig writes config to the given path.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// ConfigFileExists reports whether the config file exists at the given path.
func ConfigFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
