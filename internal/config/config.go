// Package config handles loading and saving the demo's configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"swipemenu/internal/swipemenu"
)

// EnvPath overrides the config file location.
const EnvPath = "SWIPEMENU_CONFIG"

// Config represents the application configuration.
type Config struct {
	Menu  swipemenu.Options `yaml:"menu"`
	Demo  DemoConfig        `yaml:"demo"`
	Log   LogConfig         `yaml:"log"`
	Trace TraceConfig       `yaml:"trace"`
}

// DemoConfig holds the pages shown by the demo host.
type DemoConfig struct {
	Pages        []string `yaml:"pages"`
	InitialIndex int      `yaml:"initial_index"`
}

// LogConfig holds logging settings. An empty File disables logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file,omitempty"`
}

// TraceConfig selects the span exporter.
type TraceConfig struct {
	Exporter string `yaml:"exporter"` // none, stdout, otlp
	File     string `yaml:"file,omitempty"`
}

// DefaultPages are the demo's page titles.
var DefaultPages = []string{
	"Bulbasaur", "Caterpie", "Golem", "Jynx", "Marshtomp",
	"Salamence", "Riolu", "Araquanid", "Pickachu", "Another",
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Menu: swipemenu.DefaultOptions(),
		Demo: DemoConfig{
			Pages: append([]string(nil), DefaultPages...),
		},
		Log:   LogConfig{Level: "info"},
		Trace: TraceConfig{Exporter: "none"},
	}
}

// Path returns the config file path: $SWIPEMENU_CONFIG, else
// ~/.config/swipemenu/config.yaml.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "swipemenu", "config.yaml"), nil
}

// Load reads the configuration at path. An empty path uses Path().
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Template returns the default configuration as YAML, for --init.
func Template() ([]byte, error) {
	return yaml.Marshal(DefaultConfig())
}

// Validate checks the menu options and the demo/log/trace sections.
func (c *Config) Validate() error {
	errs := []error{c.Menu.Validate()}
	if n := len(c.Demo.Pages); n > 0 && (c.Demo.InitialIndex < 0 || c.Demo.InitialIndex >= n) {
		errs = append(errs, fmt.Errorf("demo.initial_index %d out of range for %d pages", c.Demo.InitialIndex, n))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Trace.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("trace.exporter %q: want none, stdout or otlp", c.Trace.Exporter))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, err)
	}
	return l, nil
}
