// Package config provides configuration management for mikasa.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the mikasa configuration.
type Config struct {
	Identifier           string   `yaml:"identifier"`
	Base                 string   `yaml:"base,omitempty"`
	Src                  string   `yaml:"src,omitempty"`
	Dest                 string   `yaml:"dest,omitempty"`
	Languages            []string `yaml:"languages,omitempty"`
	Application          string   `yaml:"application,omitempty"`
	ShowErrors           bool     `yaml:"show_errors,omitempty"`
	EmphasiseTableHeader *bool    `yaml:"emphasise_table_header,omitempty"`
	DummyHRule           bool     `yaml:"dummy_hrule,omitempty"`
	Jobs                 int      `yaml:"jobs,omitempty"`
}

// Defaults for unset fields.
const (
	DefaultSrc  = "./data"
	DefaultDest = "./help"
)

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Src == "" {
		c.Src = DefaultSrc
	}
	if c.Dest == "" {
		c.Dest = DefaultDest
	}
	if c.EmphasiseTableHeader == nil {
		emphasise := true
		c.EmphasiseTableHeader = &emphasise
	}
}

// EmphasiseHeader reports whether table header cells are emphasised.
// Unset means true.
func (c *Config) EmphasiseHeader() bool {
	return c.EmphasiseTableHeader == nil || *c.EmphasiseTableHeader
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.Identifier == "" {
		return errors.New("identifier is required")
	}
	if strings.ContainsAny(c.Identifier, `/\ `) {
		return errors.New("identifier must not contain slashes or spaces")
	}
	for _, lang := range c.Languages {
		if _, err := language.Parse(lang); err != nil {
			return fmt.Errorf("invalid language %q: %w", lang, err)
		}
	}
	if c.Application != "" && !isLowerAlpha(c.Application) {
		return errors.New("application must be lowercase letters")
	}
	if c.Jobs < 0 {
		return errors.New("jobs must not be negative")
	}
	return nil
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if id := os.Getenv("MIKASA_ID"); id != "" {
		c.Identifier = id
	}
	if base := os.Getenv("MIKASA_BASE"); base != "" {
		c.Base = base
	}
	if src := os.Getenv("MIKASA_SRC"); src != "" {
		c.Src = src
	}
	if dest := os.Getenv("MIKASA_DEST"); dest != "" {
		c.Dest = dest
	}
	if langs := os.Getenv("MIKASA_LANGS"); langs != "" {
		c.Languages = SplitLanguages(langs)
	}
	if app := os.Getenv("MIKASA_APPLICATION"); app != "" {
		c.Application = app
	}
	if v, ok := getEnvBool("MIKASA_SHOW_ERRORS"); ok {
		c.ShowErrors = v
	}
	if v, ok := getEnvBool("MIKASA_EMPHASISE_TABLE_HEADER"); ok {
		c.EmphasiseTableHeader = &v
	}
	if v, ok := getEnvBool("MIKASA_DUMMY_HRULE"); ok {
		c.DummyHRule = v
	}
	if jobs := os.Getenv("MIKASA_JOBS"); jobs != "" {
		if n, err := strconv.Atoi(jobs); err == nil {
			c.Jobs = n
		}
	}
}

// getEnvBool parses a boolean env var. ok is false when unset or unparsable.
func getEnvBool(key string) (value, ok bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// SplitLanguages splits a comma separated language list, dropping blanks.
func SplitLanguages(s string) []string {
	var langs []string
	for _, lang := range strings.Split(s, ",") {
		if lang = strings.TrimSpace(lang); lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mikasa", "config.yml")
	}

	// Fall back to ~/.config/mikasa/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mikasa", "config.yml")
	}

	return filepath.Join(home, ".config", "mikasa", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, then a .env file in the
// working directory, then environment variables, and applies defaults.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
