// Package config loads sheetgen settings from YAML or TOML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file settings.
const (
	EnvDataDir         = "SHEETGEN_DATA_DIR"
	EnvCodeDir         = "SHEETGEN_CODE_DIR"
	EnvClassTemplate   = "SHEETGEN_CLASS_TEMPLATE"
	EnvManagerTemplate = "SHEETGEN_MANAGER_TEMPLATE"
	EnvExtension       = "SHEETGEN_EXTENSION"
	EnvFormat          = "SHEETGEN_FORMAT"
	EnvKeyField        = "SHEETGEN_KEY_FIELD"
	EnvLogLevel        = "SHEETGEN_LOG_LEVEL"
)

// ErrInvalidConfig indicates a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds sheetgen settings.
type Config struct {
	// DataDir receives per-table JSON; empty derives it from the input path.
	DataDir string `yaml:"data_dir" toml:"data_dir"`
	// CodeDir receives generated sources; empty derives it from the input path.
	CodeDir string `yaml:"code_dir" toml:"code_dir"`

	// ClassTemplate and ManagerTemplate are template file paths.
	// Empty uses the built-in C# templates.
	ClassTemplate   string `yaml:"class_template" toml:"class_template"`
	ManagerTemplate string `yaml:"manager_template" toml:"manager_template"`
	// Extension is appended to generated source file names.
	Extension string `yaml:"extension" toml:"extension"`

	// Format is "list" or "nested".
	Format string `yaml:"format" toml:"format"`
	// KeyField keys records in nested format.
	KeyField string `yaml:"key_field" toml:"key_field"`
	// ExcludeFields are columns dropped from every table.
	ExcludeFields []string `yaml:"exclude_fields" toml:"exclude_fields"`

	Log LogConfig `yaml:"log" toml:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Extension: ".cs",
		Format:    "list",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from path. A missing file yields the defaults.
// Variables from a .env file in the working directory are loaded first, then
// SHEETGEN_* environment variables override file values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.decode(path, data); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, c)
	} else {
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML, or TOML for a .toml path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		data, err = toml.Marshal(c)
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvDataDir, &c.DataDir},
		{EnvCodeDir, &c.CodeDir},
		{EnvClassTemplate, &c.ClassTemplate},
		{EnvManagerTemplate, &c.ManagerTemplate},
		{EnvExtension, &c.Extension},
		{EnvFormat, &c.Format},
		{EnvKeyField, &c.KeyField},
		{EnvLogLevel, &c.Log.Level},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Format {
	case "list":
	case "nested":
		if c.KeyField == "" {
			return fmt.Errorf("%w: nested format requires key_field", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: format must be list or nested, got %q", ErrInvalidConfig, c.Format)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
