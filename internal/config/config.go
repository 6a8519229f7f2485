// Package config loads the CLI configuration from an optional file and
// FORMLAYOUT_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FORMLAYOUT_LOG_LEVEL.
const EnvPrefix = "FORMLAYOUT"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds CLI configuration.
type Config struct {
	Backend string      `mapstructure:"backend"`
	Format  string      `mapstructure:"format"`
	Log     LogConfig   `mapstructure:"log"`
	Theme   ThemeConfig `mapstructure:"theme"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ThemeConfig holds the colour tokens handed to the terminal backend.
type ThemeConfig struct {
	Name   string            `mapstructure:"name"`
	Tokens map[string]string `mapstructure:"tokens"`
}

// Load reads configuration. An explicit path must exist; without one the
// file is looked up in $HOME/.config/formlayout and skipped when absent.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("backend", "")
	v.SetDefault("format", FormatText)
	v.SetDefault("log.level", "warn")
	v.SetDefault("theme.name", "default")
	v.SetDefault("theme.tokens", map[string]string{})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "formlayout"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("config: unsupported format %q", c.Format)
	}
}

// ThemeManifest builds a theme manifest from the configured tokens, or nil
// when none are set.
func (c Config) ThemeManifest() *theme.Manifest {
	if len(c.Theme.Tokens) == 0 {
		return nil
	}
	tokens := make(map[string]string, len(c.Theme.Tokens))
	for key, value := range c.Theme.Tokens {
		tokens[key] = value
	}
	return &theme.Manifest{
		Name:    c.Theme.Name,
		Version: "1.0.0",
		Tokens:  tokens,
	}
}
