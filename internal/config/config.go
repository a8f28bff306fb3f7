// Package config provides Viper-based configuration loading for the sheet generator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SheetConfig holds character sheet generation settings.
type SheetConfig struct {
	// Edition is the rules edition used when none is given on the command line.
	Edition string `mapstructure:"edition"`
	// Table is an optional path to a YAML attribute table overriding the edition's.
	Table string `mapstructure:"table"`
	// Format is the output format: "text" or "yaml".
	Format string `mapstructure:"format"`
	// Concurrent rolls attributes in parallel when true.
	Concurrent bool `mapstructure:"concurrent"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Sheet   SheetConfig   `mapstructure:"sheet"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSheet(c.Sheet); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSheet(s SheetConfig) error {
	var errs []string
	if strings.TrimSpace(s.Edition) == "" {
		errs = append(errs, "sheet.edition must not be empty")
	}
	validFormats := map[string]bool{"text": true, "yaml": true}
	if !validFormats[s.Format] {
		errs = append(errs, fmt.Sprintf("sheet.format must be one of [text, yaml], got %q", s.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// New returns a Viper instance with defaults and COC_ environment overrides applied.
func New() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with COC_ prefix
	v.SetEnvPrefix("COC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("sheet.edition", "coc6")
	v.SetDefault("sheet.table", "")
	v.SetDefault("sheet.format", "text")
	v.SetDefault("sheet.concurrent", false)
}
