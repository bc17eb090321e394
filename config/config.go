// Package config loads application configuration from a YAML file and
// environment variables. Environment variables use the IMS_ prefix and win
// over the file; every key has a usable default so the engine runs with no
// config file at all.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Data     DataConfig     `mapstructure:"data"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Features FeaturesConfig `mapstructure:"features"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name string `mapstructure:"name"`

	// Timezone used when interpreting opportunity windows.
	Timezone string `mapstructure:"timezone"`
	Location *time.Location

	// ShutdownTimeout bounds the final snapshot flush on exit.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DataConfig holds persistence settings.
type DataConfig struct {
	// Dir is where snapshot files live.
	Dir string `mapstructure:"dir"`

	// SeedDir holds the CSV seed files consumed by the seed command.
	SeedDir string `mapstructure:"seed_dir"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// FeaturesConfig holds feature toggles.
type FeaturesConfig struct {
	// StaffReviewedWithdrawals routes student withdrawals through a
	// request/review flow instead of immediate execution.
	StaffReviewedWithdrawals bool `mapstructure:"staff_reviewed_withdrawals"`

	// BcryptCredentials verifies credentials against bcrypt hashes
	// instead of plain comparison.
	BcryptCredentials bool `mapstructure:"bcrypt_credentials"`
}

// Load reads configuration from the given file path. An empty path means
// defaults plus environment only; a named file that is missing is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "ims")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.shutdown_timeout", "5s")
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.seed_dir", "seed")
	v.SetDefault("logging.level", "info")
	v.SetDefault("features.staff_reviewed_withdrawals", false)
	v.SetDefault("features.bcrypt_credentials", false)

	v.SetEnvPrefix("IMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("invalid app.timezone %q: %w", c.App.Timezone, err)
	}
	c.App.Location = loc
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	return nil
}
