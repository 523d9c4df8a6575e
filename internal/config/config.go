// Package config loads nifkit settings from nifkit-config.yaml and the
// environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// Config holds nifkit settings
type Config struct {
	OutputFormat string `mapstructure:"output_format"`
	LogLevel     string `mapstructure:"log_level"`
	SortBlocks   bool   `mapstructure:"sort_blocks"`
	DefaultGame  string `mapstructure:"default_game"`
}

// Load reads configFile, or searches the usual locations for
// nifkit-config.yaml when configFile is empty. A missing config file in the
// search locations is not an error. NIFKIT_ environment variables override
// file values.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nifkit-config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.nifkit")
		v.AddConfigPath("/etc/nifkit")
	}

	// Set defaults
	v.SetDefault("output_format", "table")
	v.SetDefault("log_level", "warn")
	v.SetDefault("sort_blocks", true)
	v.SetDefault("default_game", "sse")

	v.SetEnvPrefix("NIFKIT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if _, err := version.ForGame(config.DefaultGame); err != nil {
		return nil, fmt.Errorf("invalid default_game: %w", err)
	}
	return &config, nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
