package main

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

// config is ld's own configuration: struct defaults, overridden by an
// optional config file, the way cmd/pixie's config.go loads its own.
// Environment variables are not read.
type config struct {
	OutputPath string `mapstructure:"output_path" default:"a.out"`
	Verbose    bool   `mapstructure:"verbose" default:"false"`
}

func loadConfig(path string) (*config, error) {
	cfg := &config{}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("failed to set config defaults: %w", err)
	}

	if path == "" {
		return cfg, nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from '%s': %w", path, err)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
