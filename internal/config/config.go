// Package config loads fitlens.yaml into a typed configuration. Every field
// has a default, so the binary runs with no file present; the file overrides
// only what it names.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/ideal206/fitlens/internal/measure"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig holds the SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// DetectorConfig holds the pose-detection bridge settings. An empty Script
// or Python falls back to a search of well-known locations.
type DetectorConfig struct {
	Script             string  `mapstructure:"script"`
	Python             string  `mapstructure:"python"`
	ModelComplexity    int     `mapstructure:"model_complexity"`
	MinConfidence      float64 `mapstructure:"min_confidence"`
	EnableSegmentation bool    `mapstructure:"enable_segmentation"`
}

// ChartsConfig points at an optional external size-chart file. Empty means
// the embedded catalog.
type ChartsConfig struct {
	Path string `mapstructure:"path"`
}

// AvatarConfig holds the optional face-cascade path.
type AvatarConfig struct {
	CascadePath string `mapstructure:"cascade_path"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Detector DetectorConfig `mapstructure:"detector"`
	Charts   ChartsConfig   `mapstructure:"charts"`
	Avatar   AvatarConfig   `mapstructure:"avatar"`
	Measure  measure.Params `mapstructure:"measure"`
}

// Default returns the configuration used when no file overrides anything.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: "fitlens.db"},
		Detector: DetectorConfig{
			ModelComplexity:    1,
			MinConfidence:      0.5,
			EnableSegmentation: true,
		},
		Measure: measure.DefaultParams(),
	}
}

// Load reads configuration from the given file, or from fitlens.yaml in the
// working directory when path is empty. A missing default file is fine; a
// missing explicit file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fitlens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal over the defaults: only keys present in the file are
	// touched, everything else keeps its default.
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}
