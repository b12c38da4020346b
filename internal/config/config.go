// Package config loads covergen settings from an optional YAML file and
// COVERGEN_* environment variables.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the settings shared by the commands. Command-line flags
// override these values when set explicitly.
type Config struct {
	OutputDir string `yaml:"output_dir" env:"COVERGEN_OUTPUT_DIR" env-default:"covers" env-description:"directory receiving generated covers"`
	Workers   int    `yaml:"workers" env:"COVERGEN_WORKERS" env-default:"0" env-description:"concurrent workers, 0 means one per CPU"`
	DB        string `yaml:"db" env:"COVERGEN_DB" env-description:"baseline ledger database path"`
	ThemesDir string `yaml:"themes_dir" env:"COVERGEN_THEMES_DIR" env-description:"CUE theme catalog directory"`
	Addr      string `yaml:"addr" env:"COVERGEN_ADDR" env-default:":8080" env-description:"HTTP listen address"`
	Stars     int    `yaml:"stars" env:"COVERGEN_STARS" env-default:"25" env-description:"starfield size"`
	Particles int    `yaml:"particles" env:"COVERGEN_PARTICLES" env-default:"20" env-description:"particle count"`
}

// Load reads path (if non-empty) and then the environment. Environment
// variables win over file values.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no command can use.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Stars < 0 {
		return fmt.Errorf("stars must be non-negative, got %d", c.Stars)
	}
	if c.Particles < 0 {
		return fmt.Errorf("particles must be non-negative, got %d", c.Particles)
	}
	return nil
}

// Usage describes the environment variables.
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}
