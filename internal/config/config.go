// Package config holds the runtime settings of the coverage analyzer and the
// logic to assemble them from defaults, an optional JSON file, environment
// variables and command-line flags (lowest to highest precedence).
package config

import (
	"fmt"

	"coverage.antennemap.fr/internal/geo"
)

// Config holds all the configuration settings for our application.
type Config struct {
	// Input datasets (semicolon-delimited, Latin-1 encoded CSV).
	AntennasPath  string `json:"antennas_path"`
	LocationsPath string `json:"locations_path"`

	// Where maps, GeoJSON files and reports are written.
	OutputDir string `json:"output_dir"`

	// Engine tuning. Workers <= 0 means one worker per CPU; ChunkSize <= 0
	// disables chunking within an operator.
	Workers   int `json:"workers"`
	ChunkSize int `json:"chunk_size"`

	// Coverage grid resolution and the percentile below which a cell counts
	// as low-coverage.
	GridLevel           int     `json:"grid_level"`
	ThresholdPercentile float64 `json:"threshold_percentile"`

	// HTTP server settings for serve mode.
	Port int    `json:"port"`
	Env  string `json:"env"`
}

// NewConfig returns a Config populated with defaults. Input paths have no
// default and must come from a file, the environment or flags.
func NewConfig() *Config {
	return &Config{
		OutputDir:           "out",
		ChunkSize:           1000,
		GridLevel:           geo.DefaultGridLevel,
		ThresholdPercentile: 10,
		Port:                4000,
		Env:                 "development",
	}
}

// Validate checks settings that would otherwise fail deep inside the run.
func (cfg *Config) Validate() error {
	if cfg.AntennasPath == "" {
		return fmt.Errorf("no antennas dataset specified")
	}
	if cfg.LocationsPath == "" {
		return fmt.Errorf("no locations dataset specified")
	}
	if cfg.GridLevel < 0 || cfg.GridLevel > 30 {
		return fmt.Errorf("grid level %d out of range [0, 30]", cfg.GridLevel)
	}
	if cfg.ThresholdPercentile < 0 || cfg.ThresholdPercentile > 100 {
		return fmt.Errorf("threshold percentile %.1f out of range [0, 100]", cfg.ThresholdPercentile)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	switch cfg.Env {
	case "development", "staging", "production", "testing":
	default:
		return fmt.Errorf("unknown environment %q", cfg.Env)
	}
	return nil
}
