package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/getsentry/sentry-go"

	"coverage.antennemap.fr/internal/report"
	"coverage.antennemap.fr/internal/utils"
)

// LoadFromFile overlays settings from a JSON configuration file onto cfg.
// Fields absent from the file keep their current values.
//
// Errors are reported to Sentry and returned with the offending path.
func (cfg *Config) LoadFromFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return fmt.Errorf("failed to read config file: %v", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return fmt.Errorf("failed to unmarshal JSON: %v", err)
	}

	return nil
}

// ApplyEnv overlays COVERAGE_* environment variables onto cfg. Unset
// variables leave the current values in place; unparsable numeric values are
// an error rather than a silent fallback.
func (cfg *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("COVERAGE_ANTENNAS"); ok {
		cfg.AntennasPath = v
	}
	if v, ok := os.LookupEnv("COVERAGE_LOCATIONS"); ok {
		cfg.LocationsPath = v
	}
	if v, ok := os.LookupEnv("COVERAGE_OUTPUT_DIR"); ok {
		cfg.OutputDir = v
	}
	if v, ok := os.LookupEnv("COVERAGE_ENV"); ok {
		cfg.Env = v
	}

	intVars := []struct {
		name string
		dst  *int
	}{
		{"COVERAGE_WORKERS", &cfg.Workers},
		{"COVERAGE_CHUNK_SIZE", &cfg.ChunkSize},
		{"COVERAGE_GRID_LEVEL", &cfg.GridLevel},
		{"COVERAGE_PORT", &cfg.Port},
	}
	for _, ev := range intVars {
		v, ok := os.LookupEnv(ev.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %v", ev.name, v, err)
		}
		*ev.dst = n
	}

	if v, ok := os.LookupEnv("COVERAGE_THRESHOLD_PERCENTILE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid COVERAGE_THRESHOLD_PERCENTILE value %q: %v", v, err)
		}
		cfg.ThresholdPercentile = f
	}

	return nil
}
