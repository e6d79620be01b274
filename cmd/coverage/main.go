package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"coverage.antennemap.fr/internal/app"
	"coverage.antennemap.fr/internal/config"
	"coverage.antennemap.fr/internal/coverage"
	"coverage.antennemap.fr/internal/engine"
	"coverage.antennemap.fr/internal/export"
	"coverage.antennemap.fr/internal/geocode"
	"coverage.antennemap.fr/internal/ingest"
	"coverage.antennemap.fr/internal/metrics"
	"coverage.antennemap.fr/internal/models"
	"coverage.antennemap.fr/internal/report"
	"coverage.antennemap.fr/internal/utils"
)

const version = "1.0.0"

func main() {
	// Local development keeps SENTRY_DSN and friends in a .env file; absence
	// is not an error.
	_ = godotenv.Load()

	cfg := config.NewConfig()

	var (
		configFile = flag.String("config-file", "", "Path to a JSON configuration file")
		antennas   = flag.String("antennas", cfg.AntennasPath, "Path to the ANFR antennas CSV")
		locations  = flag.String("locations", cfg.LocationsPath, "Path to the ANFR support locations CSV")
		outputDir  = flag.String("output-dir", cfg.OutputDir, "Directory for maps, GeoJSON and reports")
		workers    = flag.Int("workers", cfg.Workers, "Concurrent operator analyses (0 = one per CPU)")
		chunkSize  = flag.Int("chunk-size", cfg.ChunkSize, "Points per chunk within an operator (0 = no chunking)")
		gridLevel  = flag.Int("grid-level", cfg.GridLevel, "S2 cell level for the coverage grid")
		threshold  = flag.Float64("threshold-percentile", cfg.ThresholdPercentile, "Percentile below which a grid cell is low-coverage")
		port       = flag.Int("port", cfg.Port, "API server port for serve mode")
		env        = flag.String("env", cfg.Env, "Environment (development|staging|production)")
		serve      = flag.Bool("serve", false, "Expose results and metrics over HTTP after the analysis")
		locate     = flag.String("locate", "", "Geocode this address and report the nearest antenna per operator")
		operator   = flag.String("operator", "", "Restrict locate mode to a single operator")
	)
	flag.Parse()

	if *configFile != "" {
		if err := cfg.LoadFromFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the file and the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "antennas":
			cfg.AntennasPath = *antennas
		case "locations":
			cfg.LocationsPath = *locations
		case "output-dir":
			cfg.OutputDir = *outputDir
		case "workers":
			cfg.Workers = *workers
		case "chunk-size":
			cfg.ChunkSize = *chunkSize
		case "grid-level":
			cfg.GridLevel = *gridLevel
		case "threshold-percentile":
			cfg.ThresholdPercentile = *threshold
		case "port":
			cfg.Port = *port
		case "env":
			cfg.Env = *env
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	report.SetupSentry()
	defer report.FlushSentry()
	report.ConfigureScope(cfg.Env, version)

	logger := newLogger()

	points, mergeStats, err := ingest.Load(cfg.AntennasPath, cfg.LocationsPath, logger)
	if err != nil {
		report.ReportError(err, sentry.LevelFatal)
		logger.Error("Failed to load datasets", "error", err)
		os.Exit(1)
	}
	metrics.PublishIngest(mergeStats)

	if *locate != "" {
		if err := runLocate(points, *locate, *operator); err != nil {
			report.ReportError(err)
			logger.Error("Locate failed", "address", *locate, "error", err)
			os.Exit(1)
		}
		return
	}

	if err := utils.CreateOutputDirectory(cfg.OutputDir); err != nil {
		logger.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}

	eng := engine.New(cfg.Workers, cfg.ChunkSize, logger)
	start := time.Now()
	result := eng.Run(points)
	elapsed := time.Since(start)
	metrics.PublishAnalysis(result, elapsed)
	logger.Info("Analysis finished", "operators", len(result.Reports), "duration", elapsed)

	sets := engine.GroupByOperator(points)
	grids := make([]coverage.OperatorGrid, 0, len(sets))
	for _, set := range sets {
		grid := coverage.BuildGrid(set, cfg.GridLevel, cfg.ThresholdPercentile)
		grids = append(grids, grid)

		path := filepath.Join(cfg.OutputDir, operatorFileName(set.Operator)+".geojson")
		if err := export.WriteGeoJSON(path, export.BuildOperatorFeatureCollection(set, grid)); err != nil {
			report.ReportError(err)
			logger.Error("Failed to write GeoJSON", "operator", set.Operator, "error", err)
		}
	}
	metrics.PublishGrids(grids)

	mapPath := filepath.Join(cfg.OutputDir, "coverage_map.html")
	if err := export.WriteHTMLMap(mapPath, result, sets); err != nil {
		report.ReportError(err)
		logger.Error("Failed to write coverage map", "error", err)
	} else {
		logger.Info("Coverage map written", "path", mapPath)
	}

	if err := export.WriteSummaryTable(os.Stdout, result); err != nil {
		logger.Error("Failed to write summary table", "error", err)
	}

	if !*serve {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	application := app.New(cfg, logger, version)
	application.SetResult(result)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}

// runLocate geocodes an address and prints the closest antenna for each
// operator (or just one, when a filter is given).
func runLocate(points []models.Point, address, operatorFilter string) error {
	client := app.NewPooledClient()
	geocoder := geocode.NewNominatim(client, "antennemap-coverage/"+version)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	lat, lon, err := geocoder.Geocode(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to geocode %q: %w", address, err)
	}
	fmt.Printf("%s resolves to (%.4f, %.4f)\n", address, lat, lon)

	filter := ingest.NormalizeOperator(operatorFilter)
	matched := false
	for _, set := range engine.GroupByOperator(points) {
		if operatorFilter != "" && set.Operator != filter {
			continue
		}
		matched = true
		antenna, distanceKm, err := engine.NearestAntenna(set, lat, lon)
		if err != nil {
			return err
		}
		export.WriteNearestAntenna(os.Stdout, set.Operator, antenna, distanceKm)
	}
	if !matched {
		return fmt.Errorf("no antennas found for operator %q", operatorFilter)
	}
	return nil
}

// operatorFileName turns an operator label into a safe file stem, e.g.
// "FREE MOBILE" becomes "free_mobile".
func operatorFileName(operator string) string {
	s := strings.ToLower(operator)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
	return strings.Trim(s, "_")
}

// newLogger builds the slog logger from LOG_LEVEL and LOG_FORMAT, defaulting
// to text at info level.
func newLogger() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	var handler slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	return slog.New(handler)
}
