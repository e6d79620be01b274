package app

import (
	"io"
	"log/slog"
	"testing"

	"coverage.antennemap.fr/internal/config"
	"coverage.antennemap.fr/internal/models"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Env = "testing"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(cfg, logger, "test-version")
}

func testAnalysisResult() models.AnalysisResult {
	return models.AnalysisResult{
		Reports: []models.OperatorReport{
			{
				Operator:   "ORANGE",
				PointCount: 3,
				Status:     models.StatusComputed,
				Stats:      &models.OperatorStatistics{Mean: 1.2, Median: 1.1, StdDev: 0.2, Min: 0.9, Max: 1.5, Count: 3},
			},
			{Operator: "TINY", PointCount: 1, Status: models.StatusSkipped},
		},
	}
}
