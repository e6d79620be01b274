package metrics

import (
	"testing"
	"time"

	"coverage.antennemap.fr/internal/coverage"
	"coverage.antennemap.fr/internal/ingest"
	"coverage.antennemap.fr/internal/models"
)

func TestPublishIngest(t *testing.T) {
	PublishIngest(ingest.MergeStats{
		Merged:            120,
		DroppedUnmatched:  3,
		DroppedInvalid:    2,
		DroppedDuplicates: 5,
	})

	got, err := getGaugeValue(AntennasIngested)
	if err != nil {
		t.Fatalf("failed to read AntennasIngested: %v", err)
	}
	if got != 120 {
		t.Errorf("AntennasIngested = %v, want 120", got)
	}

	dropped, err := getMetricValue(RowsDropped, map[string]string{"reason": "duplicate"})
	if err != nil {
		t.Fatalf("failed to read RowsDropped: %v", err)
	}
	if dropped != 5 {
		t.Errorf("RowsDropped{duplicate} = %v, want 5", dropped)
	}
}

func TestPublishAnalysis(t *testing.T) {
	result := models.AnalysisResult{
		Reports: []models.OperatorReport{
			{
				Operator:   "ORANGE",
				PointCount: 42,
				Status:     models.StatusComputed,
				Stats:      &models.OperatorStatistics{Mean: 3.5, Median: 2.1, Count: 42},
			},
			{Operator: "TINY", PointCount: 1, Status: models.StatusSkipped},
		},
	}

	PublishAnalysis(result, 1500*time.Millisecond)

	mean, err := getMetricValue(OperatorMeanDistanceKm, map[string]string{"operator": "ORANGE"})
	if err != nil {
		t.Fatalf("failed to read mean gauge: %v", err)
	}
	if mean != 3.5 {
		t.Errorf("mean gauge = %v, want 3.5", mean)
	}

	skipped, err := getMetricValue(OperatorsByStatus, map[string]string{"status": "skipped"})
	if err != nil {
		t.Fatalf("failed to read status gauge: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped operators = %v, want 1", skipped)
	}

	dur, err := getGaugeValue(AnalysisDuration)
	if err != nil {
		t.Fatalf("failed to read duration gauge: %v", err)
	}
	if dur != 1.5 {
		t.Errorf("AnalysisDuration = %v, want 1.5", dur)
	}
}

func TestPublishGrids(t *testing.T) {
	PublishGrids([]coverage.OperatorGrid{
		{
			Operator:  "SFR",
			Threshold: 1,
			Cells: []coverage.Cell{
				{ID: "a", Count: 1},
				{ID: "b", Count: 1},
				{ID: "c", Count: 9},
			},
		},
	})

	low, err := getMetricValue(LowCoverageCells, map[string]string{"operator": "SFR"})
	if err != nil {
		t.Fatalf("failed to read low-coverage gauge: %v", err)
	}
	if low != 2 {
		t.Errorf("LowCoverageCells{SFR} = %v, want 2", low)
	}
}
