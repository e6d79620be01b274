package metrics

import (
	"time"

	"coverage.antennemap.fr/internal/coverage"
	"coverage.antennemap.fr/internal/ingest"
	"coverage.antennemap.fr/internal/models"
)

// PublishIngest exposes the merge outcome.
func PublishIngest(stats ingest.MergeStats) {
	AntennasIngested.Set(float64(stats.Merged))
	RowsDropped.WithLabelValues("unmatched").Set(float64(stats.DroppedUnmatched))
	RowsDropped.WithLabelValues("invalid_coordinates").Set(float64(stats.DroppedInvalid))
	RowsDropped.WithLabelValues("duplicate").Set(float64(stats.DroppedDuplicates))
}

// PublishAnalysis exposes the per-operator analysis outcome and the run
// duration. Called once per run, after the join barrier; serve mode then
// holds these values steady until the next run.
func PublishAnalysis(result models.AnalysisResult, duration time.Duration) {
	counts := map[models.OperatorStatus]int{}
	for _, rep := range result.Reports {
		counts[rep.Status]++
		OperatorPointCount.WithLabelValues(rep.Operator).Set(float64(rep.PointCount))
		if rep.Stats != nil {
			OperatorMeanDistanceKm.WithLabelValues(rep.Operator).Set(rep.Stats.Mean)
			OperatorMedianDistanceKm.WithLabelValues(rep.Operator).Set(rep.Stats.Median)
		}
	}

	for _, status := range []models.OperatorStatus{models.StatusComputed, models.StatusSkipped, models.StatusFailed} {
		OperatorsByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}

	AnalysisDuration.Set(duration.Seconds())
}

// PublishGrids exposes the low-coverage cell counts per operator.
func PublishGrids(grids []coverage.OperatorGrid) {
	for _, g := range grids {
		LowCoverageCells.WithLabelValues(g.Operator).Set(float64(len(g.LowCoverage())))
	}
}
