// Package engine computes per-operator nearest-neighbor coverage distances
// over the merged antenna point set. Computation functions return plain
// results; all user-facing output lives in the export layer.
package engine

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"

	"coverage.antennemap.fr/internal/models"
	"coverage.antennemap.fr/internal/report"
	"coverage.antennemap.fr/internal/stats"
	"coverage.antennemap.fr/internal/utils"
)

// Engine runs the nearest-neighbor analysis. Workers bounds the fan-out
// across operators; ChunkSize bounds the fan-out across index ranges within
// one operator. Both default sensibly when left zero.
type Engine struct {
	Workers   int
	ChunkSize int
	Logger    *slog.Logger
}

// New returns an Engine with the given pool size and chunk size. workers <= 0
// falls back to the machine's CPU count.
func New(workers, chunkSize int, logger *slog.Logger) *Engine {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		Workers:   workers,
		ChunkSize: chunkSize,
		Logger:    logger,
	}
}

// Run groups the merged points by operator, computes nearest-neighbor
// distances for each operator on a bounded worker pool, and aggregates the
// results. It returns once every operator has completed; a failure in one
// operator is recorded in its report and never aborts the others.
func (e *Engine) Run(points []models.Point) models.AnalysisResult {
	sets := GroupByOperator(points)

	type task struct {
		index int
		set   models.OperatorPointSet
	}

	tasks := make(chan task)
	reports := make([]models.OperatorReport, len(sets))

	var wg sync.WaitGroup
	for w := 0; w < e.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				reports[t.index] = e.analyzeOperator(t.set)
			}
		}()
	}

	for i, set := range sets {
		tasks <- task{index: i, set: set}
	}
	close(tasks)

	// Join barrier: aggregation below a report is already done per operator,
	// but nothing downstream may observe a partial result set.
	wg.Wait()

	stats.SortByMean(reports)

	return models.AnalysisResult{
		Points:  points,
		Reports: reports,
	}
}

// analyzeOperator produces the report for a single operator's point set.
// Input data is read-only; each call owns its result entirely.
func (e *Engine) analyzeOperator(set models.OperatorPointSet) (rep models.OperatorReport) {
	rep = models.OperatorReport{
		Operator:   set.Operator,
		PointCount: len(set.Points),
	}

	// A panic in one operator's computation must not take down the run.
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("operator %s: panic during analysis: %v", set.Operator, r)
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Tags:  utils.MakeMap("operator", set.Operator),
				Level: sentry.LevelError,
			})
			rep.Status = models.StatusFailed
			rep.Err = err.Error()
			rep.Distances = nil
			rep.Stats = nil
		}
	}()

	if len(set.Points) < MinPointsForDistance {
		e.Logger.Info("skipping operator with insufficient points",
			"operator", set.Operator, "points", len(set.Points))
		rep.Status = models.StatusSkipped
		return rep
	}

	distances := NearestNeighborDistances(set, e.ChunkSize)
	finite, dropped := filterFinite(distances)
	if dropped > 0 {
		e.Logger.Warn("dropped non-finite nearest-neighbor distances",
			"operator", set.Operator, "dropped", dropped)
	}

	operatorStats, err := stats.Aggregate(finite)
	if err != nil {
		err = fmt.Errorf("operator %s: no usable distances (%d dropped): %w", set.Operator, dropped, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("operator", set.Operator),
			Level: sentry.LevelError,
		})
		rep.Status = models.StatusFailed
		rep.Err = err.Error()
		return rep
	}

	rep.Status = models.StatusComputed
	rep.Distances = finite
	rep.Stats = &operatorStats
	return rep
}
