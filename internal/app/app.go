// Package app wires the serve-mode HTTP surface: it holds the finished
// analysis result and exposes it, together with health and metrics
// endpoints, over httprouter.
package app

import (
	"log/slog"
	"sync"

	"coverage.antennemap.fr/internal/config"
	"coverage.antennemap.fr/internal/models"
)

// Application holds the dependencies of the HTTP handlers and the analysis
// result they serve. The result is written once by the pipeline and read by
// concurrent requests, hence the lock.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Version string

	mu     sync.RWMutex
	result *models.AnalysisResult
}

// New creates an Application. The result is empty until SetResult is called;
// the healthcheck reports not-ready until then.
func New(cfg *config.Config, logger *slog.Logger, version string) *Application {
	return &Application{
		Config:  cfg,
		Logger:  logger,
		Version: version,
	}
}

// SetResult publishes a finished analysis to the HTTP handlers.
func (app *Application) SetResult(result models.AnalysisResult) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.result = &result
}

// Result returns the current analysis result. ok is false before the first
// SetResult.
func (app *Application) Result() (models.AnalysisResult, bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	if app.result == nil {
		return models.AnalysisResult{}, false
	}
	return *app.result, true
}
