package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"coverage.antennemap.fr/internal/middleware"
)

// Routes builds the serve-mode handler:
//
//   - GET /v1/healthcheck: readiness and version information.
//   - GET /v1/operators: the per-operator coverage reports as JSON.
//   - GET /metrics: Prometheus exposition through the cached handler.
//
// The router is wrapped with Sentry capture and security headers. ctx stops
// the metrics cache refresh goroutine on shutdown.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/operators", app.operatorsHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
