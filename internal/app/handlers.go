package app

import (
	"encoding/json"
	"net/http"
)

// HealthStatus is the JSON body of GET /v1/healthcheck. Ready flips to true
// once an analysis result has been published to the application.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Operators   int    `json:"operators"`
	Ready       bool   `json:"ready"`
}

// healthcheckHandler responds with the application's health status. Before
// the analysis has finished it responds 500 so load balancers hold traffic.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	result, ready := app.Result()

	status := HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Operators:   len(result.Reports),
		Ready:       ready,
	}

	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(status)
}

// operatorsHandler responds with the per-operator coverage reports, in the
// order the engine sorted them (ascending mean distance, then skipped and
// failed operators).
func (app *Application) operatorsHandler(w http.ResponseWriter, r *http.Request) {
	result, ready := app.Result()
	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "analysis not finished"})
		return
	}
	json.NewEncoder(w).Encode(result)
}
