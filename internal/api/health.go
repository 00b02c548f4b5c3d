package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse represents the JSON response from the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Documents int    `json:"documents"`
	Archive   string `json:"archive"`
	Timestamp string `json:"timestamp"`
}

// DocumentCounter reports how many documents are loaded.
type DocumentCounter interface {
	Len() int
}

// NewHealthHandler creates an HTTP handler for the /health endpoint.
// The archive is optional; when set, an unreachable archive makes the service unhealthy.
func NewHealthHandler(store DocumentCounter, archive HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "healthy",
			Documents: store.Len(),
			Archive:   "disabled",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		status := http.StatusOK

		if archive != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
			defer cancel()

			if err := archive.Health(ctx); err != nil {
				response.Status = "unhealthy"
				response.Archive = "disconnected"
				status = http.StatusServiceUnavailable
			} else {
				response.Archive = "connected"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}
}
