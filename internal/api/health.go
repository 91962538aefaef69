package api

import (
	"net/http"
	"time"

	respond "github.com/daylio-dash/daylio-dash/internal/api/respond"
)

// ServiceHealth is the view of the health aggregator the handler needs.
type ServiceHealth interface {
	IsHealthy() bool
	Components() map[string]bool
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	health ServiceHealth
}

func NewHealthHandler(h ServiceHealth) *HealthHandler { return &HealthHandler{health: h} }

// CheckHealth GET /api/health. 200 when every component is up, 503 otherwise.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "unhealthy", http.StatusServiceUnavailable
	if h.health.IsHealthy() {
		status, code = "healthy", http.StatusOK
	}
	respond.WriteJSON(w, code, map[string]interface{}{
		"status":     status,
		"components": h.health.Components(),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
