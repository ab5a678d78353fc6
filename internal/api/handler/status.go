package handler

import (
	"net/http"

	"chatbackend/internal/version"
)

// Root confirms the service is up.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"message": "Personal Chat AI Backend is running!",
	})
}

// healthResponse is the body of the health endpoint. The environment and
// database fields mirror the startup diagnostics so orchestrators can verify
// both from one probe.
type healthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	DatabaseURL string `json:"database_url"`
}

// Health reports liveness plus the effective environment configuration.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, healthResponse{
		Status:      "healthy",
		Environment: h.deps.Environment,
		DatabaseURL: h.deps.DatabaseURL,
	})
}

// APITest returns a static payload used by the frontend to verify
// connectivity end to end.
func (h *Handler) APITest(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"message": "Test endpoint working!",
		"data": map[string]string{
			"backend": "Go",
			"version": version.Version,
			"status":  "operational",
		},
	})
}
