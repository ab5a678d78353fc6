// Package handler implements the JSON endpoints of the chat backend. Routes
// keep the paths and response shapes the frontend already consumes.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"chatbackend/internal/chat"
	"chatbackend/pkg/logger"
	"chatbackend/pkg/metrics"
	"chatbackend/pkg/serrors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Deps carries everything the handlers need. Environment and DatabaseURL are
// display values reported by the health endpoint; they arrive pre-resolved
// from configuration.
type Deps struct {
	// Completer answers chat invocations. Required.
	Completer chat.Completer
	// Metrics records token usage per completion. Optional.
	Metrics *metrics.Metrics

	// Environment is the deployment environment label.
	Environment string
	// DatabaseURL is the datastore URL display value.
	DatabaseURL string
}

// Handler serves the application routes.
type Handler struct {
	deps Deps
}

// New returns a Handler with the given dependencies.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register attaches all application routes to the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/test", h.APITest).Methods(http.MethodGet)
	r.HandleFunc("/invoke", h.Invoke).Methods(http.MethodPost)
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
	}
}

// writeError maps err to an HTTP status through its semantic kind and writes
// a JSON error body. Internal errors are logged but not echoed to the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := serrors.HTTPStatus(err)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = "internal server error"
	} else {
		logger.Warn(ctx, "request rejected", zap.Error(err))
	}

	writeJSON(ctx, w, status, map[string]string{"error": msg})
}
