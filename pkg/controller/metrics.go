package controller

import (
	"net/http"
	"time"

	"chatbackend/pkg/metrics"
)

// WithMetrics returns a middleware that records the request counter and
// latency histogram for every handled request. The URL path is used as the
// path attribute; the route surface is fixed, so cardinality stays bounded.
func WithMetrics(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.RecordRequest(r.Context(), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
