// Package api configures and exposes the HTTP server, routes, metrics, docs
// and related middleware for the chat backend.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"chatbackend/internal/api/handler"
	"chatbackend/internal/chat"
	"chatbackend/internal/config"
	"chatbackend/pkg/controller"
	"chatbackend/pkg/logger"
	"chatbackend/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// Options holds configuration for the HTTP server. Zero durations fall back
// to the net/http defaults where applicable.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. "0.0.0.0:8000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler.
	RequestTimeout time.Duration
	// MaxHeaderBytes limits the bytes read while parsing request headers.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// AllowedOrigins lists the browser origins accepted by the CORS middleware.
	AllowedOrigins []string

	// Environment and DatabaseURL are the display values surfaced by the
	// health endpoint.
	Environment string
	// DatabaseURL must already carry the "not configured" fallback when unset.
	DatabaseURL string
}

// NewOptions maps the application configuration to server Options.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		Environment:       cfg.Environment,
		DatabaseURL:       cfg.DisplayDatabaseURL(),
	}
}

// Deps carries the application dependencies injected into the server.
type Deps struct {
	// Completer answers chat invocations.
	Completer chat.Completer
}

// NewServer wires up and returns a configured *http.Server. It sets up:
//   - application routes (root, health, api test, invoke)
//   - Prometheus metrics endpoint backed by a private registry
//   - embedded OpenAPI spec and its interactive docs UI
//   - pprof endpoints for profiling
//
// The mux is wrapped with CORS, metrics and logging middlewares and a global
// request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	// private registry so repeated construction (tests, watch-mode restarts)
	// never trips duplicate collector registration
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("could not create metrics: %w", err)
	}

	router := mux.NewRouter()

	handler.New(handler.Deps{
		Completer:   deps.Completer,
		Metrics:     m,
		Environment: opts.Environment,
		DatabaseURL: opts.DatabaseURL,
	}).Register(router)

	// prometheus metrics
	router.Handle(opts.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// OpenAPI spec and docs playground
	router.HandleFunc("/specs/v1.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	router.PathPrefix("/docs/").Handler(v5emb.New(
		"Personal Chat AI Backend",
		"/specs/v1.yaml",
		"/docs/",
	))

	// pprof
	router.PathPrefix("/debug/pprof/").Handler(controller.PprofMux())

	// middlewares, innermost first
	h := controller.WithMetrics(m, router)
	h = controller.WithCORS(opts.AllowedOrigins, h)
	h = controller.WithLogger(h)

	if opts.RequestTimeout > 0 {
		h = http.TimeoutHandler(h, opts.RequestTimeout, `{"error":"request timed out"}`)
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           h,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
		ErrorLog:          logger.StdLog(context.Background()),
	}, nil
}
