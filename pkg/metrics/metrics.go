// Package metrics owns the service instruments. They are defined through the
// OpenTelemetry metric API and exported through a Prometheus registry, so the
// HTTP server can serve them from its metrics path.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram bucket boundaries in
// seconds, reused for latency instruments across the application.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Metrics bundles the instruments recorded by the HTTP layer and the chat
// seam. Create one per process with New and share it.
type Metrics struct {
	provider *sdkmetric.MeterProvider

	requests metric.Int64Counter
	latency  metric.Float64Histogram
	tokens   metric.Int64Counter
}

// New builds the meter provider backed by the given Prometheus registerer and
// creates the service instruments on it.
func New(reg prometheus.Registerer) (*Metrics, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	meter := provider.Meter("chatbackend")

	requests, err := meter.Int64Counter("http_requests",
		metric.WithDescription("Handled HTTP requests by method, path and status code."))
	if err != nil {
		return nil, fmt.Errorf("could not create request counter: %w", err)
	}

	latency, err := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request handling latency in seconds."),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create latency histogram: %w", err)
	}

	tokens, err := meter.Int64Counter("chat_tokens",
		metric.WithDescription("Tokens reported by completions, by kind."))
	if err != nil {
		return nil, fmt.Errorf("could not create token counter: %w", err)
	}

	return &Metrics{
		provider: provider,
		requests: requests,
		latency:  latency,
		tokens:   tokens,
	}, nil
}

// RecordRequest counts one handled request and observes its latency.
func (m *Metrics) RecordRequest(ctx context.Context, method, path string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)

	m.requests.Add(ctx, 1, attrs)
	m.latency.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordTokens counts token usage reported by a completion. Kinds with a zero
// count are skipped so unset usage does not create empty series.
func (m *Metrics) RecordTokens(ctx context.Context, input, output, reasoning int64) {
	for kind, n := range map[string]int64{
		"input":     input,
		"output":    output,
		"reasoning": reasoning,
	} {
		if n == 0 {
			continue
		}

		m.tokens.Add(ctx, n, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// Shutdown flushes the meter provider. Call it during graceful shutdown.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if err := m.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shut down meter provider: %w", err)
	}

	return nil
}
