package api_test

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chatbackend/internal/api"
	"chatbackend/internal/chat"
	"chatbackend/internal/config"
	"chatbackend/pkg/logger"

	"github.com/stretchr/testify/require"
)

func testOptions(t *testing.T) api.Options {
	t.Helper()

	cfg, err := config.Load("does-not-exist.yml")
	require.NoError(t, err)

	return api.NewOptions(cfg)
}

func newTestServer(t *testing.T) *http.Server {
	t.Helper()
	logger.Setup(logger.DevelopmentEnvironment)

	srv, err := api.NewServer(api.Deps{Completer: chat.NewPlaceholder()}, testOptions(t))
	require.NoError(t, err)

	return srv
}

func TestNewOptionsFromConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://x")

	opts := testOptions(t)

	require.Equal(t, "0.0.0.0:8000", opts.Addr)
	require.Equal(t, "/metrics", opts.MetricsPath)
	require.Equal(t, "development", opts.Environment)
	require.Equal(t, "postgres://x", opts.DatabaseURL)
}

func TestServerRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{name: "root", path: "/", status: http.StatusOK},
		{name: "health", path: "/health", status: http.StatusOK},
		{name: "api test", path: "/api/test", status: http.StatusOK},
		{name: "metrics", path: "/metrics", status: http.StatusOK},
		{name: "openapi spec", path: "/specs/v1.yaml", status: http.StatusOK},
		{name: "docs", path: "/docs/", status: http.StatusOK},
		{name: "pprof index", path: "/debug/pprof/", status: http.StatusOK},
		{name: "unknown route", path: "/nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestServerHealthBody(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "not configured", body["database_url"])
}

func TestServerRepeatedConstruction(t *testing.T) {
	// watch mode rebuilds the server; metrics registration must not collide
	for i := 0; i < 3; i++ {
		_, err := api.NewServer(api.Deps{Completer: chat.NewPlaceholder()}, testOptions(t))
		require.NoError(t, err)
	}
}

func TestServerPortConflict(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	opts := testOptions(t)
	opts.Addr = ln.Addr().String()

	srv, err := api.NewServer(api.Deps{Completer: chat.NewPlaceholder()}, opts)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		require.Error(t, err, "binding an occupied address must fail")
	case <-time.After(5 * time.Second):
		t.Fatal("second bind on an occupied address did not fail in time")
	}
}
