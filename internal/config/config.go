package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DatabaseURLFallback is printed in place of the database URL whenever
// DATABASE_URL is unset. The URL is informational only at this layer: it is
// displayed, never parsed.
const DatabaseURLFallback = "not configured"

// Config represents the application configuration structure.
// Everything can be provided through environment variables; a YAML file is
// optional. The PYTHON_ENV / DATABASE_URL names are kept verbatim so existing
// deployments of the service keep working unchanged.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"PYTHON_ENV" env-default:"development" yaml:"environment"`

	// DatabaseURL is the connection string of the backing datastore. It is
	// read once at startup for diagnostics and not otherwise consumed.
	DatabaseURL string `env:"DATABASE_URL" yaml:"databaseUrl"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:"0.0.0.0:8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// CORS controls which browser origins may call the API with credentials.
	CORS struct {
		// AllowedOrigins lists origins permitted by the CORS middleware.
		// Defaults cover the local frontend and its compose service name.
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://frontend:3000" yaml:"allowedOrigins"` //nolint: lll
	} `yaml:"cors"`

	// Watch controls development-mode file watching. When active, the serve
	// loop restarts the HTTP server after changes under the watched paths.
	Watch struct {
		// Enabled forces watching on or off. When WATCH_ENABLED is unset,
		// watching follows the environment: on in development, off otherwise.
		Enabled bool `env:"WATCH_ENABLED" yaml:"enabled"`
		// Paths are the directories observed for changes.
		Paths []string `env:"WATCH_PATHS" env-default:"." yaml:"paths"`
		// Debounce is how long to coalesce bursts of file events before restarting.
		Debounce time.Duration `env:"WATCH_DEBOUNCE" env-default:"500ms" yaml:"debounce"`
	} `yaml:"watch"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load returns a filled Config struct. When the given YAML file exists it is
// read first with environment variables layered on top; otherwise the
// configuration comes from the environment alone, so a config file is never
// required for container deployments.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("could not read config from environment: %w", err)
	}

	return &cfg, nil
}

// IsDevelopment reports whether the service runs with the development
// environment label.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// WatchEnabled reports whether the serve loop should watch files and restart.
// An explicit WATCH_ENABLED wins; otherwise watching is tied to development.
func (c *Config) WatchEnabled() bool {
	if _, explicit := os.LookupEnv("WATCH_ENABLED"); explicit {
		return c.Watch.Enabled
	}

	return c.IsDevelopment()
}

// DisplayDatabaseURL returns the database URL for diagnostics, substituting
// the literal fallback when it is unset.
func (c *Config) DisplayDatabaseURL() string {
	if c.DatabaseURL == "" {
		return DatabaseURLFallback
	}

	return c.DatabaseURL
}

// Diagnostics writes the two startup lines reporting the environment label
// and the datastore URL. The exact wording is part of the operational
// contract; deploy tooling greps for it.
func (c *Config) Diagnostics(w io.Writer) {
	fmt.Fprintf(w, "Environment: %s\n", c.Environment)
	fmt.Fprintf(w, "Database URL: %s\n", c.DisplayDatabaseURL())
}
