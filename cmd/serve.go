package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chatbackend/internal/api"
	"chatbackend/internal/chat"
	"chatbackend/internal/config"
	"chatbackend/internal/watch"
	"chatbackend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startServer runs the webserver in a goroutine and reports its terminal
// error (nil after a clean Shutdown) on the returned channel.
func startServer(ctx context.Context, srv *http.Server) <-chan error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", srv.Addr))

		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	return errCh
}

// stopServer gives in-flight requests the configured grace period.
func stopServer(ctx context.Context, srv *http.Server, cfg *config.Config) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
	defer cancel()

	logger.Info(ctx, "stopping webserver...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "could not stop webserver", zap.Error(err))
	}
}

// serveCommand is the process launcher: it prints the startup diagnostics,
// then runs the webserver until a signal arrives. In watch mode the server is
// rebuilt (with freshly loaded configuration) whenever watched files change.
// A server failure, such as the listen address already being in use, makes
// the process exit non-zero.
func serveCommand(cfg *config.Config, configPath string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP server",
		// a failed bind is a runtime error, not a usage mistake
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg.Diagnostics(os.Stdout)

			var reload <-chan struct{}
			if cfg.WatchEnabled() {
				watcher, err := watch.New(ctx, cfg.Watch.Paths, cfg.Watch.Debounce)
				if err != nil {
					logger.Warn(ctx, "file watching disabled", zap.Error(err))
				} else {
					defer watcher.Close()
					watcher.Start(ctx)
					reload = watcher.Reload()
					logger.Info(ctx, "watching for file changes",
						zap.Strings("paths", cfg.Watch.Paths))
				}
			}

			for {
				srv, err := api.NewServer(
					api.Deps{Completer: chat.NewPlaceholder()},
					api.NewOptions(cfg),
				)
				if err != nil {
					return err
				}

				errCh := startServer(ctx, srv)

				select {
				case err := <-errCh:
					if err != nil {
						logger.Error(ctx, "webserver failed", zap.Error(err))
					}

					return err

				case <-ctx.Done():
					stopServer(ctx, srv, cfg)

					return nil

				case <-reload:
					logger.Info(ctx, "file change detected, restarting webserver...")
					stopServer(ctx, srv, cfg)

					// pick up config edits on restart; keep serving with the
					// old config when the new one does not load
					if fresh, err := config.Load(configPath); err == nil {
						cfg = fresh
					} else {
						logger.Warn(ctx, "could not reload config", zap.Error(err))
					}
				}
			}
		},
	}

	return cmd
}
