package main

import (
	"fmt"

	"chatbackend/internal/config"

	"github.com/spf13/cobra"
)

// configCommand prints the effective configuration, starting with the same
// two diagnostic lines the launcher emits. Useful to verify what a container
// will actually run with.
func configCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Prints the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			cfg.Diagnostics(out)
			fmt.Fprintf(out, "Listen address: %s\n", cfg.HTTP.Addr)
			fmt.Fprintf(out, "Metrics path: %s\n", cfg.HTTP.MetricsPath)
			fmt.Fprintf(out, "Allowed origins: %v\n", cfg.CORS.AllowedOrigins)
			fmt.Fprintf(out, "Watch enabled: %t\n", cfg.WatchEnabled())
			if cfg.WatchEnabled() {
				fmt.Fprintf(out, "Watch paths: %v\n", cfg.Watch.Paths)
				fmt.Fprintf(out, "Watch debounce: %s\n", cfg.Watch.Debounce)
			}
			fmt.Fprintf(out, "Graceful shutdown timeout: %s\n", cfg.GracefulShutdownTimeout)
		},
	}

	return cmd
}
