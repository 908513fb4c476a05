package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/internal/server"
)

// serveCmd runs the HTTP evaluation API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP evaluation API.",
	Long: `Expose the evaluation engine over HTTP.

Endpoints:
  GET  /healthz             - liveness probe
  GET  /api/constants       - the built-in constant table
  POST /api/evaluate        - evaluate one expression
  POST /api/evaluate/batch  - evaluate and rank a batch

The server shuts down gracefully on SIGINT/SIGTERM.

Examples:
  constfit serve
  constfit serve --addr :9090 --precision 60`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Listening on %s\n", cfg.ServeAddr)
		if err := server.New(cfg).ListenAndServe(ctx); err != nil {
			contract.LogFatal("HTTP server failed", err)
		}
	},
}
