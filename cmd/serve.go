package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/shieldstats/shieldstats/core"
	"github.com/shieldstats/shieldstats/internal/loader"
	"github.com/shieldstats/shieldstats/internal/log"
	"github.com/shieldstats/shieldstats/internal/render"
	"github.com/shieldstats/shieldstats/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd runs the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve [data-url]",
	Short: "Serve the chart, series and donation widget over HTTP.",
	Long: `Start an HTTP server for one dataset.

Routes:
  GET /             page with the chart, point table and donation widget
  GET /chart.svg    chart image (also /chart.png)
  GET /api/series   aggregated points as json, csv or text (?output=)
  GET /api/donate   payment request for ?amount= and ?memo=
  GET /health       liveness probe

Every data route accepts ?pool=, ?cumulative= and ?filter=. The data url is
fixed at startup; loaded datasets are shared between requests for --cache-ttl.

Examples:
  shieldstats serve https://example.com/shielded.json --addr :8080

  SHIELDSTATS_ADDRESS=u1... shieldstats serve --log-format json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.DataURL == "" {
			return core.ErrNoDataURL
		}

		logger := log.New(log.Config{
			Level:     log.ParseLevel(viper.GetString("log-level")),
			Component: log.ComponentHTTP,
			JSON:      viper.GetString("log-format") == "json",
			Output:    os.Stderr,
		})

		cached := loader.NewCachingLoader(loader.NewFromConfig(cfg), cfg.CacheSize, cfg.CacheTTL)
		srv, err := server.New(cfg, cached, render.NewFromConfig(cfg), logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}
