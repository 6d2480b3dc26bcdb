package cmd

import (
	"github.com/shieldstats/shieldstats/core"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/internal/loader"
	"github.com/shieldstats/shieldstats/internal/render"
	"github.com/spf13/cobra"
)

// chartCmd renders the chart image.
var chartCmd = &cobra.Command{
	Use:   "chart [data-url]",
	Short: "Render the shielded activity chart as SVG or PNG.",
	Long: `Fetch and aggregate shielded activity samples, then draw them.

Cumulative mode draws one line per series with gaps where a value is absent.
Periodic mode draws stacked bars, one stack per bucket.

PNG output is binary and is only written to a terminal through --output-file.

Examples:
  # SVG to stdout
  shieldstats chart https://example.com/shielded.json > shielded.svg

  # Large PNG of the periodic Orchard bars
  shieldstats chart --pool orchard --cumulative=false --format png \
    --chart-width 1600 --chart-height 600 --output-file orchard.png`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteChart(rootCtx, cfg, loader.NewFromConfig(cfg), render.NewFromConfig(cfg))
		if err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}
