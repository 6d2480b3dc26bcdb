package cmd

import (
	"github.com/shieldstats/shieldstats/core"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/internal/loader"
	"github.com/spf13/cobra"
)

// seriesCmd prints the aggregated series.
var seriesCmd = &cobra.Command{
	Use:   "series [data-url]",
	Short: "Aggregate shielded activity into chart points.",
	Long: `Fetch per-block shielded activity samples and aggregate them into chart points.

Cumulative mode (the default) reports running totals every 8064 blocks
(about one week). Periodic mode (--cumulative=false) reports 32256-block
buckets (about four weeks), and its filtered series carry the unfiltered
remainder so the bars stack to the bucket total.

Orchard values before the pool saw any activity are reported as absent,
and --pool orchard drops every point below the Orchard activation height.

Examples:
  # Cumulative totals for both pools
  shieldstats series https://example.com/shielded.json

  # Four-week buckets for Sapling, including the filtered series
  shieldstats series --pool sapling --cumulative=false --filter

  # Export with hover text for a spreadsheet
  shieldstats series --output csv --output-file shielded.csv

  # Columnar export (writes shielded.parquet and shielded.run.parquet)
  shieldstats series --output parquet --output-file shielded.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, loader.NewFromConfig(cfg)); err != nil {
			contract.LogFatal("Cannot build series", err)
		}
	},
}
