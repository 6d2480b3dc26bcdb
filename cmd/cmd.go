// Package cmd defines the command-line interface for shieldstats.
package cmd

import (
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(donateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("data-url", "", "URL of the JSON sample array (http, https or file)")
	rootCmd.PersistentFlags().String("pool", string(schema.AllPools), "Pools to chart: default or orchard or sapling")
	rootCmd.PersistentFlags().Bool("cumulative", true, "Cumulative totals every week, or per-4-week buckets when false")
	rootCmd.PersistentFlags().Bool("filter", false, "Also show the filtered series")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Timeout for fetching the data url")
	rootCmd.PersistentFlags().Int64("max-body-bytes", contract.DefaultMaxBodyBytes, "Largest accepted response body")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of chartCmd to Viper
	chartCmd.Flags().String("format", string(schema.SVGFormat), "Image format: svg or png")
	chartCmd.Flags().Int("chart-width", contract.DefaultChartWidth, "Image width in pixels")
	chartCmd.Flags().Int("chart-height", contract.DefaultChartHeight, "Image height in pixels")
	if err := viper.BindPFlags(chartCmd.Flags()); err != nil {
		contract.LogFatal("Error binding chart flags", err)
	}

	// Bind all flags of donateCmd to Viper
	donateCmd.Flags().String("address", "", "Recipient address (t, zs or u prefix)")
	donateCmd.Flags().Float64("amount", 0, "Amount in ZEC (0 leaves it to the wallet)")
	donateCmd.Flags().String("memo", "", "Memo for shielded recipients, at most 512 bytes")
	donateCmd.Flags().String("label", contract.DefaultLabel, "Label shown by the wallet")
	donateCmd.Flags().String("presets", contract.DefaultPresets, "Comma-separated preset amounts")
	if err := viper.BindPFlags(donateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding donate flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Listen address")
	serveCmd.Flags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long a loaded dataset is reused")
	serveCmd.Flags().Int("cache-size", contract.DefaultCacheSize, "How many datasets are kept in memory")
	serveCmd.Flags().String("log-level", "info", "Log level: debug or info or warn or error")
	serveCmd.Flags().String("log-format", "text", "Log format: text or json")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}
}
