// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSeries prints aggregated series using the configured output format.
func (ow *OutWriter) WriteSeries(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	return PrintSeriesResults(result, cfg, duration)
}

// WriteChart encodes a rendered chart using the configured chart format.
func (ow *OutWriter) WriteChart(chart contract.ChartInstance, cfg *contract.Config) error {
	return PrintChart(chart, cfg)
}

// WriteDonation prints a donation request using the configured output format.
func (ow *OutWriter) WriteDonation(view schema.DonationView, cfg *contract.Config) error {
	return PrintDonation(view, cfg)
}

// PrintChart writes the chart to the configured output file, or stdout.
// Binary images are not written to an interactive terminal.
func PrintChart(chart contract.ChartInstance, cfg *contract.Config) error {
	if cfg.OutputFile == "" && cfg.ChartFormat == schema.PNGFormat && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("refusing to write PNG to a terminal; use --output-file")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return chart.WriteTo(w, cfg.ChartFormat)
	}, fmt.Sprintf("Wrote %s chart", cfg.ChartFormat))
}
