// Package core ties loading, aggregation, rendering and output together.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shieldstats/shieldstats/core/donate"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/internal/outwriter"
	"github.com/shieldstats/shieldstats/schema"
)

// ErrNoDataURL is returned when a command needs data but no URL was configured.
var ErrNoDataURL = errors.New("no data url given (pass it as an argument, --data-url or SHIELDSTATS_DATA_URL)")

// output is shared by the executors.
var output = outwriter.NewOutWriter()

// GetSeriesResult loads cfg.DataURL and aggregates it without rendering.
func GetSeriesResult(ctx context.Context, cfg *contract.Config, loader contract.Loader) (schema.SeriesResult, error) {
	if cfg.DataURL == "" {
		return schema.SeriesResult{}, ErrNoDataURL
	}
	logSourceHeader(ctx, cfg)

	c := NewComponent(Options{DataURL: cfg.DataURL, Params: cfg.Params}, loader, nil)
	defer c.Close()
	if err := c.Load(ctx); err != nil {
		return schema.SeriesResult{}, err
	}
	return resultFromComponent(c), nil
}

// ExecuteSeries prints the aggregated points in the configured output format.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, loader contract.Loader) error {
	start := time.Now()
	result, err := GetSeriesResult(ctx, cfg, loader)
	if err != nil {
		return err
	}
	return output.WriteSeries(result, cfg, time.Since(start))
}

// ExecuteChart renders the chart and writes it as an SVG or PNG image.
func ExecuteChart(ctx context.Context, cfg *contract.Config, loader contract.Loader, renderer contract.Renderer) error {
	if cfg.DataURL == "" {
		return ErrNoDataURL
	}
	logSourceHeader(ctx, cfg)

	c := NewComponent(Options{DataURL: cfg.DataURL, Params: cfg.Params}, loader, renderer)
	defer c.Close()
	if err := c.Load(ctx); err != nil {
		return err
	}
	return output.WriteChart(c.Chart(), cfg)
}

// ExecuteDonate builds the donation request from the widget settings and
// prints it with its payment URI.
func ExecuteDonate(_ context.Context, cfg *contract.Config) error {
	view, err := BuildDonation(cfg, cfg.DonationAmount, cfg.DonationMemo)
	if err != nil {
		return err
	}
	return output.WriteDonation(view, cfg)
}

// BuildDonation validates an amount and memo against the configured widget.
func BuildDonation(cfg *contract.Config, amount float64, memo string) (schema.DonationView, error) {
	widget := donate.FromConfig(cfg)
	req, err := widget.Request(amount, memo)
	if err != nil {
		return schema.DonationView{}, err
	}
	return widget.View(req), nil
}

func resultFromComponent(c *Component) schema.SeriesResult {
	opts := c.Options()
	return schema.SeriesResult{
		DataURL: opts.DataURL,
		Params:  opts.Params,
		Samples: c.Samples(),
		Points:  c.Points(),
		Chart:   c.ChartData(),
	}
}

// logSourceHeader prints which dataset is being charted.
func logSourceHeader(ctx context.Context, cfg *contract.Config) {
	if shouldSuppressHeader(ctx) {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "🔎 Source: %s (Mode: %s, Pool: %s)\n", cfg.DataURL, cfg.Params.Mode, cfg.Params.Pool)
}
