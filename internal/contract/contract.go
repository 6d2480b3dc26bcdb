// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"
	"io"

	"github.com/shieldstats/shieldstats/schema"
)

// ErrChartDestroyed is returned when writing a chart after Destroy.
var ErrChartDestroyed = errors.New("chart has been destroyed")

// Loader fetches the raw sample sequence behind a data URL.
// This allows the chart pipeline to be tested without a network.
type Loader interface {
	// Load returns the samples in ascending height order. Failures are
	// reported as *schema.FetchError or *schema.ParseError.
	Load(ctx context.Context, url string) ([]schema.RawSample, error)
}

// Renderer turns chart data into a drawable chart instance.
type Renderer interface {
	Render(data schema.ChartData) (ChartInstance, error)
}

// ChartInstance is one rendered chart, exclusively owned by whoever asked for it.
type ChartInstance interface {
	// WriteTo encodes the chart in the given image format.
	WriteTo(w io.Writer, format schema.ChartFormat) error

	// Destroy releases the chart. Later writes fail with ErrChartDestroyed.
	Destroy()
}
