package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shieldstats/shieldstats/core/agg"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
)

// State is the lifecycle state of a chart component.
type State int

// All component states.
const (
	Loading State = iota
	Ready
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrSuperseded is returned by Load when a newer load or an option change
// made its result obsolete. The component state is left untouched.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Options configures a chart component.
type Options struct {
	DataURL string
	Params  schema.AggregateParams
}

// Component owns one load, aggregate and render pipeline.
//
// Each Load bumps a generation counter; a load whose generation is no longer
// current when it finishes is discarded. In-flight fetches are not cancelled.
type Component struct {
	mu       sync.Mutex
	loader   contract.Loader
	renderer contract.Renderer

	opts    Options
	gen     uint64
	state   State
	err     error
	closed  bool
	samples []schema.RawSample
	points  []schema.AggregatedPoint
	data    schema.ChartData
	chart   contract.ChartInstance
}

// NewComponent returns a component in the Loading state. A nil renderer
// skips rendering; points and chart data are still produced.
func NewComponent(opts Options, loader contract.Loader, renderer contract.Renderer) *Component {
	return &Component{
		loader:   loader,
		renderer: renderer,
		opts:     opts,
		state:    Loading,
	}
}

// SetOptions applies new options. It returns true when the data URL changed
// and the caller has to Load again. A parameter change on held samples is
// re-aggregated and re-rendered right away.
func (c *Component) SetOptions(opts Options) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	prev := c.opts
	c.opts = opts
	if opts.DataURL != prev.DataURL {
		c.gen++
		c.startLoading()
		return true
	}
	if opts.Params != prev.Params && c.samples != nil {
		c.rebuild()
	}
	return false
}

// Load fetches the configured data URL and builds the chart from it.
func (c *Component) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrSuperseded
	}
	c.gen++
	gen := c.gen
	url := c.opts.DataURL
	c.startLoading()
	c.mu.Unlock()

	samples, err := c.loader.Load(ctx, url)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return ErrSuperseded
	}
	if err != nil {
		c.fail(err)
		return err
	}
	if samples == nil {
		samples = []schema.RawSample{}
	}
	c.samples = samples
	c.rebuild()
	return c.err
}

// rebuild aggregates the held samples and renders them. Caller holds c.mu.
func (c *Component) rebuild() {
	c.points, c.data = agg.Run(c.samples, c.opts.Params)
	c.releaseChart()
	if c.renderer != nil {
		chart, err := c.renderer.Render(c.data)
		if err != nil {
			c.fail(fmt.Errorf("render chart: %w", err))
			return
		}
		c.chart = chart
	}
	c.state = Ready
	c.err = nil
}

// startLoading drops everything derived from the previous load, so nothing
// is rendered while a fetch is outstanding. Caller holds c.mu.
func (c *Component) startLoading() {
	c.state = Loading
	c.err = nil
	c.samples = nil
	c.points = nil
	c.data = schema.ChartData{}
	c.releaseChart()
}

// fail records err and drops derived state. Caller holds c.mu.
func (c *Component) fail(err error) {
	c.state = Failed
	c.err = err
	c.points = nil
	c.data = schema.ChartData{}
	c.releaseChart()
}

func (c *Component) releaseChart() {
	if c.chart != nil {
		c.chart.Destroy()
		c.chart = nil
	}
}

// State returns the current lifecycle state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the failure behind the Failed state, or nil.
func (c *Component) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Options returns the current options.
func (c *Component) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// Samples returns the number of samples behind the current points.
func (c *Component) Samples() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

// Points returns a copy of the aggregated points.
func (c *Component) Points() []schema.AggregatedPoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.points)
}

// ChartData returns the data last handed to the renderer.
func (c *Component) ChartData() schema.ChartData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Chart returns the rendered chart, or nil when none is held.
// The component keeps ownership; callers must not Destroy it.
func (c *Component) Chart() contract.ChartInstance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chart
}

// Close releases the chart and discards any in-flight load.
func (c *Component) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.gen++
	c.releaseChart()
}
