// Package render draws aggregated series with go-chart.
package render

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// barFill is the share of a bin taken by its bar.
const barFill = 0.8

// filteredAlpha is the opacity of a filtered series relative to its pool color.
const filteredAlpha = 140

var poolColors = map[schema.SeriesKey]drawing.Color{
	schema.OrchardSeries:         drawing.ColorFromHex("f4b728"),
	schema.OrchardFilteredSeries: drawing.ColorFromHex("f4b728").WithAlpha(filteredAlpha),
	schema.SaplingSeries:         drawing.ColorFromHex("2a7ab0"),
	schema.SaplingFilteredSeries: drawing.ColorFromHex("2a7ab0").WithAlpha(filteredAlpha),
}

var chartTitles = map[schema.ChartKind]string{
	schema.LineChart:       "Cumulative shielded volume",
	schema.StackedBarChart: "Shielded volume per 4 weeks",
}

// Renderer builds go-chart charts of a fixed size.
type Renderer struct {
	Width  int
	Height int
}

var _ contract.Renderer = &Renderer{} // Compile-time check

// New returns a renderer for charts of the given pixel size.
func New(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// NewFromConfig returns a renderer sized by the chart options in cfg.
func NewFromConfig(cfg *contract.Config) *Renderer {
	return New(cfg.ChartWidth, cfg.ChartHeight)
}

// Render lays the chart data out as a go-chart chart.
func (r *Renderer) Render(data schema.ChartData) (contract.ChartInstance, error) {
	if data.Kind != schema.LineChart && data.Kind != schema.StackedBarChart {
		return nil, fmt.Errorf("unsupported chart kind %q", data.Kind)
	}
	xs := make([]float64, len(data.Heights))
	for i, h := range data.Heights {
		xs[i] = float64(h)
	}

	var series []chart.Series
	if data.Stacked {
		series = barSeries(data, xs)
	} else {
		series = lineSeries(data, xs)
	}
	for _, s := range series {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	ch := &chart.Chart{
		Title:      chartTitles[data.Kind],
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Block height",
			Range:          xRange(data),
			ValueFormatter: heightFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "ZEC",
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax(data)},
			ValueFormatter: amountFormatter,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}

	return &Chart{chart: ch}, nil
}

func lineSeries(data schema.ChartData, xs []float64) []chart.Series {
	out := make([]chart.Series, 0, len(data.Series))
	for _, s := range data.Series {
		out = append(out, gapLineSeries{
			name:   s.Label,
			style:  chart.Style{StrokeColor: poolColors[s.Key], StrokeWidth: 2},
			xs:     xs,
			values: s.Values,
		})
	}
	return out
}

func barSeries(data schema.ChartData, xs []float64) []chart.Series {
	values := make([][]*float64, len(data.Series))
	for i, s := range data.Series {
		values[i] = s.Values
	}
	bases := stackBases(values, len(xs))

	out := make([]chart.Series, 0, len(data.Series))
	for i, s := range data.Series {
		out = append(out, stackedBarSeries{
			name: s.Label,
			style: chart.Style{
				StrokeColor: poolColors[s.Key],
				FillColor:   poolColors[s.Key],
				StrokeWidth: 1,
			},
			xs:       xs,
			bases:    bases[i],
			values:   s.Values,
			barWidth: float64(schema.MonthlyBlocks) * barFill,
		})
	}
	return out
}

// xRange spans the heights, padded by half a bin for bars.
// The range is never empty.
func xRange(data schema.ChartData) *chart.ContinuousRange {
	if len(data.Heights) == 0 {
		return &chart.ContinuousRange{Min: 0, Max: float64(schema.WeeklyBlocks)}
	}
	lo := float64(data.Heights[0])
	hi := float64(data.Heights[len(data.Heights)-1])
	pad := float64(schema.WeeklyBlocks) / 2
	if data.Stacked {
		pad = float64(schema.MonthlyBlocks) / 2
	} else if hi > lo {
		pad = 0
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// yMax returns the top of the value axis: the largest line value or stack top.
func yMax(data schema.ChartData) float64 {
	top := 0.0
	if data.Stacked {
		totals := make([]float64, len(data.Heights))
		for _, s := range data.Series {
			for i, v := range s.Values {
				if v != nil && i < len(totals) {
					totals[i] += *v
				}
			}
		}
		for _, t := range totals {
			top = max(top, t)
		}
	} else {
		for _, s := range data.Series {
			for _, v := range s.Values {
				if v != nil {
					top = max(top, *v)
				}
			}
		}
	}
	if top <= 0 {
		return 1
	}
	return top * 1.05
}

func heightFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

func amountFormatter(v any) string {
	if f, ok := v.(float64); ok {
		return schema.FormatValue(f, 2)
	}
	return fmt.Sprint(v)
}

func validateLengths(name string, xs []float64, values []*float64) error {
	if len(xs) != len(values) {
		return fmt.Errorf("series %q: %d values for %d heights", name, len(values), len(xs))
	}
	return nil
}

// Chart is a rendered chart that can be encoded until destroyed.
type Chart struct {
	mu        sync.Mutex
	chart     *chart.Chart
	destroyed bool
}

var _ contract.ChartInstance = &Chart{} // Compile-time check

// WriteTo encodes the chart as SVG or PNG.
func (c *Chart) WriteTo(w io.Writer, format schema.ChartFormat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return contract.ErrChartDestroyed
	}

	var provider chart.RendererProvider
	switch format {
	case schema.SVGFormat:
		provider = chart.SVG
	case schema.PNGFormat:
		provider = chart.PNG
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}
	if err := c.chart.Render(provider, w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}
	return nil
}

// Destroy drops the chart. It is safe to call more than once.
func (c *Chart) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
	c.chart = nil
}

// Series returns the names of the drawn series in draw order.
func (c *Chart) Series() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chart == nil {
		return nil
	}
	names := make([]string, 0, len(c.chart.Series))
	for _, s := range c.chart.Series {
		names = append(names, s.GetName())
	}
	return names
}
