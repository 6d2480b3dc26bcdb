package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dotRadius is the radius of an isolated point on a line series.
const dotRadius = 3

// segments splits values into runs of present values, as [start, end) index pairs.
func segments(values []*float64) [][2]int {
	var out [][2]int
	start := -1
	for i, v := range values {
		switch {
		case v != nil && start < 0:
			start = i
		case v == nil && start >= 0:
			out = append(out, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, [2]int{start, len(values)})
	}
	return out
}

// stackBases returns, for each series, the value each bar starts from.
// Absent values contribute nothing to the stack.
func stackBases(series [][]*float64, n int) [][]float64 {
	bases := make([][]float64, len(series))
	running := make([]float64, n)
	for s, values := range series {
		bases[s] = make([]float64, n)
		copy(bases[s], running)
		for i := 0; i < n && i < len(values); i++ {
			if values[i] != nil {
				running[i] += *values[i]
			}
		}
	}
	return bases
}

// gapLineSeries is a line series that breaks at absent values.
type gapLineSeries struct {
	name   string
	style  chart.Style
	xs     []float64
	values []*float64
}

var _ chart.Series = gapLineSeries{} // Compile-time check

func (s gapLineSeries) GetName() string           { return s.name }
func (s gapLineSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s gapLineSeries) GetStyle() chart.Style     { return s.style }
func (s gapLineSeries) Validate() error           { return validateLengths(s.name, s.xs, s.values) }

// Render draws each contiguous run as a polyline and lone points as dots.
func (s gapLineSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.style.InheritFrom(defaults)
	stroke := style.GetStrokeColor()

	for _, seg := range segments(s.values) {
		x0 := canvasBox.Left + xrange.Translate(s.xs[seg[0]])
		y0 := canvasBox.Bottom - yrange.Translate(*s.values[seg[0]])
		if seg[1]-seg[0] == 1 {
			r.SetFillColor(stroke)
			r.SetStrokeColor(drawing.ColorTransparent)
			r.Circle(dotRadius, x0, y0)
			r.Fill()
			continue
		}

		r.SetStrokeColor(stroke)
		r.SetStrokeWidth(style.GetStrokeWidth())
		r.MoveTo(x0, y0)
		for i := seg[0] + 1; i < seg[1]; i++ {
			r.LineTo(canvasBox.Left+xrange.Translate(s.xs[i]), canvasBox.Bottom-yrange.Translate(*s.values[i]))
		}
		r.Stroke()
	}
}

// stackedBarSeries draws one layer of a stacked bar chart.
type stackedBarSeries struct {
	name     string
	style    chart.Style
	xs       []float64
	bases    []float64
	values   []*float64
	barWidth float64 // in x-axis units
}

var _ chart.Series = stackedBarSeries{} // Compile-time check

func (s stackedBarSeries) GetName() string           { return s.name }
func (s stackedBarSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s stackedBarSeries) GetStyle() chart.Style     { return s.style }
func (s stackedBarSeries) Validate() error           { return validateLengths(s.name, s.xs, s.values) }

// Render draws one rectangle per present value, on top of its base.
func (s stackedBarSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := s.style.InheritFrom(defaults)
	half := s.barWidth / 2

	for i, v := range s.values {
		if v == nil || *v == 0 {
			continue
		}
		left := canvasBox.Left + xrange.Translate(s.xs[i]-half)
		right := canvasBox.Left + xrange.Translate(s.xs[i]+half)
		bottom := canvasBox.Bottom - yrange.Translate(s.bases[i])
		top := canvasBox.Bottom - yrange.Translate(s.bases[i]+*v)

		r.SetFillColor(style.GetFillColor())
		r.SetStrokeColor(style.GetStrokeColor())
		r.SetStrokeWidth(style.GetStrokeWidth())
		r.MoveTo(left, bottom)
		r.LineTo(right, bottom)
		r.LineTo(right, top)
		r.LineTo(left, top)
		r.Close()
		r.FillStroke()
	}
}
