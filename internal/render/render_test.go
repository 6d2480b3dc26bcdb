package render

import (
	"bytes"
	"testing"

	"github.com/shieldstats/shieldstats/core/agg"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var f = schema.Float

func TestSegments(t *testing.T) {
	tests := []struct {
		name     string
		values   []*float64
		expected [][2]int
	}{
		{"empty", nil, nil},
		{"all absent", []*float64{nil, nil}, nil},
		{"all present", []*float64{f(1), f(2), f(3)}, [][2]int{{0, 3}}},
		{"leading gap", []*float64{nil, nil, f(1), f(2)}, [][2]int{{2, 4}}},
		{"inner gap", []*float64{f(1), nil, f(2), f(3)}, [][2]int{{0, 1}, {2, 4}}},
		{"trailing gap", []*float64{f(1), f(2), nil}, [][2]int{{0, 2}}},
		{"zero is present", []*float64{f(0), f(0)}, [][2]int{{0, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, segments(tt.values))
		})
	}
}

func TestStackBases(t *testing.T) {
	series := [][]*float64{
		{f(1), nil, f(3)},
		{f(10), f(20), nil},
		{f(100), f(200), f(300)},
	}

	bases := stackBases(series, 3)
	assert.Equal(t, []float64{0, 0, 0}, bases[0])
	assert.Equal(t, []float64{1, 0, 3}, bases[1])
	assert.Equal(t, []float64{11, 20, 3}, bases[2])
}

func TestXRange(t *testing.T) {
	r := xRange(schema.ChartData{Heights: []int64{8064, 16128}})
	assert.Equal(t, 8064.0, r.Min)
	assert.Equal(t, 16128.0, r.Max)

	r = xRange(schema.ChartData{Heights: []int64{8064}})
	assert.Less(t, r.Min, r.Max, "a single height still yields a usable range")

	r = xRange(schema.ChartData{Stacked: true, Heights: []int64{32256, 64512}})
	assert.Equal(t, 16128.0, r.Min)
	assert.Equal(t, 80640.0, r.Max)

	r = xRange(schema.ChartData{})
	assert.Less(t, r.Min, r.Max)
}

func TestYMax(t *testing.T) {
	line := schema.ChartData{Series: []schema.Series{
		{Values: []*float64{f(1), nil, f(4)}},
		{Values: []*float64{f(2), f(3), nil}},
	}}
	assert.InDelta(t, 4*1.05, yMax(line), 1e-9)

	stacked := line
	stacked.Stacked = true
	stacked.Heights = []int64{0, 32256, 64512}
	assert.InDelta(t, 4*1.05, yMax(stacked), 1e-9)

	stacked.Series[1].Values[2] = f(6)
	assert.InDelta(t, 10*1.05, yMax(stacked), 1e-9)

	assert.Equal(t, 1.0, yMax(schema.ChartData{}))
}

func chartData(mode schema.Mode) schema.ChartData {
	samples := []schema.RawSample{
		{Height: 0, Sapling: 5, SaplingFiltered: 1},
		{Height: 8064, Sapling: 2},
		{Height: 16128, Orchard: 3, OrchardFiltered: 1},
		{Height: 32256, Sapling: 1, Orchard: 1},
		{Height: 64512, Sapling: 4, SaplingFiltered: 2},
	}
	_, data := agg.Run(samples, schema.AggregateParams{Mode: mode, Pool: schema.AllPools, ShowFiltered: true})
	return data
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		mode   schema.Mode
		format schema.ChartFormat
		prefix string
	}{
		{"line svg", schema.CumulativeMode, schema.SVGFormat, "<svg"},
		{"bar svg", schema.PeriodicMode, schema.SVGFormat, "<svg"},
		{"line png", schema.CumulativeMode, schema.PNGFormat, "\x89PNG"},
		{"bar png", schema.PeriodicMode, schema.PNGFormat, "\x89PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := New(640, 320).Render(chartData(tt.mode))
			require.NoError(t, err)
			defer inst.Destroy()

			var buf bytes.Buffer
			require.NoError(t, inst.WriteTo(&buf, tt.format))
			assert.True(t, bytes.Contains(buf.Bytes(), []byte(tt.prefix)))
		})
	}
}

func TestRender_SVGLegend(t *testing.T) {
	inst, err := New(640, 320).Render(chartData(schema.CumulativeMode))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, inst.WriteTo(&buf, schema.SVGFormat))
	svg := buf.String()
	assert.Contains(t, svg, "Cumulative shielded volume")
	assert.Contains(t, svg, "Sapling")
	assert.Contains(t, svg, "Orchard")
}

func TestRender_SeriesOrder(t *testing.T) {
	inst, err := New(640, 320).Render(chartData(schema.PeriodicMode))
	require.NoError(t, err)

	c, ok := inst.(*Chart)
	require.True(t, ok)
	assert.Equal(t, []string{"Orchard (filtered)", "Orchard", "Sapling (filtered)", "Sapling"}, c.Series())
}

func TestRender_Empty(t *testing.T) {
	_, data := agg.Run(nil, schema.AggregateParams{Mode: schema.CumulativeMode, Pool: schema.AllPools})
	inst, err := New(320, 200).Render(data)
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, inst.WriteTo(&buf, schema.SVGFormat))
}

func TestRender_Errors(t *testing.T) {
	_, err := New(320, 200).Render(schema.ChartData{Kind: "pie"})
	assert.Error(t, err)

	_, err = New(320, 200).Render(schema.ChartData{
		Kind:    schema.LineChart,
		Heights: []int64{0, 8064},
		Series:  []schema.Series{{Key: schema.SaplingSeries, Values: []*float64{f(1)}}},
	})
	assert.ErrorContains(t, err, "1 values for 2 heights")
}

func TestChart_WriteAfterDestroy(t *testing.T) {
	inst, err := New(320, 200).Render(chartData(schema.CumulativeMode))
	require.NoError(t, err)

	inst.Destroy()
	inst.Destroy()

	var buf bytes.Buffer
	assert.ErrorIs(t, inst.WriteTo(&buf, schema.SVGFormat), contract.ErrChartDestroyed)
	assert.Zero(t, buf.Len())
}

func TestChart_UnknownFormat(t *testing.T) {
	inst, err := New(320, 200).Render(chartData(schema.CumulativeMode))
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, inst.WriteTo(&buf, "gif"))
}

func TestNewFromConfig(t *testing.T) {
	r := NewFromConfig(&contract.Config{ChartWidth: 800, ChartHeight: 300})
	assert.Equal(t, &Renderer{Width: 800, Height: 300}, r)
}
