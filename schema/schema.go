// Package schema has configs, models and constants shared by all parts of shieldstats.
package schema

// RawSample is one observation of shielded activity at a block height.
// Pool fields are deltas since the previous sample, not running totals.
type RawSample struct {
	Height          int64   `json:"height"`
	Sapling         float64 `json:"sapling"`
	SaplingFiltered float64 `json:"sapling_filter"`
	Orchard         float64 `json:"orchard"`
	OrchardFiltered float64 `json:"orchard_filter"`
}

// AggregatedPoint is one chart x-axis tick.
// A nil Orchard or OrchardFiltered means "no activity yet" and is drawn as a gap.
type AggregatedPoint struct {
	Height          int64    `json:"height"`
	Sapling         float64  `json:"sapling"`
	SaplingFiltered float64  `json:"saplingFiltered"`
	Orchard         *float64 `json:"orchard"`
	OrchardFiltered *float64 `json:"orchardFiltered"`
}

// Value returns the point's value for the given series key.
// The boolean is false when the value is absent.
func (p AggregatedPoint) Value(key SeriesKey) (float64, bool) {
	switch key {
	case SaplingSeries:
		return p.Sapling, true
	case SaplingFilteredSeries:
		return p.SaplingFiltered, true
	case OrchardSeries:
		return Deref(p.Orchard)
	case OrchardFilteredSeries:
		return Deref(p.OrchardFiltered)
	default:
		return 0, false
	}
}

// AggregateParams holds the inputs that shape an aggregation.
type AggregateParams struct {
	Mode         Mode       `json:"mode"`
	Pool         PoolFilter `json:"pool"`
	ShowFiltered bool       `json:"filter"`
}

// Series is one renderable track. Values line up with ChartData.Heights.
type Series struct {
	Key    SeriesKey  `json:"key"`
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

// ChartData is everything a renderer needs to draw one chart.
type ChartData struct {
	Kind    ChartKind `json:"kind"`
	Stacked bool      `json:"stacked"`
	Heights []int64   `json:"heights"`
	Series  []Series  `json:"series"`
}

// SeriesResult is the outcome of one load-aggregate pass, used by all outputs.
type SeriesResult struct {
	DataURL string            `json:"dataUrl"`
	Params  AggregateParams   `json:"params"`
	Samples int               `json:"samples"`
	Points  []AggregatedPoint `json:"points"`
	Chart   ChartData         `json:"chart"`
}
