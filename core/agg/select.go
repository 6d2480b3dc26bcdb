package agg

import (
	"github.com/shieldstats/shieldstats/schema"
)

// SelectSeries returns the series keys handed to the renderer, in draw order.
// Pools are emitted orchard first; a pool's filtered series precedes its raw
// series so it is drawn beneath it.
func SelectSeries(pool schema.PoolFilter, showFiltered bool) []schema.SeriesKey {
	var keys []schema.SeriesKey
	addPool := func(raw, filtered schema.SeriesKey) {
		if showFiltered {
			keys = append(keys, filtered)
		}
		keys = append(keys, raw)
	}
	if pool != schema.SaplingOnly {
		addPool(schema.OrchardSeries, schema.OrchardFilteredSeries)
	}
	if pool != schema.OrchardOnly {
		addPool(schema.SaplingSeries, schema.SaplingFilteredSeries)
	}
	return keys
}

// BuildChart lays the points out as renderer-ready series for the parameters.
func BuildChart(points []schema.AggregatedPoint, params schema.AggregateParams) schema.ChartData {
	heights := make([]int64, len(points))
	for i, p := range points {
		heights[i] = p.Height
	}

	keys := SelectSeries(params.Pool, params.ShowFiltered)
	series := make([]schema.Series, 0, len(keys))
	for _, key := range keys {
		values := make([]*float64, len(points))
		for i, p := range points {
			if v, ok := p.Value(key); ok {
				values[i] = schema.Float(v)
			}
		}
		series = append(series, schema.Series{
			Key:    key,
			Label:  schema.SeriesLabels[key],
			Values: values,
		})
	}

	kind := params.Mode.Kind()
	return schema.ChartData{
		Kind:    kind,
		Stacked: kind == schema.StackedBarChart,
		Heights: heights,
		Series:  series,
	}
}

// Run aggregates the samples and builds the chart in one call.
func Run(samples []schema.RawSample, params schema.AggregateParams) ([]schema.AggregatedPoint, schema.ChartData) {
	points := Aggregate(samples, params)
	return points, BuildChart(points, params)
}
