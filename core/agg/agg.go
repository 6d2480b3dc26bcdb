// Package agg has aggregation logic for shielded pool activity data.
package agg

import (
	"github.com/shieldstats/shieldstats/schema"
)

// totals holds the four running accumulators threaded through a single pass.
type totals struct {
	sapling         float64
	saplingFiltered float64
	orchard         float64
	orchardFiltered float64
}

// add folds one sample's deltas into the running totals.
func (t *totals) add(s schema.RawSample) {
	t.sapling += s.Sapling
	t.saplingFiltered += s.SaplingFiltered
	t.orchard += s.Orchard
	t.orchardFiltered += s.OrchardFiltered
}

// reset zeroes all accumulators at a bin boundary.
func (t *totals) reset() {
	*t = totals{}
}

// cumulativePoint reports the running totals as-is.
func (t totals) cumulativePoint(height int64) schema.AggregatedPoint {
	return schema.AggregatedPoint{
		Height:          height,
		Sapling:         t.sapling,
		SaplingFiltered: t.saplingFiltered,
		Orchard:         schema.NonZero(t.orchard),
		OrchardFiltered: schema.NonZero(t.orchardFiltered),
	}
}

// periodicPoint reports a bucket. The filtered series carry the complement
// (total minus filtered), and both orchard fields are absent only when the
// bucket saw no orchard activity at all.
func (t totals) periodicPoint(height int64) schema.AggregatedPoint {
	p := schema.AggregatedPoint{
		Height:          height,
		Sapling:         t.sapling,
		SaplingFiltered: t.sapling - t.saplingFiltered,
	}
	if t.orchard != 0 {
		p.Orchard = schema.Float(t.orchard)
		p.OrchardFiltered = schema.Float(t.orchard - t.orchardFiltered)
	}
	return p
}

// Aggregate converts ordered samples into chart points for the given parameters.
// Samples must be sorted by ascending height; the input is never modified.
func Aggregate(samples []schema.RawSample, params schema.AggregateParams) []schema.AggregatedPoint {
	var points []schema.AggregatedPoint
	switch params.Mode {
	case schema.PeriodicMode:
		points = aggregatePeriodic(samples, schema.MonthlyBlocks)
	default:
		points = aggregateCumulative(samples, schema.WeeklyBlocks)
	}
	if params.Pool == schema.OrchardOnly {
		points = dropBeforeHeight(points, schema.OrchardActivationHeight)
	}
	return points
}

// aggregateCumulative keeps running totals across the whole sequence and emits
// only the points whose height is an exact multiple of step.
func aggregateCumulative(samples []schema.RawSample, step int64) []schema.AggregatedPoint {
	points := make([]schema.AggregatedPoint, 0, len(samples)/4+1)
	var acc totals
	for _, s := range samples {
		acc.add(s)
		if s.Height%step != 0 {
			continue
		}
		points = append(points, acc.cumulativePoint(s.Height))
	}
	return points
}

// aggregatePeriodic sums samples into buckets that close at every height divisible
// by step. A boundary sample belongs to the bucket it closes; activity after the
// last boundary is not reported.
func aggregatePeriodic(samples []schema.RawSample, step int64) []schema.AggregatedPoint {
	points := make([]schema.AggregatedPoint, 0, len(samples)/16+1)
	var acc totals
	for _, s := range samples {
		acc.add(s)
		if s.Height%step != 0 {
			continue
		}
		points = append(points, acc.periodicPoint(s.Height))
		acc.reset()
	}
	return points
}

// dropBeforeHeight removes points below the given height.
func dropBeforeHeight(points []schema.AggregatedPoint, height int64) []schema.AggregatedPoint {
	kept := points[:0]
	for _, p := range points {
		if p.Height >= height {
			kept = append(kept, p)
		}
	}
	return kept
}
