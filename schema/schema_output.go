package schema

// EnrichedPoint adds presentation data to an AggregatedPoint.
type EnrichedPoint struct {
	Index    int      `json:"index"`
	Tooltips []string `json:"tooltips"`
	AggregatedPoint
}

// PointTooltips returns the hover text for each present value of the point,
// in the order of the given series.
func PointTooltips(p AggregatedPoint, series []Series, precision int) []string {
	tips := make([]string, 0, len(series))
	for _, s := range series {
		if v, ok := p.Value(s.Key); ok {
			tips = append(tips, Tooltip(s.Label, v, precision))
		}
	}
	return tips
}

// EnrichPoints adds index and tooltips to a list of points.
func EnrichPoints(points []AggregatedPoint, series []Series, precision int) []EnrichedPoint {
	output := make([]EnrichedPoint, len(points))
	for i, p := range points {
		output[i] = EnrichedPoint{
			Index:           i,
			Tooltips:        PointTooltips(p, series, precision),
			AggregatedPoint: p,
		}
	}
	return output
}
