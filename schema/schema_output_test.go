package schema_test

import (
	"testing"

	"github.com/shieldstats/shieldstats/schema"
	"github.com/stretchr/testify/assert"
)

func TestPointTooltips(t *testing.T) {
	series := []schema.Series{
		{Key: schema.OrchardFilteredSeries, Label: "Orchard (filtered)"},
		{Key: schema.OrchardSeries, Label: "Orchard"},
		{Key: schema.SaplingSeries, Label: "Sapling"},
	}

	tests := []struct {
		name     string
		point    schema.AggregatedPoint
		expected []string
	}{
		{
			name:     "absent orchard values are skipped",
			point:    schema.AggregatedPoint{Height: 8064, Sapling: 20},
			expected: []string{"Sapling: 20"},
		},
		{
			name: "all values present",
			point: schema.AggregatedPoint{
				Height:          1693440,
				Sapling:         12.5,
				Orchard:         schema.Float(3),
				OrchardFiltered: schema.Float(1.25),
			},
			expected: []string{"Orchard (filtered): 1.25", "Orchard: 3", "Sapling: 12.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.PointTooltips(tt.point, series, 2))
		})
	}
}

func TestEnrichPoints(t *testing.T) {
	points := []schema.AggregatedPoint{
		{Height: 0, Sapling: 10},
		{Height: 8064, Sapling: 20},
	}
	series := []schema.Series{{Key: schema.SaplingSeries, Label: "Sapling"}}

	enriched := schema.EnrichPoints(points, series, 1)

	assert.Len(t, enriched, 2)
	assert.Equal(t, 0, enriched[0].Index)
	assert.Equal(t, 1, enriched[1].Index)
	assert.Equal(t, int64(8064), enriched[1].Height)
	assert.Equal(t, []string{"Sapling: 20"}, enriched[1].Tooltips)
}

func TestEnrichPoints_Empty(t *testing.T) {
	enriched := schema.EnrichPoints(nil, nil, 1)
	assert.Empty(t, enriched)
}
