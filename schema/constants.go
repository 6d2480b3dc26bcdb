package schema

// Custom string types for type safety.
type (
	// Mode selects how raw samples are folded into chart points.
	Mode string

	// PoolFilter restricts which shielded pools reach the chart.
	PoolFilter string

	// OutputMode represents the format of the series output.
	OutputMode string

	// ChartFormat represents the image format of a rendered chart.
	ChartFormat string

	// ChartKind represents the visual chart type.
	ChartKind string

	// SeriesKey identifies one of the four logical chart series.
	SeriesKey string
)

// Block-height constants. These are fixed and have no override point.
const (
	// WeeklyBlocks is one week of 75 second blocks; cumulative downsampling window.
	WeeklyBlocks int64 = 8064

	// MonthlyBlocks is four weeks of blocks; periodic binning window.
	MonthlyBlocks int64 = 4 * WeeklyBlocks

	// OrchardActivationHeight is the first height at which the orchard pool can hold value.
	OrchardActivationHeight int64 = 1687104
)

// All aggregation modes supported.
const (
	CumulativeMode Mode = "cumulative" // default
	PeriodicMode   Mode = "periodic"
)

// All pool filters supported. The string values match the widget's "pool" option.
const (
	AllPools    PoolFilter = "default" // default
	OrchardOnly PoolFilter = "orchard"
	SaplingOnly PoolFilter = "sapling"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All chart formats supported.
const (
	SVGFormat ChartFormat = "svg" // default
	PNGFormat ChartFormat = "png"
)

// All chart kinds supported.
const (
	LineChart       ChartKind = "line"
	StackedBarChart ChartKind = "stacked-bar"
)

// Keys of the four logical series.
const (
	OrchardSeries         SeriesKey = "orchard"
	OrchardFilteredSeries SeriesKey = "orchard_filtered"
	SaplingSeries         SeriesKey = "sapling"
	SaplingFilteredSeries SeriesKey = "sapling_filtered"
)

// ValidModes lists all valid aggregation modes.
var ValidModes = map[Mode]struct{}{
	CumulativeMode: {},
	PeriodicMode:   {},
}

// ValidPoolFilters lists all valid pool filters.
var ValidPoolFilters = map[PoolFilter]struct{}{
	AllPools:    {},
	OrchardOnly: {},
	SaplingOnly: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidChartFormats lists all valid chart formats.
var ValidChartFormats = map[ChartFormat]struct{}{
	SVGFormat: {},
	PNGFormat: {},
}

// SeriesLabels maps series keys to their display labels.
var SeriesLabels = map[SeriesKey]string{
	OrchardSeries:         "Orchard",
	OrchardFilteredSeries: "Orchard (filtered)",
	SaplingSeries:         "Sapling",
	SaplingFilteredSeries: "Sapling (filtered)",
}

// ModeFromCumulative maps the widget's boolean "cumulative" option to a Mode.
func ModeFromCumulative(cumulative bool) Mode {
	if cumulative {
		return CumulativeMode
	}
	return PeriodicMode
}

// Kind returns the chart kind drawn for the mode.
func (m Mode) Kind() ChartKind {
	if m == PeriodicMode {
		return StackedBarChart
	}
	return LineChart
}
