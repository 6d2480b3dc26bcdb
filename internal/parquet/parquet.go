// Package parquet provides data structures and functions for exporting aggregated
// shielded series to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shieldstats/shieldstats/schema"
)

// SeriesRow is one aggregated point. Orchard columns are null before the
// pool carries any value.
type SeriesRow struct {
	// Height is the representative block height of the point
	Height int64 `parquet:"height,snappy"`

	// Mode is the aggregation mode that produced the point
	Mode string `parquet:"mode,snappy,dict"`

	// Pool is the pool filter the point was produced with
	Pool string `parquet:"pool,snappy,dict"`

	Sapling         float64  `parquet:"sapling,snappy"`
	SaplingFiltered float64  `parquet:"sapling_filtered,snappy"`
	Orchard         *float64 `parquet:"orchard,optional,snappy"`
	OrchardFiltered *float64 `parquet:"orchard_filtered,optional,snappy"`
}

// SeriesRun describes the load that produced a set of rows.
type SeriesRun struct {
	// DataURL is where the raw samples came from
	DataURL string `parquet:"data_url,snappy"`

	Mode         string `parquet:"mode,snappy"`
	Pool         string `parquet:"pool,snappy"`
	ShowFiltered bool   `parquet:"show_filtered,snappy"`

	// SampleCount is the number of raw samples loaded
	SampleCount int32 `parquet:"sample_count,snappy"`

	// PointCount is the number of rows written next to this run
	PointCount int32 `parquet:"point_count,snappy"`

	// GeneratedAt is when the series was produced (TIMESTAMP with nanosecond precision)
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// DurationMs is the load and aggregate time in milliseconds (nullable)
	DurationMs *int32 `parquet:"duration_ms,optional,snappy"`
}

// RowsFromResult converts the points of a result into rows.
func RowsFromResult(result schema.SeriesResult) []SeriesRow {
	rows := make([]SeriesRow, len(result.Points))
	for i, p := range result.Points {
		rows[i] = SeriesRow{
			Height:          p.Height,
			Mode:            string(result.Params.Mode),
			Pool:            string(result.Params.Pool),
			Sapling:         p.Sapling,
			SaplingFiltered: p.SaplingFiltered,
			Orchard:         p.Orchard,
			OrchardFiltered: p.OrchardFiltered,
		}
	}
	return rows
}

// RunFromResult describes result as a run. A zero duration is stored as null.
func RunFromResult(result schema.SeriesResult, generatedAt time.Time, duration time.Duration) SeriesRun {
	run := SeriesRun{
		DataURL:      result.DataURL,
		Mode:         string(result.Params.Mode),
		Pool:         string(result.Params.Pool),
		ShowFiltered: result.Params.ShowFiltered,
		SampleCount:  int32(result.Samples),
		PointCount:   int32(len(result.Points)),
		GeneratedAt:  generatedAt,
	}
	if duration > 0 {
		ms := int32(duration.Milliseconds())
		run.DurationMs = &ms
	}
	return run
}

// RunPath returns the sidecar path for the run metadata of a series file.
func RunPath(seriesPath string) string {
	return strings.TrimSuffix(seriesPath, ".parquet") + ".run.parquet"
}

// WriteSeriesParquet writes a slice of SeriesRow structs to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeriesRunsParquet writes a slice of SeriesRun structs to a Parquet file.
func WriteSeriesRunsParquet(data []SeriesRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath, with the schema inferred from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}
