package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shieldstats/shieldstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() schema.SeriesResult {
	return schema.SeriesResult{
		DataURL: "https://example.com/shielded.json",
		Params:  schema.AggregateParams{Mode: schema.CumulativeMode, Pool: schema.AllPools, ShowFiltered: true},
		Samples: 12,
		Points: []schema.AggregatedPoint{
			{Height: 0, Sapling: 10, SaplingFiltered: 2},
			{Height: 8064, Sapling: 30, SaplingFiltered: 6, Orchard: schema.Float(1.5), OrchardFiltered: schema.Float(0.5)},
		},
	}
}

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Should be able to open output file")
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func TestSeriesRowStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(SeriesRow))
	require.NotNil(t, schema)

	for _, colName := range []string{"height", "mode", "pool", "sapling", "sapling_filtered", "orchard", "orchard_filtered"} {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}

	col, _ := schema.Lookup("orchard")
	assert.True(t, col.Node.Optional(), "orchard should be nullable")
	col, _ = schema.Lookup("sapling")
	assert.False(t, col.Node.Optional(), "sapling should be required")
}

func TestSeriesRunStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(SeriesRun))
	for _, colName := range []string{"data_url", "mode", "pool", "show_filtered", "sample_count", "point_count", "generated_at", "duration_ms"} {
		_, ok := schema.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestRowsFromResult(t *testing.T) {
	rows := RowsFromResult(testResult())
	require.Len(t, rows, 2)
	assert.Equal(t, SeriesRow{Height: 0, Mode: "cumulative", Pool: "default", Sapling: 10, SaplingFiltered: 2}, rows[0])
	require.NotNil(t, rows[1].Orchard)
	assert.Equal(t, 1.5, *rows[1].Orchard)
}

func TestWriteSeriesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "series.parquet")
	data := RowsFromResult(testResult())

	require.NoError(t, WriteSeriesParquet(data, outputPath))

	readData := readAll[SeriesRow](t, outputPath)
	require.Len(t, readData, len(data))
	for i := range data {
		assert.Equal(t, data[i].Height, readData[i].Height)
		assert.Equal(t, data[i].Mode, readData[i].Mode)
		assert.InDelta(t, data[i].Sapling, readData[i].Sapling, 1e-9)
		assert.InDelta(t, data[i].SaplingFiltered, readData[i].SaplingFiltered, 1e-9)

		if data[i].Orchard == nil {
			assert.Nil(t, readData[i].Orchard, "Orchard should be nil")
			assert.Nil(t, readData[i].OrchardFiltered, "OrchardFiltered should be nil")
		} else {
			require.NotNil(t, readData[i].Orchard)
			assert.InDelta(t, *data[i].Orchard, *readData[i].Orchard, 1e-9)
			assert.InDelta(t, *data[i].OrchardFiltered, *readData[i].OrchardFiltered, 1e-9)
		}
	}
}

func TestWriteSeriesRunsParquet(t *testing.T) {
	outputPath := RunPath(filepath.Join(t.TempDir(), "series.parquet"))
	now := time.Now()
	runs := []SeriesRun{
		RunFromResult(testResult(), now, 1500*time.Millisecond),
		RunFromResult(testResult(), now, 0),
	}

	require.NoError(t, WriteSeriesRunsParquet(runs, outputPath))

	readData := readAll[SeriesRun](t, outputPath)
	require.Len(t, readData, 2)
	assert.Equal(t, "https://example.com/shielded.json", readData[0].DataURL)
	assert.Equal(t, int32(12), readData[0].SampleCount)
	assert.Equal(t, int32(2), readData[0].PointCount)
	assert.True(t, readData[0].ShowFiltered)
	assert.WithinDuration(t, now, readData[0].GeneratedAt, time.Nanosecond)
	require.NotNil(t, readData[0].DurationMs)
	assert.Equal(t, int32(1500), *readData[0].DurationMs)
	assert.Nil(t, readData[1].DurationMs, "DurationMs should be nil")
}

func TestWriteSeriesParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteSeriesParquet([]SeriesRow{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain at least the footer")
	assert.Empty(t, readAll[SeriesRow](t, outputPath))
}

func TestWriteSeriesParquet_BadPath(t *testing.T) {
	err := WriteSeriesParquet(nil, filepath.Join(t.TempDir(), "missing", "series.parquet"))
	assert.ErrorContains(t, err, "failed to create output file")
}

func TestRunPath(t *testing.T) {
	assert.Equal(t, "out/series.run.parquet", RunPath("out/series.parquet"))
	assert.Equal(t, "series.run.parquet", RunPath("series"))
}
