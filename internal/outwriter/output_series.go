package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/internal/parquet"
	"github.com/shieldstats/shieldstats/schema"
)

// seriesJSON is the JSON document for a series result.
type seriesJSON struct {
	DataURL string                 `json:"dataUrl"`
	Params  schema.AggregateParams `json:"params"`
	Samples int                    `json:"samples"`
	Series  []schema.SeriesKey     `json:"series"`
	Points  []schema.EnrichedPoint `json:"points"`
}

// PrintSeriesResults writes the result to the configured output file, or stdout.
func PrintSeriesResults(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.ParquetOut {
		return writeParquetResultsForSeries(result, cfg, duration)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteSeriesResults(w, result, cfg, duration)
	}, fmt.Sprintf("Wrote %s series results", cfg.Output))
}

// WriteSeriesResults outputs the series, dispatching based on the output format configured.
func WriteSeriesResults(w io.Writer, result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForSeries(w, result, cfg.Precision); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForSeries(w, result, cfg.Precision); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output needs --output-file")
	default:
		if err := writeSeriesTable(w, result, cfg, duration); err != nil {
			return fmt.Errorf("error writing series table output: %w", err)
		}
	}
	return nil
}

// writeSeriesTable writes one row per point with one column per selected series.
func writeSeriesTable(w io.Writer, result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	headers := []string{"Height"}
	for _, s := range result.Chart.Series {
		if cfg.UseColors {
			headers = append(headers, contract.GetColorLabel(s.Key))
		} else {
			headers = append(headers, contract.GetPlainLabel(s.Key))
		}
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	_, fmtOptional := createFormatters(cfg.Precision, "-")
	data := make([][]string, 0, len(result.Chart.Heights))
	for i, h := range result.Chart.Heights {
		row := []string{strconv.FormatInt(h, 10)}
		for _, s := range result.Chart.Series {
			row = append(row, fmtOptional(s.Values[i]))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Source: %s\n", contract.TruncateLabel(result.DataURL, GetMaxTableTextWidth(cfg))); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Aggregated %d samples into %d %s points (pool %s) in %v\n",
		result.Samples, len(result.Points), result.Params.Mode, result.Params.Pool, duration)
	return err
}

// writeJSONResultsForSeries writes the points with their tooltips.
func writeJSONResultsForSeries(w io.Writer, result schema.SeriesResult, precision int) error {
	keys := make([]schema.SeriesKey, len(result.Chart.Series))
	for i, s := range result.Chart.Series {
		keys[i] = s.Key
	}
	return writeJSON(w, seriesJSON{
		DataURL: result.DataURL,
		Params:  result.Params,
		Samples: result.Samples,
		Series:  keys,
		Points:  schema.EnrichPoints(result.Points, result.Chart.Series, precision),
	})
}

// writeCSVResultsForSeries writes one row per point. Absent values are empty cells.
func writeCSVResultsForSeries(w io.Writer, result schema.SeriesResult, precision int) error {
	header := []string{"height"}
	for _, s := range result.Chart.Series {
		header = append(header, string(s.Key))
	}
	header = append(header, "tooltip")

	_, fmtOptional := createFormatters(precision, "")
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, h := range result.Chart.Heights {
			row := []string{strconv.FormatInt(h, 10)}
			for _, s := range result.Chart.Series {
				row = append(row, fmtOptional(s.Values[i]))
			}
			tips := schema.PointTooltips(result.Points[i], result.Chart.Series, precision)
			row = append(row, strings.Join(tips, "; "))
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetResultsForSeries writes the rows and the run sidecar file.
func writeParquetResultsForSeries(result schema.SeriesResult, cfg *contract.Config, duration time.Duration) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output needs --output-file")
	}
	if err := parquet.WriteSeriesParquet(parquet.RowsFromResult(result), cfg.OutputFile); err != nil {
		return err
	}
	runPath := parquet.RunPath(cfg.OutputFile)
	run := parquet.RunFromResult(result, time.Now(), duration)
	if err := parquet.WriteSeriesRunsParquet([]parquet.SeriesRun{run}, runPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet series results to %s (run metadata in %s)\n", cfg.OutputFile, runPath)
	return nil
}
