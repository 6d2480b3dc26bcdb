package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
)

// PrintDonation writes the donation view to the configured output file, or stdout.
func PrintDonation(view schema.DonationView, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteDonation(w, view, cfg)
	}, "Wrote donation request")
}

// WriteDonation outputs the donation view in the configured format.
func WriteDonation(w io.Writer, view schema.DonationView, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, view)
	case schema.CSVOut:
		return writeCSVWithHeader(w, []string{"field", "value"}, func(cw *csv.Writer) error {
			return cw.WriteAll(donationFields(view, 0))
		})
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only available for series")
	default:
		return writeDonationTable(w, view, cfg)
	}
}

func writeDonationTable(w io.Writer, view schema.DonationView, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Field", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(donationFields(view, GetMaxTableTextWidth(cfg))); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, view.URI)
	return err
}

// donationFields lists the view as field/value pairs. A positive maxWidth
// truncates long values.
func donationFields(view schema.DonationView, maxWidth int) [][]string {
	trunc := func(s string) string {
		if maxWidth > 0 {
			return contract.TruncateLabel(s, maxWidth)
		}
		return s
	}

	amount := "any"
	if view.Request.Amount > 0 {
		amount = schema.FormatAmount(view.Request.Amount)
	}
	presets := make([]string, len(view.Presets))
	for i, p := range view.Presets {
		presets[i] = schema.FormatAmount(p)
	}

	return [][]string{
		{"address", trunc(view.Request.Address)},
		{"amount", amount},
		{"memo", trunc(view.Request.Memo)},
		{"label", trunc(view.Request.Label)},
		{"presets", strings.Join(presets, " ")},
		{"range", fmt.Sprintf("%s..%s step %s", schema.FormatAmount(view.Min), schema.FormatAmount(view.Max), schema.FormatAmount(view.Step))},
		{"uri", trunc(view.URI)},
	}
}
