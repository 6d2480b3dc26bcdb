package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func donationView() schema.DonationView {
	req := schema.DonationRequest{Address: "u1example", Amount: 0.05, Memo: "thanks", Label: "support"}
	return schema.DonationView{
		Request: req,
		URI:     req.URI(),
		Presets: []float64{0.01, 0.05, 1},
		Min:     0.001,
		Max:     10,
		Step:    0.001,
	}
}

func TestWriteDonationTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDonation(&buf, donationView(), &contract.Config{Output: schema.TextOut, Width: 120}))

	output := buf.String()
	assert.Contains(t, output, "u1example")
	assert.Contains(t, output, "0.05")
	assert.Contains(t, output, "0.01 0.05 1")
	assert.Contains(t, output, "0.001..10 step 0.001")
	assert.Contains(t, output, "zcash:u1example?amount=0.05&memo=dGhhbmtz&label=support\n")
}

func TestWriteDonationJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDonation(&buf, donationView(), &contract.Config{Output: schema.JSONOut}))

	var got schema.DonationView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, donationView(), got)
}

func TestWriteDonationCSV(t *testing.T) {
	view := donationView()
	view.Request.Amount = 0

	var buf bytes.Buffer
	require.NoError(t, WriteDonation(&buf, view, &contract.Config{Output: schema.CSVOut}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, []string{"field", "value"}, records[0])
	assert.Equal(t, []string{"amount", "any"}, records[2])
}

func TestWriteDonationParquet(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteDonation(&buf, donationView(), &contract.Config{Output: schema.ParquetOut}))
}
