package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shieldstats/shieldstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		key      schema.SeriesKey
		expected string
	}{
		{schema.OrchardSeries, "Orchard"},
		{schema.OrchardFilteredSeries, "Orchard (filtered)"},
		{schema.SaplingSeries, "Sapling"},
		{schema.SaplingFilteredSeries, "Sapling (filtered)"},
		{schema.SeriesKey("sprout"), "sprout"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.key))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	for key, label := range schema.SeriesLabels {
		t.Run(string(key), func(t *testing.T) {
			// Should contain the plain label whether or not colors are enabled
			assert.Contains(t, GetColorLabel(key), label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "missing", "out.txt"))
		assert.Error(t, err)
	})
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "Sapling", TruncateLabel("Sapling", 10))
	assert.Equal(t, "Sapling (...", TruncateLabel("Sapling (filtered)", 12))
	assert.Equal(t, "Orchard", TruncateLabel("Orchard", 3), "too narrow to truncate")
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
