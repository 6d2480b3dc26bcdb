package contract

import (
	"testing"
	"time"

	"github.com/shieldstats/shieldstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input produced by the default flag values.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		DataURL:    "https://example.com/shielded.json",
		Pool:       string(schema.AllPools),
		Cumulative: true,
		Output:     string(schema.TextOut),
		Precision:  DefaultPrecision,
		Color:      "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*ConfigRawInput)
		expectError string
		check       func(*testing.T, *Config)
	}{
		{
			name: "valid minimal config applies defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://example.com/shielded.json", cfg.DataURL)
				assert.Equal(t, schema.AggregateParams{Mode: schema.CumulativeMode, Pool: schema.AllPools}, cfg.Params)
				assert.Equal(t, DefaultTimeout, cfg.Timeout)
				assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)
				assert.Equal(t, schema.SVGFormat, cfg.ChartFormat)
				assert.Equal(t, DefaultChartWidth, cfg.ChartWidth)
				assert.Equal(t, DefaultChartHeight, cfg.ChartHeight)
				assert.Equal(t, []float64{0.01, 0.05, 0.1, 0.5, 1}, cfg.DonationPresets)
				assert.Equal(t, DefaultLabel, cfg.DonationLabel)
				assert.Equal(t, DefaultServeAddr, cfg.ServeAddr)
				assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
				assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
				assert.True(t, cfg.UseColors)
			},
		},
		{
			name: "positional url overrides flag",
			modify: func(in *ConfigRawInput) {
				in.DataURLArg = "file:///tmp/data.json"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "file:///tmp/data.json", cfg.DataURL)
			},
		},
		{
			name: "periodic orchard with filter",
			modify: func(in *ConfigRawInput) {
				in.Pool = "ORCHARD"
				in.Cumulative = false
				in.Filter = true
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.AggregateParams{Mode: schema.PeriodicMode, Pool: schema.OrchardOnly, ShowFiltered: true}, cfg.Params)
			},
		},
		{
			name: "human readable timeout and ttl",
			modify: func(in *ConfigRawInput) {
				in.Timeout = "10 seconds"
				in.CacheTTL = "1m"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 10*time.Second, cfg.Timeout)
				assert.Equal(t, time.Minute, cfg.CacheTTL)
			},
		},
		{
			name:   "empty url is allowed",
			modify: func(in *ConfigRawInput) { in.DataURL = "" },
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.DataURL)
			},
		},
		{
			name:        "invalid pool",
			modify:      func(in *ConfigRawInput) { in.Pool = "sprout" },
			expectError: "invalid pool",
		},
		{
			name:        "invalid output",
			modify:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: "invalid output format",
		},
		{
			name:        "parquet needs a file",
			modify:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: "requires --output-file",
		},
		{
			name:        "precision out of range",
			modify:      func(in *ConfigRawInput) { in.Precision = 9 },
			expectError: "precision must be between",
		},
		{
			name:        "invalid color",
			modify:      func(in *ConfigRawInput) { in.Color = "sometimes" },
			expectError: "invalid --color value",
		},
		{
			name:        "unsupported scheme",
			modify:      func(in *ConfigRawInput) { in.DataURL = "ftp://example.com/data.json" },
			expectError: "scheme must be http, https or file",
		},
		{
			name:        "invalid timeout",
			modify:      func(in *ConfigRawInput) { in.Timeout = "soon" },
			expectError: "invalid --timeout value",
		},
		{
			name:        "invalid chart format",
			modify:      func(in *ConfigRawInput) { in.Format = "gif" },
			expectError: "invalid chart format",
		},
		{
			name:        "chart too small",
			modify:      func(in *ConfigRawInput) { in.ChartWidth = 10 },
			expectError: "chart-width must be between",
		},
		{
			name:        "invalid presets",
			modify:      func(in *ConfigRawInput) { in.Presets = "0.1,lots" },
			expectError: "invalid --presets value",
		},
		{
			name: "amount bounds inverted",
			modify: func(in *ConfigRawInput) {
				in.AmountMin = 5
				in.AmountMax = 1
			},
			expectError: "exceeds amount-max",
		},
		{
			name:        "negative cache size",
			modify:      func(in *ConfigRawInput) { in.CacheSize = -1 },
			expectError: "cache-size cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			if tt.modify != nil {
				tt.modify(input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams("", false, true)
	require.NoError(t, err)
	assert.Equal(t, schema.AllPools, params.Pool)
	assert.Equal(t, schema.PeriodicMode, params.Mode)
	assert.True(t, params.ShowFiltered)

	_, err = ParseParams("both", true, false)
	assert.Error(t, err)
}

func TestParsePresetsString(t *testing.T) {
	presets, err := parsePresetsString(" 1, 0.1 ,0.1,, 0.5")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.5, 1}, presets)

	_, err = parsePresetsString("0")
	assert.Error(t, err)
	_, err = parsePresetsString("NaN")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{DataURL: "https://example.com", DonationPresets: []float64{1, 2}}
	clone := cfg.Clone()
	clone.DonationPresets[0] = 99
	clone.DataURL = "https://other.example.com"

	assert.Equal(t, 1.0, cfg.DonationPresets[0])
	assert.Equal(t, "https://example.com", cfg.DataURL)

	params := schema.AggregateParams{Mode: schema.PeriodicMode, Pool: schema.SaplingOnly}
	withParams := cfg.CloneWithParams(params)
	assert.Equal(t, params, withParams.Params)
	assert.Empty(t, cfg.Params.Mode)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "run"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run", profile.Prefix)
}
