package contract

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shieldstats/shieldstats/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 2
	MaxPrecision        = 8
	DefaultTimeout      = 30 * time.Second
	DefaultMaxBodyBytes = 64 << 20
	DefaultChartWidth   = 1024
	DefaultChartHeight  = 400
	DefaultServeAddr    = ":8080"
	DefaultCacheTTL     = 5 * time.Minute
	DefaultCacheSize    = 16
	DefaultPresets      = "0.01,0.05,0.1,0.5,1"
	DefaultAmountMin    = 0.001
	DefaultAmountMax    = 10.0
	DefaultAmountStep   = 0.001
	DefaultLabel        = "shieldstats donation"
)

// Chart size limits, in pixels.
const (
	MinChartSize = 100
	MaxChartSize = 8192
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for one invocation.
// This struct is the "final, validated" config.
type Config struct {
	DataURL    string
	Params     schema.AggregateParams
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Timeout      time.Duration
	MaxBodyBytes int64

	ChartFormat schema.ChartFormat
	ChartWidth  int
	ChartHeight int

	DonationAddress string
	DonationAmount  float64
	DonationMemo    string
	DonationLabel   string
	DonationPresets []float64
	AmountMin       float64
	AmountMax       float64
	AmountStep      float64

	ServeAddr string
	CacheTTL  time.Duration
	CacheSize int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataURLArg string

	// --- Fields from rootCmd.PersistentFlags() ---
	DataURL      string `mapstructure:"data-url"`
	Pool         string `mapstructure:"pool"`
	Cumulative   bool   `mapstructure:"cumulative"`
	Filter       bool   `mapstructure:"filter"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Precision    int    `mapstructure:"precision"`
	Color        string `mapstructure:"color"`
	Width        int    `mapstructure:"width"`
	Timeout      string `mapstructure:"timeout"`
	MaxBodyBytes int64  `mapstructure:"max-body-bytes"`

	// --- Fields from chartCmd.Flags() ---
	Format      string `mapstructure:"format"`
	ChartWidth  int    `mapstructure:"chart-width"`
	ChartHeight int    `mapstructure:"chart-height"`

	// --- Fields from donateCmd.Flags() and the config file ---
	Address    string  `mapstructure:"address"`
	Amount     float64 `mapstructure:"amount"`
	Memo       string  `mapstructure:"memo"`
	Label      string  `mapstructure:"label"`
	Presets    string  `mapstructure:"presets"`
	AmountMin  float64 `mapstructure:"amount-min"`
	AmountMax  float64 `mapstructure:"amount-max"`
	AmountStep float64 `mapstructure:"amount-step"`

	// --- Fields from serveCmd.Flags() ---
	Addr      string `mapstructure:"addr"`
	CacheTTL  string `mapstructure:"cache-ttl"`
	CacheSize int    `mapstructure:"cache-size"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.DonationPresets != nil {
		clone.DonationPresets = slices.Clone(c.DonationPresets)
	}
	return &clone
}

// CloneWithParams creates a copy of the Config with new aggregation parameters.
func (c *Config) CloneWithParams(params schema.AggregateParams) *Config {
	clone := c.Clone()
	clone.Params = params
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDataSource(cfg, input); err != nil {
		return err
	}
	if err := processChartOptions(cfg, input); err != nil {
		return err
	}
	if err := processDonation(cfg, input); err != nil {
		return err
	}
	if err := processServeOptions(cfg, input); err != nil {
		return err
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ParseParams validates the widget options into aggregation parameters.
// An empty pool selects all pools.
func ParseParams(pool string, cumulative, filter bool) (schema.AggregateParams, error) {
	p := schema.PoolFilter(strings.ToLower(strings.TrimSpace(pool)))
	if p == "" {
		p = schema.AllPools
	}
	if _, ok := schema.ValidPoolFilters[p]; !ok {
		return schema.AggregateParams{}, fmt.Errorf("invalid pool '%s'. must be default, orchard, sapling", pool)
	}
	return schema.AggregateParams{
		Mode:         schema.ModeFromCumulative(cumulative),
		Pool:         p,
		ShowFiltered: filter,
	}, nil
}

// ValidateDataURL checks that a data URL can be fetched by the loader.
func ValidateDataURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid data url '%s': %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("invalid data url '%s': missing host", raw)
		}
	case "file":
		if u.Path == "" {
			return fmt.Errorf("invalid data url '%s': missing path", raw)
		}
	default:
		return fmt.Errorf("invalid data url '%s': scheme must be http, https or file", raw)
	}
	return nil
}

// validateSimpleInputs transfers and validates the fields shared by all commands.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	params, err := ParseParams(input.Pool, input.Cumulative, input.Filter)
	if err != nil {
		return err
	}
	cfg.Params = params

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// processDataSource resolves the data URL and fetch limits.
func processDataSource(cfg *Config, input *ConfigRawInput) error {
	// Positional argument wins over flag, env and config file.
	cfg.DataURL = strings.TrimSpace(input.DataURL)
	if input.DataURLArg != "" {
		cfg.DataURL = strings.TrimSpace(input.DataURLArg)
	}
	if cfg.DataURL != "" {
		if err := ValidateDataURL(cfg.DataURL); err != nil {
			return err
		}
	}

	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		timeout, err := ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout value: %w", err)
		}
		cfg.Timeout = timeout
	}

	cfg.MaxBodyBytes = DefaultMaxBodyBytes
	if input.MaxBodyBytes < 0 {
		return fmt.Errorf("max-body-bytes cannot be negative (received %d)", input.MaxBodyBytes)
	}
	if input.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = input.MaxBodyBytes
	}
	return nil
}

// processChartOptions validates the image format and size.
func processChartOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ChartFormat = schema.SVGFormat
	if input.Format != "" {
		cfg.ChartFormat = schema.ChartFormat(strings.ToLower(input.Format))
	}
	if _, ok := schema.ValidChartFormats[cfg.ChartFormat]; !ok {
		return fmt.Errorf("invalid chart format '%s'. must be svg, png", input.Format)
	}

	cfg.ChartWidth = orDefault(input.ChartWidth, DefaultChartWidth)
	cfg.ChartHeight = orDefault(input.ChartHeight, DefaultChartHeight)
	for name, v := range map[string]int{"chart-width": cfg.ChartWidth, "chart-height": cfg.ChartHeight} {
		if v < MinChartSize || v > MaxChartSize {
			return fmt.Errorf("%s must be between %d and %d (received %d)", name, MinChartSize, MaxChartSize, v)
		}
	}
	return nil
}

// processDonation transfers the donation widget settings. Amount and memo
// rules are enforced by the widget itself.
func processDonation(cfg *Config, input *ConfigRawInput) error {
	cfg.DonationAddress = strings.TrimSpace(input.Address)
	cfg.DonationAmount = input.Amount
	cfg.DonationMemo = input.Memo
	cfg.DonationLabel = input.Label
	if cfg.DonationLabel == "" {
		cfg.DonationLabel = DefaultLabel
	}

	presetsStr := input.Presets
	if presetsStr == "" {
		presetsStr = DefaultPresets
	}
	presets, err := parsePresetsString(presetsStr)
	if err != nil {
		return fmt.Errorf("invalid --presets value: %w", err)
	}
	cfg.DonationPresets = presets

	cfg.AmountMin = orDefaultFloat(input.AmountMin, DefaultAmountMin)
	cfg.AmountMax = orDefaultFloat(input.AmountMax, DefaultAmountMax)
	cfg.AmountStep = orDefaultFloat(input.AmountStep, DefaultAmountStep)
	if cfg.AmountMin < 0 || cfg.AmountStep < 0 {
		return fmt.Errorf("amount bounds cannot be negative")
	}
	if cfg.AmountMin > cfg.AmountMax {
		return fmt.Errorf("amount-min %s exceeds amount-max %s",
			schema.FormatAmount(cfg.AmountMin), schema.FormatAmount(cfg.AmountMax))
	}
	return nil
}

// processServeOptions validates the HTTP server settings.
func processServeOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid --cache-ttl value: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	if input.CacheSize < 0 {
		return fmt.Errorf("cache-size cannot be negative (received %d)", input.CacheSize)
	}
	cfg.CacheSize = orDefault(input.CacheSize, DefaultCacheSize)
	return nil
}

// parsePresetsString parses a comma-separated list of preset amounts.
func parsePresetsString(s string) ([]float64, error) {
	var presets []float64
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid preset amount '%s': %w", part, err)
		}
		if !(value > 0) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("preset amount must be positive (received %s)", part)
		}
		presets = append(presets, value)
	}
	slices.Sort(presets)
	return slices.Compact(presets), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
