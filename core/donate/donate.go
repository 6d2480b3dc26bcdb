// Package donate has the donation widget logic: amount presets, slider
// bounds and memo rules that produce a payment request.
package donate

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/shieldstats/shieldstats/internal/contract"
	"github.com/shieldstats/shieldstats/schema"
)

// MaxMemoBytes is the size of a shielded memo field.
const MaxMemoBytes = 512

// AddressKind classifies a recipient address by its encoding prefix.
type AddressKind string

// All address kinds recognized by the widget.
const (
	TransparentAddress AddressKind = "transparent"
	SaplingAddress     AddressKind = "sapling"
	UnifiedAddress     AddressKind = "unified"
	UnknownAddress     AddressKind = "unknown"
)

// Validation errors returned by Widget.Request.
var (
	ErrNoAddress       = errors.New("donation address is not configured")
	ErrUnknownAddress  = errors.New("donation address has an unrecognized prefix")
	ErrAmountRange     = errors.New("amount is outside the slider range")
	ErrMemoTooLong     = fmt.Errorf("memo exceeds %d bytes", MaxMemoBytes)
	ErrMemoInvalid     = errors.New("memo is not valid UTF-8")
	ErrMemoTransparent = errors.New("memos cannot be sent to a transparent address")
)

// Widget holds the donation widget settings.
type Widget struct {
	Address string
	Label   string
	Presets []float64
	Min     float64
	Max     float64
	Step    float64
}

// FromConfig builds the widget from the validated configuration.
func FromConfig(cfg *contract.Config) Widget {
	return Widget{
		Address: cfg.DonationAddress,
		Label:   cfg.DonationLabel,
		Presets: cfg.DonationPresets,
		Min:     cfg.AmountMin,
		Max:     cfg.AmountMax,
		Step:    cfg.AmountStep,
	}
}

// ClassifyAddress returns the kind of the given address.
func ClassifyAddress(addr string) AddressKind {
	switch {
	case strings.HasPrefix(addr, "t1"), strings.HasPrefix(addr, "t3"), strings.HasPrefix(addr, "tm"):
		return TransparentAddress
	case strings.HasPrefix(addr, "zs1"), strings.HasPrefix(addr, "ztestsapling1"):
		return SaplingAddress
	case strings.HasPrefix(addr, "u1"), strings.HasPrefix(addr, "utest1"):
		return UnifiedAddress
	default:
		return UnknownAddress
	}
}

// Validate checks the widget settings themselves.
func (w Widget) Validate() error {
	if w.Address == "" {
		return ErrNoAddress
	}
	if ClassifyAddress(w.Address) == UnknownAddress {
		return ErrUnknownAddress
	}
	if w.Min < 0 || w.Min > w.Max {
		return fmt.Errorf("invalid slider range [%s, %s]", schema.FormatAmount(w.Min), schema.FormatAmount(w.Max))
	}
	if w.Step < 0 {
		return fmt.Errorf("slider step cannot be negative")
	}
	for _, p := range w.Presets {
		if p < w.Min || p > w.Max {
			return fmt.Errorf("preset %s: %w", schema.FormatAmount(p), ErrAmountRange)
		}
	}
	return nil
}

// VisiblePresets returns the presets that fall inside the slider range, ascending.
func (w Widget) VisiblePresets() []float64 {
	presets := make([]float64, 0, len(w.Presets))
	for _, p := range w.Presets {
		if p >= w.Min && p <= w.Max {
			presets = append(presets, p)
		}
	}
	slices.Sort(presets)
	return presets
}

// Snap rounds an amount to the slider step and to whole zatoshi, staying
// inside the slider range.
func (w Widget) Snap(amount float64) float64 {
	if w.Step > 0 {
		amount = math.Round(amount/w.Step) * w.Step
	}
	amount = math.Round(amount*1e8) / 1e8
	return math.Min(math.Max(amount, w.Min), w.Max)
}

// Request validates an amount and memo and returns the payment request.
// A zero amount leaves the amount to the wallet.
func (w Widget) Request(amount float64, memo string) (schema.DonationRequest, error) {
	if err := w.Validate(); err != nil {
		return schema.DonationRequest{}, err
	}

	if amount != 0 {
		if math.IsNaN(amount) || amount < w.Min || amount > w.Max {
			return schema.DonationRequest{}, fmt.Errorf("%s: %w", schema.FormatAmount(amount), ErrAmountRange)
		}
		amount = w.Snap(amount)
	}

	if memo != "" {
		if ClassifyAddress(w.Address) == TransparentAddress {
			return schema.DonationRequest{}, ErrMemoTransparent
		}
		if !utf8.ValidString(memo) {
			return schema.DonationRequest{}, ErrMemoInvalid
		}
		if len(memo) > MaxMemoBytes {
			return schema.DonationRequest{}, ErrMemoTooLong
		}
	}

	return schema.DonationRequest{
		Address: w.Address,
		Amount:  amount,
		Memo:    memo,
		Label:   w.Label,
	}, nil
}

// View pairs the widget settings with a request for display.
func (w Widget) View(req schema.DonationRequest) schema.DonationView {
	return schema.DonationView{
		Request: req,
		URI:     req.URI(),
		Presets: w.VisiblePresets(),
		Min:     w.Min,
		Max:     w.Max,
		Step:    w.Step,
	}
}
