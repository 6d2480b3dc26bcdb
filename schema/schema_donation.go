package schema

import (
	"encoding/base64"
	"net/url"
	"strconv"
	"strings"
)

// DonationRequest is a validated payment request produced by the donation widget.
type DonationRequest struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
	Memo    string  `json:"memo,omitempty"`
	Label   string  `json:"label,omitempty"`
}

// FormatAmount renders a coin amount with at most 8 decimals and no trailing zeros.
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 8, 64)
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

// URI renders the request as a zcash: payment URI. The memo is carried as
// unpadded base64url, as wallets expect.
func (r DonationRequest) URI() string {
	var params []string
	if r.Amount > 0 {
		params = append(params, "amount="+FormatAmount(r.Amount))
	}
	if r.Memo != "" {
		params = append(params, "memo="+base64.RawURLEncoding.EncodeToString([]byte(r.Memo)))
	}
	if r.Label != "" {
		params = append(params, "label="+escapeQueryValue(r.Label))
	}
	uri := "zcash:" + r.Address
	if len(params) > 0 {
		uri += "?" + strings.Join(params, "&")
	}
	return uri
}

// escapeQueryValue percent-encodes a URI parameter value. Spaces become %20
// since payment URIs do not decode '+' as a space.
func escapeQueryValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// DonationView is what the widget shows: its settings and the current request.
type DonationView struct {
	Request DonationRequest `json:"request"`
	URI     string          `json:"uri"`
	Presets []float64       `json:"presets"`
	Min     float64         `json:"min"`
	Max     float64         `json:"max"`
	Step    float64         `json:"step"`
}
