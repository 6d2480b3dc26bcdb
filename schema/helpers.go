package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Float returns a pointer to v, for building optional values.
func Float(v float64) *float64 {
	return &v
}

// Deref returns the pointed-to value and whether it was present.
func Deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// NonZero returns nil when v is exactly zero, otherwise a pointer to v.
// It encodes the "absent until first activity" rule for orchard values.
func NonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return Float(v)
}

// FormatValue renders a chart value with at most precision decimals,
// trimming trailing zeros so whole-coin amounts stay short.
func FormatValue(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if precision > 0 {
		s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// FormatOptional renders an optional value, using "-" for absent values.
func FormatOptional(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return FormatValue(*v, precision)
}

// Tooltip formats the hover text shown for one series value.
func Tooltip(label string, value float64, precision int) string {
	return fmt.Sprintf("%s: %s", label, FormatValue(value, precision))
}
