package contract

import (
	"testing"
)

// FuzzParseDuration checks that any accepted duration is positive.
func FuzzParseDuration(f *testing.F) {
	for _, seed := range []string{"30s", "5 minutes", "1 day", "", "-1h", "9999999999 days"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		d, err := ParseDuration(s)
		if err == nil && d <= 0 {
			t.Fatalf("ParseDuration(%q) = %v, want positive", s, d)
		}
	})
}

// FuzzParsePresetsString checks that accepted presets are sorted, unique and positive.
func FuzzParsePresetsString(f *testing.F) {
	for _, seed := range []string{"0.01,0.1,1", "1,1,1", "", ",,", "abc", "-1"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		presets, err := parsePresetsString(s)
		if err != nil {
			return
		}
		for i, p := range presets {
			if !(p > 0) {
				t.Fatalf("preset %v is not positive", p)
			}
			if i > 0 && presets[i-1] >= p {
				t.Fatalf("presets not strictly increasing: %v", presets)
			}
		}
	})
}
