package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shieldstats/shieldstats/schema"
)

// Color variables for console output, one per logical series.
var (
	OrchardColor         = color.New(color.FgYellow, color.Bold) // OrchardColor matches the orchard chart track.
	OrchardFilteredColor = color.New(color.FgYellow)             // OrchardFilteredColor is the lighter orchard variant.
	SaplingColor         = color.New(color.FgCyan, color.Bold)   // SaplingColor matches the sapling chart track.
	SaplingFilteredColor = color.New(color.FgCyan)               // SaplingFilteredColor is the lighter sapling variant.
	ErrorColor           = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns the display label for a series key. Unknown keys
// fall back to the key itself.
func GetPlainLabel(key schema.SeriesKey) string {
	if label, ok := schema.SeriesLabels[key]; ok {
		return label
	}
	return string(key)
}

// GetColorLabel returns a colored label for console output (table headers).
// It uses GetPlainLabel to determine the string, and then applies the series color.
func GetColorLabel(key schema.SeriesKey) string {
	text := GetPlainLabel(key)

	switch key {
	case schema.OrchardSeries:
		return OrchardColor.Sprint(text)
	case schema.OrchardFilteredSeries:
		return OrchardFilteredColor.Sprint(text)
	case schema.SaplingSeries:
		return SaplingColor.Sprint(text)
	case schema.SaplingFilteredSeries:
		return SaplingFilteredColor.Sprint(text)
	default:
		return text
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncateLabel truncates a label to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
