package contract

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationRe captures "N [units]", e.g. "30 seconds" or "5 minutes".
var durationRe = regexp.MustCompile(`^(\d+)\s+(day|hour|minute|second)s?$`)

// ParseDuration converts strings like "5 minutes" or "90s" into a time.Duration.
// It first tries Go's built-in time.ParseDuration for standard formats, then falls back
// to custom parsing for human-readable formats.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if duration, err := time.ParseDuration(s); err == nil {
		if duration <= 0 {
			return 0, errors.New("duration must be positive")
		}
		return duration, nil
	}

	s = strings.ToLower(s)
	matches := durationRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value: %s", matches[1])
	}
	var unit time.Duration
	switch matches[2] {
	case "day":
		unit = 24 * time.Hour
	case "hour":
		unit = time.Hour
	case "minute":
		unit = time.Minute
	default:
		unit = time.Second
	}

	if value == 0 {
		return 0, errors.New("duration must be positive")
	}
	if value > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("duration out of range: %s", s)
	}
	return time.Duration(value) * unit, nil
}
