// Package timeutil parses study budgets and formats durations in seconds.
package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var budgetPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([hm])$`)

// ParseBudget parses a study budget such as "3h", "1.5h", "90m" or a Go
// duration like "1h30m", returning whole seconds.
func ParseBudget(s string) (float64, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if m := budgetPattern.FindStringSubmatch(in); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
		unit := 60.0
		if m[2] == "h" {
			unit = 3600
		}
		return math.Round(v * unit), nil
	}
	if d, err := time.ParseDuration(in); err == nil && d >= 0 {
		return math.Round(d.Seconds()), nil
	}
	return 0, fmt.Errorf("invalid time format %q: use a value like \"3h\", \"90m\" or \"1h30m\"", s)
}

// FormatClock renders seconds as h:mm:ss, or m:ss below one hour.
func FormatClock(seconds float64) string {
	total := int(math.Max(0, seconds))
	h, m, sec := total/3600, total%3600/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// FormatShort renders seconds compactly: "1h 5m", "2h", "45m" or "30s".
func FormatShort(seconds float64) string {
	total := int(math.Max(0, seconds))
	h, m := total/3600, total%3600/60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", total)
}

// Hours converts seconds to hours.
func Hours(seconds float64) float64 {
	return seconds / 3600
}
