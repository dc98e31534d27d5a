package render

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/abhisek/pacer/internal/timeutil"
)

// Bytes renders a file size like "1.5 GB".
func Bytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Ago renders a past time relative to now, or "never" for the zero time.
func Ago(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Ordinal renders 1 as "1st", 2 as "2nd" and so on.
func Ordinal(n int) string {
	return humanize.Ordinal(n)
}

// Duration renders seconds compactly for text output.
func Duration(seconds float64) string {
	return timeutil.FormatShort(seconds)
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
