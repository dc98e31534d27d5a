package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/pacing"
)

func samplePlan() *pacing.SessionPlan {
	return &pacing.SessionPlan{
		Videos: []course.VideoItem{
			{ID: "a", FileName: "1 intro.mp4"},
			{ID: "b", FileName: "2 setup, part one.mp4"},
		},
		TotalVideoTime:    1830,
		TotalPracticeTime: 1830,
		TotalTime:         3660,
	}
}

func unfold(s string) string {
	return strings.ReplaceAll(s, "\r\n ", "")
}

func TestGenerate(t *testing.T) {
	start := time.Date(2026, 3, 5, 18, 30, 0, 0, time.Local)
	out := Generate(Event{Plan: samplePlan(), Start: start, CourseName: "Go; the course", UID: "fixed@course-pacer"})

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VEVENT\r\nEND:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n", "bare LF in output")

	flat := unfold(out)
	assert.Contains(t, flat, "PRODID:-//Course Pacer//Study Plan//EN\r\n")
	assert.Contains(t, flat, "UID:fixed@course-pacer\r\n")
	assert.Contains(t, flat, "DTSTART:20260305T183000\r\n")
	// 3660 s rounds up to 61 minutes.
	assert.Contains(t, flat, "DTEND:20260305T193100\r\n")
	assert.Contains(t, flat, `SUMMARY:Go\; the course - Study Session`)
	assert.Contains(t, flat, `Total Time: 61 minutes\nVideo Time: 31 minutes`)
	assert.Contains(t, flat, `2. 2 setup\, part one.mp4`)
}

func TestGenerate_Defaults(t *testing.T) {
	out := Generate(Event{Plan: &pacing.SessionPlan{}, Start: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)})
	flat := unfold(out)
	assert.Contains(t, flat, "SUMMARY:Study Session - Study Session")
	assert.Contains(t, flat, "@course-pacer\r\n")
	assert.Contains(t, flat, "DTEND:20260101T090000")
}

func TestFold(t *testing.T) {
	short := "SUMMARY:short"
	assert.Equal(t, short, fold(short))

	long := "DESCRIPTION:" + strings.Repeat("é", 100)
	folded := fold(long)
	for _, l := range strings.Split(folded, "\r\n") {
		require.LessOrEqual(t, len(l), maxLineOctets)
	}
	assert.Equal(t, long, unfold(folded))
}

func TestEventEnd(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	e := Event{Plan: &pacing.SessionPlan{TotalTime: 61}, Start: start}
	assert.Equal(t, start.Add(2*time.Minute), e.End())
}
