// Package calendar exports study plans as iCalendar events.
package calendar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/pacer/internal/pacing"
)

const (
	prodID     = "-//Course Pacer//Study Plan//EN"
	dateLayout = "20060102T150405"
	crlf       = "\r\n"
	// Content lines longer than this many octets are folded.
	maxLineOctets = 75
)

// Event holds the inputs of one exported study session.
type Event struct {
	Plan       *pacing.SessionPlan
	Start      time.Time
	CourseName string
	// UID identifies the event. A random one is generated when empty.
	UID string
}

// End is the start plus the plan's total time rounded up to whole minutes.
func (e Event) End() time.Time {
	return e.Start.Add(time.Duration(minutes(e.Plan.TotalTime)) * time.Minute)
}

// Generate renders the event as a VCALENDAR with a single VEVENT. Times are
// floating local times, as calendar apps expect for personal study blocks.
func Generate(e Event) string {
	name := e.CourseName
	if name == "" {
		name = "Study Session"
	}
	uid := e.UID
	if uid == "" {
		uid = uuid.NewString() + "@course-pacer"
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + e.Start.Format(dateLayout),
		"DTSTART:" + e.Start.Format(dateLayout),
		"DTEND:" + e.End().Format(dateLayout),
		"SUMMARY:" + escapeText(name+" - Study Session"),
		"DESCRIPTION:" + escapeText(description(e.Plan)),
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(fold(l))
		b.WriteString(crlf)
	}
	return b.String()
}

func description(p *pacing.SessionPlan) string {
	lines := []string{
		fmt.Sprintf("Study Plan: %d videos", len(p.Videos)),
		fmt.Sprintf("Total Time: %d minutes", minutes(p.TotalTime)),
		fmt.Sprintf("Video Time: %d minutes", minutes(p.TotalVideoTime)),
		fmt.Sprintf("Practice Time: %d minutes", minutes(p.TotalPracticeTime)),
		"",
		"Videos:",
	}
	for i, v := range p.Videos {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, v.FileName))
	}
	return strings.Join(lines, "\n")
}

func minutes(seconds float64) int {
	return int(math.Ceil(seconds / 60))
}

// escapeText applies RFC 5545 TEXT escaping.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

// fold splits a content line into 75-octet chunks joined by CRLF and a
// leading space, never cutting a UTF-8 sequence.
func fold(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}
	var b strings.Builder
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString(crlf + " ")
		line = line[cut:]
		// Continuation lines start with a space, which counts.
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	return b.String()
}

func isRuneStart(c byte) bool {
	return c&0xC0 != 0x80
}
