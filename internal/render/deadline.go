package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/ui/theme"
)

// DeadlineReport is either the load a deadline demands, or a suggested
// deadline for a daily study amount.
type DeadlineReport struct {
	CourseID    string                      `json:"courseId"`
	Calculation *pacing.DeadlineCalculation `json:"calculation,omitempty"`
	// Suggested is set in suggestion mode together with HoursPerDay.
	Suggested   *time.Time `json:"suggestedDeadline,omitempty"`
	HoursPerDay float64    `json:"hoursPerDay,omitempty"`
	Now         time.Time  `json:"-"`
}

func (r *DeadlineReport) WriteText(w io.Writer) error {
	var b strings.Builder
	if r.Suggested != nil {
		b.WriteString(theme.Title.Render("📅 Suggested deadline") + "\n\n")
		fmt.Fprintf(&b, "Studying %s a day, you finish on %s (%s).\n",
			theme.Value.Render(fmt.Sprintf("%.1fh", r.HoursPerDay)),
			theme.Value.Render(r.Suggested.Format("Mon, Jan 2 2006")),
			Ago(*r.Suggested, r.Now))
	}

	if c := r.Calculation; c != nil {
		if r.Suggested != nil {
			b.WriteString("\n")
		} else {
			b.WriteString(theme.Title.Render("📅 Deadline "+c.Deadline.Format("Jan 2 2006")) + "\n\n")
		}
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Days remaining:"), theme.Value.Render(strconv.Itoa(c.DaysRemaining)))
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Video hours left:"), theme.Value.Render(fmt.Sprintf("%.1f", c.HoursRemaining)))
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Needed per day:"), theme.Value.Render(fmt.Sprintf("%.1fh", c.HoursPerDay)))

		style := theme.Watched
		switch c.Pace {
		case pacing.PaceChallenging, pacing.PaceIntensive:
			style = theme.Warn
		case pacing.PaceNotAchievable:
			style = theme.Danger
		}
		fmt.Fprintf(&b, "%s %s\n\n", theme.Label.Render("Pace:"), style.Render(string(c.Pace)))
		b.WriteString(theme.Hint.Render(c.Recommendation) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *DeadlineReport) Table() ([]string, [][]string) {
	header := []string{"deadline", "days_remaining", "hours_remaining", "hours_per_day", "is_achievable", "pace"}
	var rows [][]string
	if c := r.Calculation; c != nil {
		rows = append(rows, []string{
			date(c.Deadline), strconv.Itoa(c.DaysRemaining), hours(c.HoursRemaining),
			hours(c.HoursPerDay), strconv.FormatBool(c.IsAchievable), string(c.Pace),
		})
	} else if r.Suggested != nil {
		rows = append(rows, []string{date(*r.Suggested), "", "", hours(r.HoursPerDay), "true", ""})
	}
	return header, rows
}
