package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/gamify"
	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/store"
	"github.com/abhisek/pacer/internal/ui/components"
	"github.com/abhisek/pacer/internal/ui/theme"
)

// StatusReport is the overview shown by the status command.
type StatusReport struct {
	CourseID string                `json:"courseId"`
	RootPath string                `json:"rootPath"`
	Progress pacing.CourseProgress `json:"progress"`
	// Remaining is the unwatched study time including practice.
	Remaining    pacing.TimeTotals    `json:"remaining"`
	Checkpoint   *course.VideoItem    `json:"checkpoint,omitempty"`
	LastWatched  *course.VideoItem    `json:"lastWatched,omitempty"`
	Config       course.Config        `json:"config"`
	Streak       gamify.Streak        `json:"streak"`
	StreakAtRisk bool                 `json:"streakAtRisk"`
	Achievements []gamify.Achievement `json:"achievements"`
	Motivation   string               `json:"motivation"`
	Study        store.StudyTotals    `json:"study"`
	Gaps         []gamify.Gap         `json:"gaps,omitempty"`
	ScannedAt    time.Time            `json:"scannedAt"`
	GeneratedAt  time.Time            `json:"generatedAt"`
}

func (r *StatusReport) WriteText(w io.Writer) error {
	p := r.Progress
	var b strings.Builder

	b.WriteString(theme.Title.Render("📚 "+filepath.Base(r.RootPath)) + "\n")
	b.WriteString(theme.Label.Render(r.RootPath) + "\n\n")

	bar := components.NewProgressBar("Progress", p.CompletionPercentage, true, 50)
	b.WriteString(bar.View() + "\n")
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Videos:"),
		theme.Value.Render(fmt.Sprintf("%d/%d watched", p.WatchedVideos, p.TotalVideos)))
	fmt.Fprintf(&b, "%s %s of %s watched, %s left\n", theme.Label.Render("Video time:"),
		theme.Value.Render(Duration(p.WatchedDuration)),
		Duration(p.TotalDuration), Duration(p.RemainingDuration))
	fmt.Fprintf(&b, "%s %s (at %.1fx speed)\n", theme.Label.Render("With practice:"),
		theme.Value.Render(Duration(r.Remaining.Total)), r.Config.PlaybackSpeed)

	if len(p.Sections) > 0 {
		b.WriteString("\n" + theme.Heading.Render("Sections") + "\n")
		names := make([]string, 0, len(p.Sections))
		for name := range p.Sections {
			names = append(names, name)
		}
		course.SortNatural(names)
		for _, name := range names {
			sp := p.Sections[name]
			style := theme.Unwatched
			if sp.CompletionPercentage == 100 {
				style = theme.Watched
			}
			fmt.Fprintf(&b, "  %s %s\n", style.Render(fmt.Sprintf("%3d%%", sp.CompletionPercentage)),
				fmt.Sprintf("%s (%d/%d)", name, sp.WatchedVideos, sp.TotalVideos))
		}
	}

	b.WriteString("\n")
	if r.Checkpoint != nil {
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Checkpoint:"), theme.Current.Render(r.Checkpoint.FileName))
	}
	if r.LastWatched != nil {
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Last watched:"), r.LastWatched.FileName)
	}
	if r.Study.Sessions > 0 {
		fmt.Fprintf(&b, "%s %d sessions, %s studied\n", theme.Label.Render("Log:"),
			r.Study.Sessions, Duration(r.Study.Duration))
	}

	streak := fmt.Sprintf("%d days (best %d)", r.Streak.Current, r.Streak.Longest)
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Streak:"), theme.Value.Render(streak))
	if r.StreakAtRisk {
		b.WriteString(theme.Warn.Render("  Study today to keep your streak!") + "\n")
	}

	if len(r.Achievements) > 0 {
		b.WriteString("\n" + theme.Heading.Render("Achievements") + "\n")
		for _, a := range r.Achievements {
			fmt.Fprintf(&b, "  %s %s  %s\n", a.Emoji, theme.Value.Render(a.Name), theme.Label.Render(a.Description))
		}
	}

	if warn := gamify.FormatGapWarning(r.Gaps); warn != "" {
		b.WriteString("\n" + theme.Warn.Render(warn) + "\n")
	}
	if r.Motivation != "" {
		b.WriteString("\n" + theme.Hint.Render(r.Motivation) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Table lists one row per section plus a total row.
func (r *StatusReport) Table() ([]string, [][]string) {
	header := []string{"section", "total_videos", "watched_videos", "completion_percentage"}
	names := make([]string, 0, len(r.Progress.Sections))
	for name := range r.Progress.Sections {
		names = append(names, name)
	}
	course.SortNatural(names)

	rows := make([][]string, 0, len(names)+1)
	for _, name := range names {
		sp := r.Progress.Sections[name]
		rows = append(rows, []string{name, strconv.Itoa(sp.TotalVideos), strconv.Itoa(sp.WatchedVideos), strconv.Itoa(sp.CompletionPercentage)})
	}
	p := r.Progress
	rows = append(rows, []string{"TOTAL", strconv.Itoa(p.TotalVideos), strconv.Itoa(p.WatchedVideos), strconv.Itoa(p.CompletionPercentage)})
	return header, rows
}
