package render

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/gamify"
	"github.com/abhisek/pacer/internal/scanner"
	"github.com/abhisek/pacer/internal/store"
	"github.com/abhisek/pacer/internal/ui/theme"
)

// ScanReport summarizes a scan and what it changed in the stored course.
type ScanReport struct {
	CourseID string          `json:"courseId"`
	New      bool            `json:"new"`
	Result   *scanner.Result `json:"result"`
	Changes  scanner.Changes `json:"changes"`
	Gaps     []gamify.Gap    `json:"gaps,omitempty"`
}

func (r *ScanReport) WriteText(w io.Writer) error {
	res := r.Result
	var b strings.Builder

	verb := "Updated"
	if r.New {
		verb = "Added"
	}
	b.WriteString(theme.Title.Render(fmt.Sprintf("✅ %s %s", verb, filepath.Base(res.RootPath))) + "\n")
	b.WriteString(theme.Label.Render("id "+r.CourseID) + "\n\n")

	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Videos:"), theme.Value.Render(strconv.Itoa(len(res.Videos))))
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Duration:"), theme.Value.Render(Duration(res.TotalDuration)))
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Size:"), theme.Value.Render(Bytes(res.TotalSize)))
	if len(res.Sections) > 0 {
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Sections:"), strings.Join(res.Sections, ", "))
	}

	if !r.New {
		ch := r.Changes
		if ch.HasChanges() {
			fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Changes:"), theme.Value.Render(
				fmt.Sprintf("+%d added, -%d removed, ~%d modified", len(ch.Added), len(ch.Removed), len(ch.Modified))))
		} else {
			b.WriteString(theme.Hint.Render("No changes since the last scan.") + "\n")
		}
	}

	if len(res.Errors) > 0 {
		b.WriteString("\n" + theme.Warn.Render(fmt.Sprintf("%d files could not be read:", len(res.Errors))) + "\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "  %s: %s\n", e.Path, theme.Label.Render(e.Err))
		}
	}
	if warn := gamify.FormatGapWarning(r.Gaps); warn != "" {
		b.WriteString("\n" + theme.Warn.Render(warn) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Table lists the scanned videos.
func (r *ScanReport) Table() ([]string, [][]string) {
	header := []string{"order", "id", "relative_path", "section", "duration", "size", "format"}
	rows := make([][]string, 0, len(r.Result.Videos))
	for _, v := range r.Result.Videos {
		rows = append(rows, []string{
			strconv.Itoa(v.Order), v.ID, v.RelativePath, v.Section,
			seconds(v.Duration), strconv.FormatInt(v.Size, 10), v.Format,
		})
	}
	return header, rows
}

// CourseList is the list command output.
type CourseList struct {
	Courses []store.CourseSummary `json:"courses"`
	Now     time.Time             `json:"-"`
}

func (r *CourseList) WriteText(w io.Writer) error {
	var b strings.Builder
	if len(r.Courses) == 0 {
		b.WriteString(theme.Hint.Render("No courses yet. Run `pacer scan <dir>` to add one.") + "\n")
	}
	for _, c := range r.Courses {
		pct := 0
		if c.VideoCount > 0 {
			pct = c.WatchedCount * 100 / c.VideoCount
		}
		fmt.Fprintf(&b, "%s  %s\n", theme.Value.Render(filepath.Base(c.RootPath)), theme.Label.Render(c.ID))
		fmt.Fprintf(&b, "  %s  %d/%d watched (%d%%), updated %s\n",
			theme.Label.Render(c.RootPath), c.WatchedCount, c.VideoCount, pct, Ago(c.UpdatedAt, r.Now))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *CourseList) Table() ([]string, [][]string) {
	header := []string{"id", "root_path", "video_count", "watched_count", "scanned_at", "updated_at"}
	rows := make([][]string, 0, len(r.Courses))
	for _, c := range r.Courses {
		rows = append(rows, []string{
			c.ID, c.RootPath, strconv.Itoa(c.VideoCount), strconv.Itoa(c.WatchedCount),
			c.ScannedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
		})
	}
	return header, rows
}

// ConfigReport shows a course's or the global pacing settings.
type ConfigReport struct {
	// Scope is "global" or a course id.
	Scope  string        `json:"scope"`
	Config course.Config `json:"config"`
}

func (r *ConfigReport) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString(theme.Title.Render("⚙️  Config ("+r.Scope+")") + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Playback speed:"), theme.Value.Render(fmt.Sprintf("%gx", r.Config.PlaybackSpeed)))
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Practice multiplier:"), theme.Value.Render(fmt.Sprintf("%g", r.Config.DefaultPracticeMultiplier)))
	if len(r.Config.SectionMultipliers) > 0 {
		b.WriteString(theme.Heading.Render("Section multipliers") + "\n")
		for _, name := range sectionKeys(r.Config) {
			fmt.Fprintf(&b, "  %s %g\n", name, r.Config.SectionMultipliers[name])
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *ConfigReport) Table() ([]string, [][]string) {
	header := []string{"key", "value"}
	rows := [][]string{
		{"playbackSpeed", strconv.FormatFloat(r.Config.PlaybackSpeed, 'g', -1, 64)},
		{"defaultPracticeMultiplier", strconv.FormatFloat(r.Config.DefaultPracticeMultiplier, 'g', -1, 64)},
	}
	for _, name := range sectionKeys(r.Config) {
		rows = append(rows, []string{"folderMultipliers." + name, strconv.FormatFloat(r.Config.SectionMultipliers[name], 'g', -1, 64)})
	}
	return header, rows
}

func sectionKeys(cfg course.Config) []string {
	keys := make([]string, 0, len(cfg.SectionMultipliers))
	for k := range cfg.SectionMultipliers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
