package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abhisek/pacer/internal/analyzer"
	"github.com/abhisek/pacer/internal/ui/theme"
)

// AnalysisReport is the analyze command output.
type AnalysisReport struct {
	CourseID string            `json:"courseId"`
	RootPath string            `json:"rootPath"`
	Filter   analyzer.Filter   `json:"filter"`
	Analysis analyzer.Analysis `json:"analysis"`
}

func (r *AnalysisReport) WriteText(w io.Writer) error {
	a := r.Analysis
	var b strings.Builder

	b.WriteString(theme.Title.Render("📊 "+filepath.Base(r.RootPath)) + "\n")
	if f := describeFilter(r.Filter); f != "" {
		b.WriteString(theme.Label.Render("filter: "+f) + "\n")
	}
	b.WriteString("\n")

	if a.TotalVideos == 0 {
		b.WriteString(theme.Hint.Render("No videos match.") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(theme.Heading.Render("Overview") + "\n")
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Videos:"), theme.Value.Render(strconv.Itoa(a.TotalVideos)))
	fmt.Fprintf(&b, "%s %s %s\n", theme.Label.Render("Duration:"), theme.Value.Render(Duration(a.TotalDuration)), theme.Label.Render("(raw)"))
	fmt.Fprintf(&b, "%s %s %s\n", theme.Label.Render("Adjusted:"), theme.Value.Render(Duration(a.AdjustedDuration)), theme.Label.Render("(at configured speed)"))
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Size:"), theme.Value.Render(Bytes(a.TotalSize)))
	fmt.Fprintf(&b, "%s %s, %s unwatched (%d%%)\n", theme.Label.Render("Watched:"),
		theme.Watched.Render(fmt.Sprintf("%d/%d", a.WatchedVideos, a.TotalVideos)),
		theme.Warn.Render(strconv.Itoa(a.UnwatchedVideos)), a.CompletionPercentage)

	b.WriteString("\n" + theme.Heading.Render("Sections") + "\n")
	for _, s := range a.Sections {
		fmt.Fprintf(&b, "  %s %s %s\n",
			theme.Value.Render(fmt.Sprintf("%3d%%", s.CompletionPercentage)),
			fmt.Sprintf("%s (%d/%d)", s.Name, s.WatchedCount, s.VideoCount),
			theme.Label.Render(Duration(s.TotalDuration)))
	}

	b.WriteString("\n" + theme.Heading.Render("Formats") + "\n")
	for _, f := range a.Formats {
		fmt.Fprintf(&b, "  %s %d videos, %s, %s\n", theme.Value.Render(f.Name), f.Count, Duration(f.TotalDuration), Bytes(f.TotalSize))
	}

	b.WriteString("\n" + theme.Heading.Render("Statistics") + "\n")
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Average:"), Duration(a.AverageVideoDuration))
	if v := a.LongestVideo; v != nil {
		fmt.Fprintf(&b, "%s %s (%s)\n", theme.Label.Render("Longest:"), theme.Current.Render(v.FileName), Duration(v.Duration))
	}
	if v := a.ShortestVideo; v != nil {
		fmt.Fprintf(&b, "%s %s (%s)\n", theme.Label.Render("Shortest:"), theme.Current.Render(v.FileName), Duration(v.Duration))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Table has a total row, then one row per section and per format.
func (r *AnalysisReport) Table() ([]string, [][]string) {
	a := r.Analysis
	header := []string{"kind", "name", "videos", "duration_seconds", "size_bytes", "watched", "completion_percentage"}
	rows := [][]string{{
		"total", "", strconv.Itoa(a.TotalVideos), seconds(a.TotalDuration),
		strconv.FormatInt(a.TotalSize, 10), strconv.Itoa(a.WatchedVideos), strconv.Itoa(a.CompletionPercentage),
	}}
	for _, s := range a.Sections {
		rows = append(rows, []string{
			"section", s.Name, strconv.Itoa(s.VideoCount), seconds(s.TotalDuration),
			"", strconv.Itoa(s.WatchedCount), strconv.Itoa(s.CompletionPercentage),
		})
	}
	for _, f := range a.Formats {
		rows = append(rows, []string{
			"format", f.Name, strconv.Itoa(f.Count), seconds(f.TotalDuration),
			strconv.FormatInt(f.TotalSize, 10), "", "",
		})
	}
	return header, rows
}

func describeFilter(f analyzer.Filter) string {
	var parts []string
	if f.Section != "" {
		parts = append(parts, "section "+f.Section)
	}
	if f.Watched != nil {
		if *f.Watched {
			parts = append(parts, "watched")
		} else {
			parts = append(parts, "unwatched")
		}
	}
	if f.Format != "" {
		parts = append(parts, "format "+f.Format)
	}
	return strings.Join(parts, ", ")
}
