package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/ui/theme"
)

// PlanItem is one playlist entry with its cost.
type PlanItem struct {
	Position     int     `json:"position"`
	ID           string  `json:"id"`
	FileName     string  `json:"filename"`
	Section      string  `json:"section,omitempty"`
	VideoTime    float64 `json:"videoTime"`
	PracticeTime float64 `json:"practiceTime"`
	TotalTime    float64 `json:"totalTime"`
}

// PlanReport is a session plan measured against its budget.
type PlanReport struct {
	CourseID        string              `json:"courseId"`
	Budget          float64             `json:"budget"`
	IncludePractice bool                `json:"includePractice"`
	Utilization     int                 `json:"utilization"`
	Items           []PlanItem          `json:"items"`
	Plan            *pacing.SessionPlan `json:"plan"`
}

// NewPlanReport costs each planned video under the plan's config. Practice
// columns are zero when practice was not charged.
func NewPlanReport(courseID string, plan *pacing.SessionPlan, costs []pacing.VideoCost, budget float64, includePractice bool) *PlanReport {
	r := &PlanReport{
		CourseID:        courseID,
		Budget:          budget,
		IncludePractice: includePractice,
		Utilization:     plan.Utilization(budget),
		Plan:            plan,
	}
	for i, c := range costs {
		item := PlanItem{
			Position:  i + 1,
			ID:        c.Video.ID,
			FileName:  c.Video.FileName,
			Section:   c.Video.Section,
			VideoTime: c.EffectiveVideoTime,
			TotalTime: c.EffectiveVideoTime,
		}
		if includePractice {
			item.PracticeTime = c.PracticeTime
			item.TotalTime = c.TotalTime
		}
		r.Items = append(r.Items, item)
	}
	return r
}

func (r *PlanReport) WriteText(w io.Writer) error {
	var b strings.Builder
	b.WriteString(theme.Title.Render("🎯 Study plan for "+Duration(r.Budget)) + "\n\n")

	section := "\x00"
	for _, it := range r.Items {
		if it.Section != section {
			section = it.Section
			label := section
			if label == "" {
				label = "(root)"
			}
			b.WriteString(theme.Heading.Render(label) + "\n")
		}
		line := fmt.Sprintf("  %2d. %s", it.Position, it.FileName)
		cost := Duration(it.VideoTime)
		if r.IncludePractice {
			cost += " + " + Duration(it.PracticeTime) + " practice"
		}
		fmt.Fprintf(&b, "%s  %s\n", theme.Body.Render(line), theme.Label.Render(cost))
	}

	p := r.Plan
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Videos:"), theme.Value.Render(strconv.Itoa(len(r.Items))))
	fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Video time:"), theme.Value.Render(Duration(p.TotalVideoTime)))
	if r.IncludePractice {
		fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("Practice time:"), theme.Value.Render(Duration(p.TotalPracticeTime)))
	}
	fmt.Fprintf(&b, "%s %s (%d%% of budget)\n", theme.Label.Render("Total:"),
		theme.Value.Render(Duration(p.TotalTime)), r.Utilization)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *PlanReport) Table() ([]string, [][]string) {
	header := []string{"position", "id", "filename", "section", "video_time", "practice_time", "total_time"}
	rows := make([][]string, 0, len(r.Items))
	for _, it := range r.Items {
		rows = append(rows, []string{
			strconv.Itoa(it.Position), it.ID, it.FileName, it.Section,
			seconds(it.VideoTime), seconds(it.PracticeTime), seconds(it.TotalTime),
		})
	}
	return header, rows
}
