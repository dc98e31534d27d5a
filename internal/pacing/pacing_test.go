package pacing

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/abhisek/pacer/internal/course"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newCourse(videos ...course.VideoItem) *course.Course {
	c := course.New("c1", "/courses/test")
	for i := range videos {
		videos[i].Order = i
	}
	c.Videos = videos
	return c
}

func video(id string, duration float64, section string) course.VideoItem {
	return course.VideoItem{ID: id, FileName: id + ".mp4", Duration: duration, Section: section}
}

func watch(t *testing.T, c *course.Course, id string, at time.Time) {
	t.Helper()
	if err := c.MarkWatched(id, "", at); err != nil {
		t.Fatalf("MarkWatched(%s): %v", id, err)
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func ids(videos []course.VideoItem) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCost(t *testing.T) {
	cfg := course.DefaultConfig()
	cfg.PlaybackSpeed = 1.5
	cfg.SectionMultipliers = map[string]float64{"labs": 3.0}

	tests := []struct {
		name                    string
		video                   course.VideoItem
		wantVideo, wantPractice float64
	}{
		{"default multiplier", video("a", 3600, "intro"), 2400, 2400},
		{"section override", video("b", 3600, "labs"), 2400, 7200},
		{"uncategorized uses default", video("c", 900, ""), 600, 600},
		{"zero duration", video("d", 0, "labs"), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cost(tt.video, cfg)
			if err != nil {
				t.Fatalf("Cost: %v", err)
			}
			if !approx(got.EffectiveVideoTime, tt.wantVideo) {
				t.Errorf("EffectiveVideoTime = %v, want %v", got.EffectiveVideoTime, tt.wantVideo)
			}
			if !approx(got.PracticeTime, tt.wantPractice) {
				t.Errorf("PracticeTime = %v, want %v", got.PracticeTime, tt.wantPractice)
			}
			if !approx(got.TotalTime, tt.wantVideo+tt.wantPractice) {
				t.Errorf("TotalTime = %v, want %v", got.TotalTime, tt.wantVideo+tt.wantPractice)
			}
		})
	}
}

func TestCost_SectionOverride(t *testing.T) {
	cfg := course.DefaultConfig()
	cfg.SectionMultipliers = map[string]float64{"02 labs": 3.0}

	got, err := Cost(video("v", 2400, "02 labs"), cfg)
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if got.PracticeTime != 7200 || got.TotalTime != 9600 {
		t.Errorf("got practice %v total %v, want 7200 and 9600", got.PracticeTime, got.TotalTime)
	}
}

func TestCost_InvalidSpeed(t *testing.T) {
	for _, speed := range []float64{0, -1} {
		cfg := course.DefaultConfig()
		cfg.PlaybackSpeed = speed
		_, err := Cost(video("a", 60, ""), cfg)
		var cfgErr *course.ErrConfiguration
		if !errors.As(err, &cfgErr) {
			t.Errorf("speed %v: expected ErrConfiguration, got %v", speed, err)
		}
	}
}

func TestTotals(t *testing.T) {
	c := newCourse(video("a", 600, "s1"), video("b", 1200, "s2"))
	c.Config.SectionMultipliers = map[string]float64{"s2": 0.5}

	got, err := Totals(c.Videos, c.Config)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if got.VideoTime != 1800 || got.PracticeTime != 1200 || got.Total != 3000 {
		t.Errorf("Totals = %+v, want 1800/1200/3000", got)
	}
}

func TestAggregate(t *testing.T) {
	c := newCourse(
		video("a", 600, "01 intro"),
		video("b", 600, "01 intro"),
		video("c", 1200, "02 core"),
		video("d", 600, ""),
	)
	watch(t, c, "a", t0)
	watch(t, c, "c", t0.Add(time.Hour))

	p, err := Aggregate(c, 0)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if p.TotalVideos != 4 || p.WatchedVideos != 2 {
		t.Errorf("videos = %d/%d, want 2/4", p.WatchedVideos, p.TotalVideos)
	}
	if p.CompletionPercentage != 50 {
		t.Errorf("CompletionPercentage = %d, want 50", p.CompletionPercentage)
	}
	if p.TotalDuration != 3000 || p.WatchedDuration != 1800 || p.RemainingDuration != 1200 {
		t.Errorf("durations = %v/%v/%v", p.TotalDuration, p.WatchedDuration, p.RemainingDuration)
	}
	if p.LastWatchedVideo != "c" {
		t.Errorf("LastWatchedVideo = %q, want c", p.LastWatchedVideo)
	}
	if len(p.Sections) != 2 {
		t.Fatalf("Sections = %v, want 2 entries", p.Sections)
	}
	if s := p.Sections["01 intro"]; s.TotalVideos != 2 || s.WatchedVideos != 1 || s.CompletionPercentage != 50 {
		t.Errorf("01 intro = %+v", s)
	}
	if s := p.Sections["02 core"]; s.CompletionPercentage != 100 {
		t.Errorf("02 core = %+v", s)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	c := newCourse(video("a", 613, "x"), video("b", 1277, "y"), video("c", 59, ""))
	watch(t, c, "b", t0)

	for _, speed := range []float64{0, 0.5, 1, 1.25, 2, 3} {
		p, err := Aggregate(c, speed)
		if err != nil {
			t.Fatalf("Aggregate(%v): %v", speed, err)
		}
		if !approx(p.WatchedDuration+p.RemainingDuration, p.TotalDuration) {
			t.Errorf("speed %v: watched + remaining = %v, total %v",
				speed, p.WatchedDuration+p.RemainingDuration, p.TotalDuration)
		}
		if p.CompletionPercentage < 0 || p.CompletionPercentage > 100 {
			t.Errorf("speed %v: completion %d out of range", speed, p.CompletionPercentage)
		}
	}

	_ = c.MarkAll(true, t0)
	p, _ := Aggregate(c, 0)
	if p.CompletionPercentage != 100 {
		t.Errorf("all watched: completion = %d, want 100", p.CompletionPercentage)
	}
}

func TestAggregate_AlmostCompleteIsNotHundred(t *testing.T) {
	videos := make([]course.VideoItem, 200)
	for i := range videos {
		videos[i] = video(fmt.Sprintf("v%03d", i), 60, "s")
	}
	c := newCourse(videos...)
	for _, v := range videos[:199] {
		watch(t, c, v.ID, t0)
	}

	p, err := Aggregate(c, 0)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if p.CompletionPercentage != 99 {
		t.Errorf("199/200: completion = %d, want 99", p.CompletionPercentage)
	}
	if got := p.Sections["s"].CompletionPercentage; got != 99 {
		t.Errorf("199/200: section completion = %d, want 99", got)
	}

	watch(t, c, videos[199].ID, t0)
	p, _ = Aggregate(c, 0)
	if p.CompletionPercentage != 100 {
		t.Errorf("200/200: completion = %d, want 100", p.CompletionPercentage)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 200, 1},
		{1, 201, 0},
		{199, 200, 99},
		{999, 1000, 99},
		{3, 3, 100},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.part, tt.whole, got, tt.want)
		}
	}
}

func TestAggregate_SpeedOverride(t *testing.T) {
	c := newCourse(video("a", 3600, ""))
	p, err := Aggregate(c, 2)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if p.TotalDuration != 1800 {
		t.Errorf("TotalDuration = %v, want 1800", p.TotalDuration)
	}
}

func TestAggregate_EmptyCourse(t *testing.T) {
	p, err := Aggregate(newCourse(), 0)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if p.CompletionPercentage != 0 || p.TotalVideos != 0 || len(p.Sections) != 0 {
		t.Errorf("empty course progress = %+v", p)
	}
	if p.LastWatchedVideo != "" {
		t.Errorf("LastWatchedVideo = %q, want empty", p.LastWatchedVideo)
	}
}

func TestResolveCheckpoint(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, c *course.Course)
		want  string
	}{
		{"nothing watched", func(*testing.T, *course.Course) {}, "a"},
		{"latest watched", func(t *testing.T, c *course.Course) {
			watch(t, c, "c", t0.Add(time.Hour))
			watch(t, c, "b", t0.Add(2*time.Hour))
			c.Checkpoint = ""
		}, "b"},
		{"explicit wins", func(t *testing.T, c *course.Course) {
			watch(t, c, "b", t0)
			c.Checkpoint = "c"
		}, "c"},
		{"dangling checkpoint falls back", func(t *testing.T, c *course.Course) {
			watch(t, c, "b", t0)
			c.Checkpoint = "gone"
		}, "b"},
		{"tie keeps first in order", func(t *testing.T, c *course.Course) {
			watch(t, c, "c", t0)
			watch(t, c, "b", t0)
			c.Checkpoint = ""
		}, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCourse(video("a", 60, ""), video("b", 60, ""), video("c", 60, ""))
			tt.setup(t, c)

			got, ok := ResolveCheckpoint(c)
			if !ok {
				t.Fatal("ResolveCheckpoint returned false")
			}
			if got.ID != tt.want {
				t.Errorf("ResolveCheckpoint = %q, want %q", got.ID, tt.want)
			}
			again, _ := ResolveCheckpoint(c)
			if again.ID != got.ID {
				t.Errorf("second call = %q, want %q", again.ID, got.ID)
			}
		})
	}
}

func TestResolveCheckpoint_Empty(t *testing.T) {
	if _, ok := ResolveCheckpoint(newCourse()); ok {
		t.Error("expected false for course without videos")
	}
}

func TestPlan_WithPractice(t *testing.T) {
	c := newCourse(video("A", 3600, ""), video("B", 1800, ""))

	plan, err := Plan(c, PlanOptions{TimeBudget: 7200, IncludePractice: true})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := ids(plan.Videos); !equalIDs(got, []string{"A"}) {
		t.Errorf("Videos = %v, want [A]", got)
	}
	if plan.TotalTime != 7200 || plan.TotalVideoTime != 3600 || plan.TotalPracticeTime != 3600 {
		t.Errorf("totals = %v/%v/%v", plan.TotalVideoTime, plan.TotalPracticeTime, plan.TotalTime)
	}
	if plan.StartCheckpoint != "A" || plan.EndCheckpoint != "A" {
		t.Errorf("checkpoints = %q..%q, want A..A", plan.StartCheckpoint, plan.EndCheckpoint)
	}
}

func TestPlan_WithoutPractice(t *testing.T) {
	c := newCourse(video("A", 3600, ""), video("B", 1800, ""))

	plan, err := Plan(c, PlanOptions{TimeBudget: 7200})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := ids(plan.Videos); !equalIDs(got, []string{"A", "B"}) {
		t.Errorf("Videos = %v, want [A B]", got)
	}
	if plan.TotalPracticeTime != 0 {
		t.Errorf("TotalPracticeTime = %v, want 0", plan.TotalPracticeTime)
	}
	if plan.TotalTime != plan.TotalVideoTime || plan.TotalTime != 5400 {
		t.Errorf("TotalTime = %v, TotalVideoTime = %v, want 5400", plan.TotalTime, plan.TotalVideoTime)
	}
	if plan.EndCheckpoint != "B" {
		t.Errorf("EndCheckpoint = %q, want B", plan.EndCheckpoint)
	}
}

func TestPlan_StopsAtFirstMisfit(t *testing.T) {
	c := newCourse(video("a", 600, ""), video("big", 6000, ""), video("c", 60, ""))

	plan, err := Plan(c, PlanOptions{TimeBudget: 1000})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := ids(plan.Videos); !equalIDs(got, []string{"a"}) {
		t.Errorf("Videos = %v, want [a]", got)
	}
}

func TestPlan_FirstVideoTooLong(t *testing.T) {
	c := newCourse(video("a", 6000, ""))

	plan, err := Plan(c, PlanOptions{TimeBudget: 60})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan.Videos) != 0 || plan.TotalTime != 0 {
		t.Errorf("plan = %+v, want empty", plan)
	}
	if plan.StartCheckpoint != "a" || plan.EndCheckpoint != "a" {
		t.Errorf("checkpoints = %q..%q, want a..a", plan.StartCheckpoint, plan.EndCheckpoint)
	}
}

func TestPlan_NeverExceedsBudget(t *testing.T) {
	c := newCourse(
		video("a", 301, "x"), video("b", 977, "x"), video("c", 45, "y"),
		video("d", 1234, "y"), video("e", 88, ""), video("f", 612, ""),
	)
	c.Config.PlaybackSpeed = 1.25
	c.Config.SectionMultipliers = map[string]float64{"y": 2.5}

	for _, budget := range []float64{0, 100, 500, 1000, 2500, 10000} {
		for _, practice := range []bool{false, true} {
			plan, err := Plan(c, PlanOptions{TimeBudget: budget, IncludePractice: practice})
			if err != nil {
				t.Fatalf("Plan(%v, %v): %v", budget, practice, err)
			}
			if plan.TotalTime > budget {
				t.Errorf("Plan(%v, %v) TotalTime = %v over budget", budget, practice, plan.TotalTime)
			}
			if !practice && plan.TotalTime != plan.TotalVideoTime {
				t.Errorf("without practice TotalTime %v != TotalVideoTime %v", plan.TotalTime, plan.TotalVideoTime)
			}
		}
	}
}

func TestPlan_StartFrom(t *testing.T) {
	tests := []struct {
		name      string
		startFrom string
		want      string
	}{
		{"default resolves last watched", "", "c"},
		{"last", StartLast, "c"},
		{"beginning is first unwatched", StartBeginning, "a"},
		{"checkpoint", StartCheckpoint, "b"},
		{"literal id", "d", "d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCourse(video("a", 60, ""), video("b", 60, ""), video("c", 60, ""), video("d", 60, ""))
			watch(t, c, "c", t0)
			c.Checkpoint = "b"
			if tt.startFrom == "" || tt.startFrom == StartLast {
				c.Checkpoint = ""
			}

			plan, err := Plan(c, PlanOptions{TimeBudget: 3600, StartFrom: tt.startFrom})
			if err != nil {
				t.Fatalf("Plan: %v", err)
			}
			if plan.StartCheckpoint != tt.want {
				t.Errorf("StartCheckpoint = %q, want %q", plan.StartCheckpoint, tt.want)
			}
		})
	}
}

func TestPlan_SkipsWatchedAfterStart(t *testing.T) {
	c := newCourse(video("a", 60, ""), video("b", 60, ""), video("c", 60, ""))
	watch(t, c, "b", t0)
	c.Checkpoint = "a"

	plan, err := Plan(c, PlanOptions{TimeBudget: 3600, StartFrom: StartCheckpoint})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := ids(plan.Videos); !equalIDs(got, []string{"a", "c"}) {
		t.Errorf("Videos = %v, want [a c]", got)
	}
}

func TestPlan_SectionFilter(t *testing.T) {
	c := newCourse(video("a", 60, "s1"), video("b", 60, "s2"), video("c", 60, "s1"))

	plan, err := Plan(c, PlanOptions{TimeBudget: 3600, Section: "s1"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if got := ids(plan.Videos); !equalIDs(got, []string{"a", "c"}) {
		t.Errorf("Videos = %v, want [a c]", got)
	}
}

func TestPlan_Errors(t *testing.T) {
	t.Run("unknown start id", func(t *testing.T) {
		c := newCourse(video("a", 60, ""))
		_, err := Plan(c, PlanOptions{TimeBudget: 60, StartFrom: "nope"})
		var e *ErrNoStartVideo
		if !errors.As(err, &e) {
			t.Fatalf("expected ErrNoStartVideo, got %v", err)
		}
	})
	t.Run("empty course", func(t *testing.T) {
		_, err := Plan(newCourse(), PlanOptions{TimeBudget: 60})
		var e *ErrNoStartVideo
		if !errors.As(err, &e) {
			t.Fatalf("expected ErrNoStartVideo, got %v", err)
		}
	})
	t.Run("all watched", func(t *testing.T) {
		c := newCourse(video("a", 60, ""), video("b", 60, ""))
		c.MarkAll(true, t0)
		_, err := Plan(c, PlanOptions{TimeBudget: 60})
		var e *ErrEmptyCandidateSet
		if !errors.As(err, &e) {
			t.Fatalf("expected ErrEmptyCandidateSet, got %v", err)
		}
	})
	t.Run("section without candidates", func(t *testing.T) {
		c := newCourse(video("a", 60, "s1"))
		_, err := Plan(c, PlanOptions{TimeBudget: 60, Section: "s2"})
		var e *ErrEmptyCandidateSet
		if !errors.As(err, &e) {
			t.Fatalf("expected ErrEmptyCandidateSet, got %v", err)
		}
		if e.Section != "s2" {
			t.Errorf("Section = %q, want s2", e.Section)
		}
	})
	t.Run("negative budget", func(t *testing.T) {
		c := newCourse(video("a", 60, ""))
		_, err := Plan(c, PlanOptions{TimeBudget: -1})
		var e *course.ErrConfiguration
		if !errors.As(err, &e) {
			t.Fatalf("expected ErrConfiguration, got %v", err)
		}
	})
}

func TestEstimateVideosInBudget(t *testing.T) {
	c := newCourse(video("a", 600, ""), video("b", 600, ""), video("c", 600, ""))
	watch(t, c, "a", t0)

	tests := []struct {
		budget   float64
		practice bool
		want     int
	}{
		{1200, false, 2},
		{1200, true, 1},
		{599, false, 0},
	}
	for _, tt := range tests {
		got, err := EstimateVideosInBudget(c, tt.budget, tt.practice)
		if err != nil {
			t.Fatalf("EstimateVideosInBudget: %v", err)
		}
		if got != tt.want {
			t.Errorf("EstimateVideosInBudget(%v, %v) = %d, want %d", tt.budget, tt.practice, got, tt.want)
		}
	}
}

func TestSessionPlan_Utilization(t *testing.T) {
	p := &SessionPlan{TotalTime: 5400}
	if got := p.Utilization(7200); got != 75 {
		t.Errorf("Utilization = %d, want 75", got)
	}
	if got := p.Utilization(0); got != 0 {
		t.Errorf("Utilization(0) = %d, want 0", got)
	}
}
