package gamify

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/pacing"
)

func day(d int, hour int) time.Time {
	return time.Date(2026, 3, d, hour, 0, 0, 0, time.Local)
}

func TestStreakRecord(t *testing.T) {
	tests := []struct {
		name       string
		start      Streak
		now        time.Time
		want       Streak
		wantRecord bool
	}{
		{"first study", Streak{}, day(10, 9), Streak{1, 1, "2026-03-10"}, true},
		{"same day is a no-op", Streak{3, 5, "2026-03-10"}, day(10, 23), Streak{3, 5, "2026-03-10"}, false},
		{"next day extends", Streak{3, 5, "2026-03-09"}, day(10, 0), Streak{4, 5, "2026-03-10"}, false},
		{"extends past longest", Streak{5, 5, "2026-03-09"}, day(10, 8), Streak{6, 6, "2026-03-10"}, true},
		{"gap resets", Streak{9, 9, "2026-03-07"}, day(10, 8), Streak{1, 9, "2026-03-10"}, false},
		{"unparseable date resets", Streak{2, 4, "garbage"}, day(10, 8), Streak{1, 4, "2026-03-10"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, record := tt.start.Record(tt.now)
			if got != tt.want {
				t.Errorf("Record = %+v, want %+v", got, tt.want)
			}
			if record != tt.wantRecord {
				t.Errorf("new record = %v, want %v", record, tt.wantRecord)
			}
		})
	}
}

func TestStreakRecord_AcrossMonth(t *testing.T) {
	s := Streak{Current: 2, Longest: 2, LastStudyDate: "2026-02-28"}
	got, _ := s.Record(day(1, 12))
	if got.Current != 3 {
		t.Errorf("Current = %d, want 3", got.Current)
	}
}

func TestStreakAtRiskAndActive(t *testing.T) {
	s := Streak{Current: 4, Longest: 4, LastStudyDate: "2026-03-09"}

	tests := []struct {
		now          time.Time
		risk, active bool
	}{
		{day(9, 20), false, true},
		{day(10, 7), true, true},
		{day(12, 7), false, false},
	}
	for _, tt := range tests {
		if got := s.AtRisk(tt.now); got != tt.risk {
			t.Errorf("AtRisk(%v) = %v, want %v", tt.now, got, tt.risk)
		}
		if got := s.Active(tt.now); got != tt.active {
			t.Errorf("Active(%v) = %v, want %v", tt.now, got, tt.active)
		}
	}

	if (Streak{}).AtRisk(day(10, 7)) {
		t.Error("empty streak should never be at risk")
	}
}

func TestAchievements(t *testing.T) {
	tests := []struct {
		name     string
		progress pacing.CourseProgress
		streak   Streak
		want     []AchievementID
	}{
		{"nothing yet", pacing.CourseProgress{CompletionPercentage: 10}, Streak{}, nil},
		{"halfway", pacing.CourseProgress{CompletionPercentage: 50}, Streak{}, []AchievementID{AchievementHalfway}},
		{"complete replaces halfway", pacing.CourseProgress{CompletionPercentage: 100}, Streak{}, []AchievementID{AchievementCourseComplete}},
		{"week streak", pacing.CourseProgress{}, Streak{Current: 7, Longest: 7}, []AchievementID{AchievementWeekStreak}},
		{"month streak", pacing.CourseProgress{}, Streak{Current: 30, Longest: 30}, []AchievementID{AchievementWeekStreak, AchievementMonthStreak}},
		{"century longest", pacing.CourseProgress{}, Streak{Current: 1, Longest: 100}, []AchievementID{AchievementCenturyStreak}},
		{"hundred videos", pacing.CourseProgress{WatchedVideos: 100, CompletionPercentage: 40}, Streak{}, []AchievementID{AchievementHundredVideos}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Achievements(tt.progress, tt.streak)
			if len(got) != len(tt.want) {
				t.Fatalf("Achievements = %v, want %v", got, tt.want)
			}
			for i, a := range got {
				if a.ID != tt.want[i] {
					t.Errorf("achievement %d = %s, want %s", i, a.ID, tt.want[i])
				}
				if a.Name == "" || a.Emoji == "" {
					t.Errorf("achievement %s missing display fields", a.ID)
				}
			}
		})
	}
}

func TestMotivation(t *testing.T) {
	tests := []struct {
		completion, streak int
		wantParts          []string
	}{
		{0, 0, []string{"single step"}},
		{30, 1, []string{"1-day streak", "Great start"}},
		{60, 4, []string{"4 days in a row", "Halfway there"}},
		{80, 10, []string{"10-day streak! Keep it up", "Almost there"}},
		{100, 0, []string{"Course completed"}},
	}
	for _, tt := range tests {
		got := Motivation(tt.completion, tt.streak)
		for _, part := range tt.wantParts {
			if !strings.Contains(got, part) {
				t.Errorf("Motivation(%d, %d) = %q, missing %q", tt.completion, tt.streak, got, part)
			}
		}
	}
}

func gapCourse(names map[string][]string, order []string) *course.Course {
	c := course.New("c", "/tmp/c")
	n := 0
	for _, section := range order {
		for _, name := range names[section] {
			c.Videos = append(c.Videos, course.VideoItem{ID: section + "/" + name, FileName: name, Section: section, Order: n})
			n++
		}
	}
	return c
}

func TestDetectGaps(t *testing.T) {
	c := gapCourse(map[string][]string{
		"01 basics": {"1 intro.mp4", "2 vars.mp4", "4 loops.mp4", "6 funcs.mp4"},
		"02 full":   {"1 a.mp4", "2 b.mp4", "3 c.mp4"},
		"03 single": {"7 only.mp4", "extra.mp4"},
		"":          {"10 x.mp4", "12 y.mp4"},
	}, []string{"01 basics", "02 full", "03 single", ""})

	gaps := DetectGaps(c)
	if len(gaps) != 2 {
		t.Fatalf("DetectGaps = %+v, want 2 gaps", gaps)
	}

	g := gaps[0]
	if g.Section != "01 basics" || g.First != 1 || g.Last != 6 {
		t.Errorf("gap 0 = %+v", g)
	}
	if got := joinInts(g.Missing); got != "3, 5" {
		t.Errorf("missing = %s, want 3, 5", got)
	}
	if got := joinInts(g.Found); got != "1, 2, 4, 6" {
		t.Errorf("found = %s, want 1, 2, 4, 6", got)
	}
	if g.Expected() != "Sequences 1-6" {
		t.Errorf("Expected() = %q", g.Expected())
	}

	if gaps[1].Section != "" || joinInts(gaps[1].Missing) != "11" {
		t.Errorf("gap 1 = %+v", gaps[1])
	}
}

func TestDetectGaps_WideRangeSkipped(t *testing.T) {
	c := gapCourse(map[string][]string{
		"s": {"1 a.mp4", "20240101 b.mp4"},
	}, []string{"s"})
	if gaps := DetectGaps(c); len(gaps) != 0 {
		t.Errorf("DetectGaps = %+v, want none", gaps)
	}
}

func TestFormatGapWarning(t *testing.T) {
	if got := FormatGapWarning(nil); got != "" {
		t.Errorf("FormatGapWarning(nil) = %q, want empty", got)
	}
	got := FormatGapWarning([]Gap{{Section: "s1", First: 1, Last: 3, Found: []int{1, 3}, Missing: []int{2}}})
	for _, want := range []string{"Missing sequences: 2 in \"s1\"", "Expected: Sequences 1-3", "Found: 1, 3", "Tip:"} {
		if !strings.Contains(got, want) {
			t.Errorf("warning %q missing %q", got, want)
		}
	}
}
