package gamify

import (
	"fmt"
	"strings"

	"github.com/abhisek/pacer/internal/pacing"
)

// AchievementID identifies an achievement.
type AchievementID string

const (
	AchievementHalfway        AchievementID = "halfway_there"
	AchievementCourseComplete AchievementID = "course_complete"
	AchievementWeekStreak     AchievementID = "week_streak"
	AchievementMonthStreak    AchievementID = "month_streak"
	AchievementCenturyStreak  AchievementID = "century_streak"
	AchievementHundredVideos  AchievementID = "hundred_videos"
)

// Achievement is an unlocked milestone.
type Achievement struct {
	ID          AchievementID `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Emoji       string        `json:"emoji"`
}

var catalog = map[AchievementID]Achievement{
	AchievementHalfway:        {AchievementHalfway, "Halfway Hero", "Completed 50% of a course", "🏆"},
	AchievementCourseComplete: {AchievementCourseComplete, "Course Master", "Completed an entire course", "🎓"},
	AchievementWeekStreak:     {AchievementWeekStreak, "Week Warrior", "Studied 7 days in a row", "🔥"},
	AchievementMonthStreak:    {AchievementMonthStreak, "Monthly Master", "Studied 30 days in a row", "💪"},
	AchievementCenturyStreak:  {AchievementCenturyStreak, "Century Champion", "Achieved a 100-day streak", "👑"},
	AchievementHundredVideos:  {AchievementHundredVideos, "Century Watcher", "Watched 100 videos", "📺"},
}

// Achievements lists what the learner has unlocked for a course. Course
// completion replaces the halfway achievement.
func Achievements(p pacing.CourseProgress, s Streak) []Achievement {
	var ids []AchievementID
	switch {
	case p.CompletionPercentage >= 100:
		ids = append(ids, AchievementCourseComplete)
	case p.CompletionPercentage >= 50:
		ids = append(ids, AchievementHalfway)
	}
	if s.Current >= 7 {
		ids = append(ids, AchievementWeekStreak)
	}
	if s.Current >= 30 {
		ids = append(ids, AchievementMonthStreak)
	}
	if s.Longest >= 100 {
		ids = append(ids, AchievementCenturyStreak)
	}
	if p.WatchedVideos >= 100 {
		ids = append(ids, AchievementHundredVideos)
	}

	out := make([]Achievement, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog[id])
	}
	return out
}

// Motivation builds an encouraging one-liner from completion and streak.
func Motivation(completion, streak int) string {
	var parts []string
	switch {
	case streak >= 7:
		parts = append(parts, fmt.Sprintf("🔥 Amazing! %d-day streak! Keep it up!", streak))
	case streak >= 3:
		parts = append(parts, fmt.Sprintf("💪 Great streak! %d days in a row!", streak))
	case streak > 0:
		parts = append(parts, fmt.Sprintf("✨ You're on a %d-day streak!", streak))
	}

	switch {
	case completion >= 100:
		parts = append(parts, "🎉 Congratulations! Course completed!")
	case completion >= 75:
		parts = append(parts, "🚀 Almost there! You're 75% done!")
	case completion >= 50:
		parts = append(parts, "📈 Halfway there! Keep going!")
	case completion >= 25:
		parts = append(parts, "🌟 Great start! You're making progress!")
	default:
		parts = append(parts, "💡 Every journey begins with a single step!")
	}
	return strings.Join(parts, " ")
}
