package pacing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/abhisek/pacer/internal/course"
)

// MaxHoursPerDay is the daily study load above which a deadline is
// considered not achievable.
const MaxHoursPerDay = 8.0

// Pace classifies the daily load a deadline demands.
type Pace string

const (
	PaceEasy          Pace = "easy"
	PaceModerate      Pace = "moderate"
	PaceChallenging   Pace = "challenging"
	PaceIntensive     Pace = "intensive"
	PaceNotAchievable Pace = "not-achievable"
)

var recommendations = map[Pace]string{
	PaceEasy:          "Easy pace! You can take it slow.",
	PaceModerate:      "Moderate pace. Plan your study time well.",
	PaceChallenging:   "Challenging but doable. Stay focused!",
	PaceIntensive:     "Very intensive. Consider extending the deadline.",
	PaceNotAchievable: "Not achievable with current deadline. Consider extending it.",
}

// PaceFor bands a daily load in hours.
func PaceFor(hoursPerDay float64) Pace {
	switch {
	case hoursPerDay <= 2:
		return PaceEasy
	case hoursPerDay <= 4:
		return PaceModerate
	case hoursPerDay <= 6:
		return PaceChallenging
	case hoursPerDay <= MaxHoursPerDay:
		return PaceIntensive
	default:
		return PaceNotAchievable
	}
}

// Recommendation returns the advice text for the band.
func (p Pace) Recommendation() string {
	return recommendations[p]
}

// DeadlineCalculation is the daily load needed to finish by a deadline.
type DeadlineCalculation struct {
	Deadline       time.Time `json:"deadline"`
	DaysRemaining  int       `json:"daysRemaining"`
	HoursRemaining float64   `json:"hoursRemaining"`
	HoursPerDay    float64   `json:"hoursPerDay"`
	IsAchievable   bool      `json:"isAchievable"`
	Pace           Pace      `json:"pace"`
	Recommendation string    `json:"recommendation"`
}

// CalculateRequirements works out how many hours per day are needed to
// finish the remaining videos, with practice, by the deadline.
//
// HoursRemaining is already speed adjusted, and the daily figure divides by
// the playback speed once more. Reports produced by earlier versions of the
// tool rely on that figure, so it is kept as is.
func CalculateRequirements(c *course.Course, deadline, now time.Time) (DeadlineCalculation, error) {
	if deadline.IsZero() {
		return DeadlineCalculation{}, &ErrInvalidDate{Input: "zero time"}
	}
	speed := c.Config.PlaybackSpeed
	if speed <= 0 {
		return DeadlineCalculation{}, &course.ErrConfiguration{
			Field:  "playback speed",
			Value:  speed,
			Reason: "must be positive",
		}
	}

	progress, err := Aggregate(c, 0)
	if err != nil {
		return DeadlineCalculation{}, err
	}

	hoursRemaining := progress.RemainingDuration / 3600
	days := max(1, wholeDaysBetween(now, deadline))
	perDay := hoursRemaining / float64(days) / speed * (1 + c.Config.AverageMultiplier())
	pace := PaceFor(perDay)

	return DeadlineCalculation{
		Deadline:       deadline,
		DaysRemaining:  days,
		HoursRemaining: hoursRemaining,
		HoursPerDay:    perDay,
		IsAchievable:   perDay <= MaxHoursPerDay,
		Pace:           pace,
		Recommendation: pace.Recommendation(),
	}, nil
}

// SuggestDeadline returns the date by which the remaining videos are done
// when studying hoursPerDay hours every day.
func SuggestDeadline(c *course.Course, hoursPerDay float64, now time.Time) (time.Time, error) {
	if hoursPerDay <= 0 {
		return time.Time{}, &course.ErrConfiguration{
			Field:  "hours per day",
			Value:  hoursPerDay,
			Reason: "must be positive",
		}
	}
	progress, err := Aggregate(c, 0)
	if err != nil {
		return time.Time{}, err
	}
	days := int(math.Ceil(progress.RemainingDuration / 3600 / hoursPerDay))
	return now.AddDate(0, 0, days), nil
}

var deadlineLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"Jan 2 2006",
	"Jan 2, 2006",
}

// ParseDeadline parses a user supplied deadline. Dates without a time of
// day are interpreted in loc.
func ParseDeadline(s string, loc *time.Location) (time.Time, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return time.Time{}, &ErrInvalidDate{Input: s, Err: fmt.Errorf("empty date")}
	}
	if loc == nil {
		loc = time.Local
	}
	var lastErr error
	for _, layout := range deadlineLayouts {
		t, err := time.ParseInLocation(layout, in, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &ErrInvalidDate{Input: s, Err: lastErr}
}

// RequirementsFor parses the deadline and calculates the requirements.
func RequirementsFor(c *course.Course, deadline string, now time.Time) (DeadlineCalculation, error) {
	t, err := ParseDeadline(deadline, now.Location())
	if err != nil {
		return DeadlineCalculation{}, err
	}
	return CalculateRequirements(c, t, now)
}

func wholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
