package gamify

import "time"

const dateLayout = "2006-01-02"

// Streak tracks consecutive study days.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
	// LastStudyDate is a local calendar date (YYYY-MM-DD), "" when the
	// learner has never studied.
	LastStudyDate string `json:"lastStudyDate,omitempty"`
}

// Record registers study activity at now. Studying again on the same day
// changes nothing, the next calendar day extends the streak, and any longer
// gap starts over at 1. The bool reports a new longest streak.
func (s Streak) Record(now time.Time) (Streak, bool) {
	today := now.Format(dateLayout)
	gap, ok := s.daysSince(now)
	switch {
	case ok && gap == 0:
		return s, false
	case ok && gap == 1:
		s.Current++
	default:
		s.Current = 1
	}
	s.LastStudyDate = today

	if s.Current > s.Longest {
		s.Longest = s.Current
		return s, true
	}
	return s, false
}

// AtRisk reports whether the streak ends unless the learner studies today.
func (s Streak) AtRisk(now time.Time) bool {
	if s.Current == 0 {
		return false
	}
	gap, ok := s.daysSince(now)
	return ok && gap == 1
}

// Active reports whether the streak is still alive at now.
func (s Streak) Active(now time.Time) bool {
	if s.Current == 0 {
		return false
	}
	gap, ok := s.daysSince(now)
	return ok && gap <= 1
}

// daysSince counts calendar days between the last study date and now, in
// now's location.
func (s Streak) daysSince(now time.Time) (int, bool) {
	if s.LastStudyDate == "" {
		return 0, false
	}
	last, err := time.Parse(dateLayout, s.LastStudyDate)
	if err != nil {
		return 0, false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(today.Sub(last).Hours() / 24), true
}
