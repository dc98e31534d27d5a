package pacing

import "fmt"

// ErrNoStartVideo indicates the planner could not resolve where to start.
type ErrNoStartVideo struct {
	StartFrom string
}

func (e *ErrNoStartVideo) Error() string {
	if e.StartFrom == "" || e.StartFrom == StartLast {
		return "no starting video found"
	}
	return fmt.Sprintf("no starting video found for %q", e.StartFrom)
}

// ErrEmptyCandidateSet indicates no unwatched video is left to schedule
// after the start position and section filter.
type ErrEmptyCandidateSet struct {
	StartID string
	Section string
}

func (e *ErrEmptyCandidateSet) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("no unwatched videos found in section %q", e.Section)
	}
	return "no unwatched videos found"
}

// ErrInvalidDate indicates a deadline that could not be parsed.
type ErrInvalidDate struct {
	Input string
	Err   error
}

func (e *ErrInvalidDate) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid date %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid date %q", e.Input)
}

func (e *ErrInvalidDate) Unwrap() error { return e.Err }
