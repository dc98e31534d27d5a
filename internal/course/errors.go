package course

import "fmt"

// ErrConfiguration reports an out-of-range speed, multiplier or budget.
type ErrConfiguration struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("configuration error: %s %g %s", e.Field, e.Value, e.Reason)
}

// ErrVideoNotFound reports a video id that is not part of the course.
type ErrVideoNotFound struct {
	ID string
}

func (e *ErrVideoNotFound) Error() string {
	return fmt.Sprintf("video not found: %s", e.ID)
}

// ErrSectionNotFound reports a section label no video carries.
type ErrSectionNotFound struct {
	Section   string
	Available []string
}

func (e *ErrSectionNotFound) Error() string {
	return fmt.Sprintf("section not found: %s", e.Section)
}

// ErrNoVideos is returned by operations that need at least one video.
type ErrNoVideos struct {
	CourseID string
}

func (e *ErrNoVideos) Error() string {
	return fmt.Sprintf("course %s has no videos", e.CourseID)
}

// ErrNothingWatched is returned when an operation needs a watched video and
// none has been watched yet.
type ErrNothingWatched struct {
	CourseID string
}

func (e *ErrNothingWatched) Error() string {
	return fmt.Sprintf("no video of course %s has been watched yet", e.CourseID)
}
