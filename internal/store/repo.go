package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/gamify"
)

// ErrCourseNotFound indicates no stored course matches the reference.
type ErrCourseNotFound struct {
	Ref string
}

func (e *ErrCourseNotFound) Error() string {
	return fmt.Sprintf("course not found: %s", e.Ref)
}

// ErrCorruptCourse indicates a stored course document that fails validation.
type ErrCorruptCourse struct {
	ID  string
	Err error
}

func (e *ErrCorruptCourse) Error() string {
	return fmt.Sprintf("stored course %s is invalid: %v", e.ID, e.Err)
}

func (e *ErrCorruptCourse) Unwrap() error { return e.Err }

// CourseSummary is the listing view of a stored course.
type CourseSummary struct {
	ID           string    `json:"id"`
	RootPath     string    `json:"rootPath"`
	VideoCount   int       `json:"videoCount"`
	WatchedCount int       `json:"watchedCount"`
	ScannedAt    time.Time `json:"scannedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CourseRepo persists whole course documents.
type CourseRepo interface {
	// Save inserts or replaces the course.
	Save(ctx context.Context, c *course.Course) error

	// Load returns the course with the given id, or *ErrCourseNotFound.
	Load(ctx context.Context, id string) (*course.Course, error)

	// FindByPath returns the course scanned from rootPath, or *ErrCourseNotFound.
	FindByPath(ctx context.Context, rootPath string) (*course.Course, error)

	// List returns all courses, most recently updated first.
	List(ctx context.Context) ([]CourseSummary, error)

	// Delete removes the course and its study sessions.
	Delete(ctx context.Context, id string) error
}

// SettingsRepo stores application-wide settings.
type SettingsRepo interface {
	// GlobalConfig returns the saved defaults for new courses, or
	// course.DefaultGlobalConfig when none were saved.
	GlobalConfig(ctx context.Context) (course.Config, error)

	SaveGlobalConfig(ctx context.Context, cfg course.Config) error
	ResetGlobalConfig(ctx context.Context) error
}

// StudySession is one logged block of study.
type StudySession struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"courseId"`
	StartedAt     time.Time `json:"date"`
	Duration      float64   `json:"duration"` // seconds
	VideosWatched int       `json:"videosWatched"`
}

// StudyTotals aggregates the session log of one course.
type StudyTotals struct {
	Sessions      int     `json:"sessions"`
	Duration      float64 `json:"duration"`
	VideosWatched int     `json:"videosWatched"`
}

// AnalyticsRepo tracks the study streak and the session log.
type AnalyticsRepo interface {
	Streak(ctx context.Context) (gamify.Streak, error)

	// RecordStudy applies gamify.Streak.Record at now and persists the
	// result. The bool reports a new longest streak.
	RecordStudy(ctx context.Context, now time.Time) (gamify.Streak, bool, error)

	// AppendSession stores a session, assigning an id when empty.
	AppendSession(ctx context.Context, s *StudySession) error

	// Sessions returns the newest sessions of a course first. limit <= 0
	// returns all.
	Sessions(ctx context.Context, courseID string, limit int) ([]StudySession, error)

	Totals(ctx context.Context, courseID string) (StudyTotals, error)
}
