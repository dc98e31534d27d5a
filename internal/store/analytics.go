package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/pacer/internal/gamify"
)

// streakRowID is the id of the only row of the streak table.
const streakRowID = 1

type analyticsRepo struct {
	db *sql.DB
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadStreak(ctx context.Context, q querier) (gamify.Streak, error) {
	var s gamify.Streak
	query, args := builder().Select("current", "longest", "last_study_date").
		From(entsql.Table(streakTable)).
		Where(entsql.EQ("id", streakRowID)).
		Query()
	err := q.QueryRowContext(ctx, query, args...).Scan(&s.Current, &s.Longest, &s.LastStudyDate)
	if errors.Is(err, sql.ErrNoRows) {
		return gamify.Streak{}, nil
	}
	if err != nil {
		return gamify.Streak{}, fmt.Errorf("query streak: %w", err)
	}
	return s, nil
}

func (r *analyticsRepo) Streak(ctx context.Context) (gamify.Streak, error) {
	return loadStreak(ctx, r.db)
}

func (r *analyticsRepo) RecordStudy(ctx context.Context, now time.Time) (gamify.Streak, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return gamify.Streak{}, false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	cur, err := loadStreak(ctx, tx)
	if err != nil {
		return gamify.Streak{}, false, err
	}
	next, record := cur.Record(now)
	if next == cur {
		return cur, false, nil
	}

	query, args := builder().Insert(streakTable).
		Columns("id", "current", "longest", "last_study_date").
		Values(streakRowID, next.Current, next.Longest, next.LastStudyDate).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return gamify.Streak{}, false, fmt.Errorf("save streak: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return gamify.Streak{}, false, err
	}
	return next, record, nil
}

func (r *analyticsRepo) AppendSession(ctx context.Context, s *StudySession) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	query, args := builder().Insert(studySessionsTable).
		Columns("id", "course_id", "started_at", "duration_seconds", "videos_watched").
		Values(s.ID, s.CourseID, s.StartedAt.UTC().Format(timeLayout), s.Duration, s.VideosWatched).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append study session: %w", err)
	}
	return nil
}

func (r *analyticsRepo) Sessions(ctx context.Context, courseID string, limit int) ([]StudySession, error) {
	sel := builder().Select("id", "course_id", "started_at", "duration_seconds", "videos_watched").
		From(entsql.Table(studySessionsTable)).
		Where(entsql.EQ("course_id", courseID)).
		OrderBy(entsql.Desc("started_at"), "id")
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query study sessions: %w", err)
	}
	defer rows.Close()

	var out []StudySession
	for rows.Next() {
		var (
			s       StudySession
			started string
		)
		if err := rows.Scan(&s.ID, &s.CourseID, &started, &s.Duration, &s.VideosWatched); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, started); err == nil {
			s.StartedAt = t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *analyticsRepo) Totals(ctx context.Context, courseID string) (StudyTotals, error) {
	var t StudyTotals
	query, args := builder().Select(
		entsql.Count("*"),
		"COALESCE("+entsql.Sum("duration_seconds")+", 0)",
		"COALESCE("+entsql.Sum("videos_watched")+", 0)",
	).
		From(entsql.Table(studySessionsTable)).
		Where(entsql.EQ("course_id", courseID)).
		Query()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.Sessions, &t.Duration, &t.VideosWatched)
	if err != nil {
		return StudyTotals{}, fmt.Errorf("study totals: %w", err)
	}
	return t, nil
}
