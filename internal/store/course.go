package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pacer/internal/course"
)

// courseRepo implements CourseRepo with one JSON document per course.
type courseRepo struct {
	db *sql.DB
}

func (r *courseRepo) Save(ctx context.Context, c *course.Course) error {
	if c.Progress == nil {
		c.Progress = make(map[string]course.WatchState)
	}
	if c.Config.SectionMultipliers == nil {
		c.Config.SectionMultipliers = map[string]float64{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal course: %w", err)
	}

	watched := 0
	for _, v := range c.Videos {
		if c.IsWatched(v.ID) {
			watched++
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Insert(coursesTable).
		Columns("id", "root_path", "data", "video_count", "watched_count", "scanned_at", "updated_at").
		Values(
			c.ID,
			c.RootPath,
			string(data),
			len(c.Videos),
			watched,
			c.ScannedAt.UTC().Format(timeLayout),
			time.Now().UTC().Format(timeLayout),
		).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save course %s: %w", c.ID, err)
	}
	return tx.Commit()
}

func (r *courseRepo) Load(ctx context.Context, id string) (*course.Course, error) {
	return r.loadWhere(ctx, entsql.EQ("id", id), id)
}

func (r *courseRepo) FindByPath(ctx context.Context, rootPath string) (*course.Course, error) {
	return r.loadWhere(ctx, entsql.EQ("root_path", rootPath), rootPath)
}

func (r *courseRepo) loadWhere(ctx context.Context, p *entsql.Predicate, ref string) (*course.Course, error) {
	query, args := builder().Select("id", "data").
		From(entsql.Table(coursesTable)).
		Where(p).
		Query()
	return scanCourse(r.db.QueryRowContext(ctx, query, args...), ref)
}

func (r *courseRepo) List(ctx context.Context) ([]CourseSummary, error) {
	query, args := builder().Select("id", "root_path", "video_count", "watched_count", "scanned_at", "updated_at").
		From(entsql.Table(coursesTable)).
		OrderBy(entsql.Desc("updated_at"), "id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []CourseSummary
	for rows.Next() {
		var (
			s                CourseSummary
			scanned, updated string
		)
		if err := rows.Scan(&s.ID, &s.RootPath, &s.VideoCount, &s.WatchedCount, &scanned, &updated); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, scanned); err == nil {
			s.ScannedAt = t
		}
		if t, err := time.Parse(timeLayout, updated); err == nil {
			s.UpdatedAt = t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Delete(studySessionsTable).Where(entsql.EQ("course_id", id)).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete sessions of %s: %w", id, err)
	}
	query, args = builder().Delete(coursesTable).Where(entsql.EQ("id", id)).Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &ErrCourseNotFound{Ref: id}
	}
	return tx.Commit()
}

// scanCourse decodes a stored document. The document is schema checked and
// its config clamped into range, so hand-edited rows cannot feed invalid
// values to the pacing engine.
func scanCourse(row *sql.Row, ref string) (*course.Course, error) {
	var (
		id   string
		data string
	)
	if err := row.Scan(&id, &data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErrCourseNotFound{Ref: ref}
		}
		return nil, fmt.Errorf("query course %s: %w", ref, err)
	}

	if err := validateCourseDocument([]byte(data)); err != nil {
		return nil, &ErrCorruptCourse{ID: id, Err: err}
	}
	var c course.Course
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, &ErrCorruptCourse{ID: id, Err: err}
	}
	if c.Progress == nil {
		c.Progress = make(map[string]course.WatchState)
	}
	c.Config = c.Config.Normalize()
	return &c, nil
}
