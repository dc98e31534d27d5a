package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pacer/internal/course"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleCourse(id, root string) *course.Course {
	c := course.New(id, root)
	c.ScannedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c.Videos = []course.VideoItem{
		{ID: "v1", Path: root + "/01/a.mp4", RelativePath: "01/a.mp4", FileName: "a.mp4", Duration: 600, Size: 10, Format: "mov", Section: "01", Order: 0},
		{ID: "v2", Path: root + "/b.mp4", RelativePath: "b.mp4", FileName: "b.mp4", Duration: 900, Size: 20, Format: "mov", Order: 1},
	}
	return c
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked with a file-based DB below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "pacer.db"))
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestSchemaCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"courses", "settings", "streak", "study_sessions"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSchemaIndexesSessionsByCourse(t *testing.T) {
	s := openTestStore(t)
	var table string
	err := s.DB().QueryRow(
		"SELECT tbl_name FROM sqlite_master WHERE type='index' AND name=?", "studysession_course_id_started_at",
	).Scan(&table)
	require.NoError(t, err)
	assert.Equal(t, "study_sessions", table)
}

func TestSessionsCascadeWithCourse(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CourseRepo().Save(ctx, sampleCourse("c1", "/courses/go")))
	require.NoError(t, s.AnalyticsRepo().AppendSession(ctx, &StudySession{CourseID: "c1", Duration: 60}))

	_, err := s.DB().ExecContext(ctx, "DELETE FROM courses WHERE id = ?", "c1")
	require.NoError(t, err)

	var n int
	require.NoError(t, s.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM study_sessions").Scan(&n))
	assert.Zero(t, n)
}

func TestSessionForUnknownCourseRejected(t *testing.T) {
	s := openTestStore(t)
	err := s.AnalyticsRepo().AppendSession(context.Background(), &StudySession{CourseID: "missing", Duration: 60})
	assert.Error(t, err)
}

func TestCourseSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.CourseRepo()
	ctx := context.Background()

	c := sampleCourse("c1", "/courses/go")
	watchedAt := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, c.MarkWatched("v1", "nice", watchedAt))
	c.Config.SectionMultipliers["01"] = 2.5
	require.NoError(t, repo.Save(ctx, c))

	got, err := repo.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "/courses/go", got.RootPath)
	assert.Len(t, got.Videos, 2)
	assert.Equal(t, "01", got.Videos[0].Section)
	assert.True(t, got.IsWatched("v1"))
	assert.Equal(t, "nice", got.Progress["v1"].Notes)
	require.NotNil(t, got.Progress["v1"].WatchedAt)
	assert.True(t, got.Progress["v1"].WatchedAt.Equal(watchedAt))
	assert.Equal(t, "v1", got.Checkpoint)
	assert.Equal(t, 2.5, got.Config.Multiplier("01"))
	assert.True(t, got.ScannedAt.Equal(c.ScannedAt))
}

func TestCourseSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.CourseRepo()
	ctx := context.Background()

	c := sampleCourse("c1", "/courses/go")
	require.NoError(t, repo.Save(ctx, c))
	c.MarkAll(true, time.Now())
	require.NoError(t, repo.Save(ctx, c))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].VideoCount)
	assert.Equal(t, 2, list[0].WatchedCount)
}

func TestCourseFindByPath(t *testing.T) {
	s := openTestStore(t)
	repo := s.CourseRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCourse("c1", "/courses/go")))

	got, err := repo.FindByPath(ctx, "/courses/go")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)

	_, err = repo.FindByPath(ctx, "/courses/rust")
	var nf *ErrCourseNotFound
	assert.True(t, errors.As(err, &nf))
}

func TestCourseLoadMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.CourseRepo().Load(context.Background(), "nope")

	var nf *ErrCourseNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.Ref)
}

func TestCourseLoadClampsConfig(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CourseRepo().Save(ctx, sampleCourse("c1", "/courses/go")))

	_, err := s.DB().Exec(`UPDATE courses SET data = json_set(data,
		'$.config.playbackSpeed', 9,
		'$.config.defaultPracticeMultiplier', -4) WHERE id = 'c1'`)
	require.NoError(t, err)

	got, err := s.CourseRepo().Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, course.MaxPlaybackSpeed, got.Config.PlaybackSpeed)
	assert.Equal(t, course.MinMultiplier, got.Config.DefaultPracticeMultiplier)
}

func TestCourseLoadRejectsCorruptDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CourseRepo().Save(ctx, sampleCourse("c1", "/courses/go")))

	_, err := s.DB().Exec(`UPDATE courses SET data = json_set(data, '$.videos[0].duration', 'long') WHERE id = 'c1'`)
	require.NoError(t, err)

	_, err = s.CourseRepo().Load(ctx, "c1")
	var corrupt *ErrCorruptCourse
	require.True(t, errors.As(err, &corrupt), "got %v", err)
	assert.Equal(t, "c1", corrupt.ID)
}

func TestCourseDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.CourseRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleCourse("c1", "/courses/go")))
	require.NoError(t, s.AnalyticsRepo().AppendSession(ctx, &StudySession{CourseID: "c1", Duration: 60, VideosWatched: 1}))

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err := repo.Load(ctx, "c1")
	var nf *ErrCourseNotFound
	assert.True(t, errors.As(err, &nf))

	sessions, err := s.AnalyticsRepo().Sessions(ctx, "c1", 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	err = repo.Delete(ctx, "c1")
	assert.True(t, errors.As(err, &nf))
}

func TestGlobalConfig(t *testing.T) {
	s := openTestStore(t)
	repo := s.SettingsRepo()
	ctx := context.Background()

	cfg, err := repo.GlobalConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.PlaybackSpeed)

	cfg.PlaybackSpeed = 2
	cfg.SectionMultipliers = map[string]float64{"labs": 3}
	require.NoError(t, repo.SaveGlobalConfig(ctx, cfg))

	got, err := repo.GlobalConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.PlaybackSpeed)
	assert.Equal(t, 3.0, got.Multiplier("labs"))

	bad := got
	bad.PlaybackSpeed = 7
	var cfgErr *course.ErrConfiguration
	assert.True(t, errors.As(repo.SaveGlobalConfig(ctx, bad), &cfgErr))

	require.NoError(t, repo.ResetGlobalConfig(ctx))
	got, err = repo.GlobalConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.PlaybackSpeed)
}

func TestRecordStudy(t *testing.T) {
	s := openTestStore(t)
	repo := s.AnalyticsRepo()
	ctx := context.Background()

	streak, err := repo.Streak(ctx)
	require.NoError(t, err)
	assert.Zero(t, streak.Current)

	d1 := time.Date(2026, 3, 1, 20, 0, 0, 0, time.Local)
	streak, record, err := repo.RecordStudy(ctx, d1)
	require.NoError(t, err)
	assert.True(t, record)
	assert.Equal(t, 1, streak.Current)

	streak, record, err = repo.RecordStudy(ctx, d1.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, record)
	assert.Equal(t, 1, streak.Current)

	streak, _, err = repo.RecordStudy(ctx, d1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, streak.Current)

	stored, err := repo.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, streak, stored)
}

func TestStudySessions(t *testing.T) {
	s := openTestStore(t)
	repo := s.AnalyticsRepo()
	ctx := context.Background()
	require.NoError(t, s.CourseRepo().Save(ctx, sampleCourse("c1", "/courses/go")))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		sess := &StudySession{
			CourseID:      "c1",
			StartedAt:     base.Add(time.Duration(i) * time.Hour),
			Duration:      float64(600 * (i + 1)),
			VideosWatched: i + 1,
		}
		require.NoError(t, repo.AppendSession(ctx, sess))
		assert.NotEmpty(t, sess.ID)
	}

	all, err := repo.Sessions(ctx, "c1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].StartedAt.Equal(base.Add(2*time.Hour)), "newest first")

	latest, err := repo.Sessions(ctx, "c1", 1)
	require.NoError(t, err)
	assert.Len(t, latest, 1)

	totals, err := repo.Totals(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, StudyTotals{Sessions: 3, Duration: 3600, VideosWatched: 6}, totals)

	empty, err := repo.Totals(ctx, "other")
	require.NoError(t, err)
	assert.Zero(t, empty.Sessions)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PACER_DB", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "custom"))

	t.Setenv("PACER_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pacer", "pacer.db"), p)
}
