package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	coursesTable       = "courses"
	settingsTable      = "settings"
	streakTable        = "streak"
	studySessionsTable = "study_sessions"
)

var (
	// CoursesColumns holds the columns for the "courses" table. The course
	// itself is the JSON document in "data"; the rest feeds listings.
	CoursesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "root_path", Type: field.TypeString, Unique: true},
		{Name: "data", Type: field.TypeString, Size: 2147483647},
		{Name: "video_count", Type: field.TypeInt},
		{Name: "watched_count", Type: field.TypeInt},
		{Name: "scanned_at", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeString},
	}
	// CoursesTable holds the schema information for the "courses" table.
	CoursesTable = &schema.Table{
		Name:       coursesTable,
		Columns:    CoursesColumns,
		PrimaryKey: []*schema.Column{CoursesColumns[0]},
	}

	// SettingsColumns holds the columns for the "settings" table.
	SettingsColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
	}
	// SettingsTable holds the schema information for the "settings" table.
	SettingsTable = &schema.Table{
		Name:       settingsTable,
		Columns:    SettingsColumns,
		PrimaryKey: []*schema.Column{SettingsColumns[0]},
	}

	// StreakColumns holds the columns for the single row "streak" table.
	StreakColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "current", Type: field.TypeInt},
		{Name: "longest", Type: field.TypeInt},
		{Name: "last_study_date", Type: field.TypeString},
	}
	// StreakTable holds the schema information for the "streak" table.
	StreakTable = &schema.Table{
		Name:       streakTable,
		Columns:    StreakColumns,
		PrimaryKey: []*schema.Column{StreakColumns[0]},
	}

	// StudySessionsColumns holds the columns for the "study_sessions" table.
	StudySessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "started_at", Type: field.TypeString},
		{Name: "duration_seconds", Type: field.TypeFloat64},
		{Name: "videos_watched", Type: field.TypeInt},
		{Name: "course_id", Type: field.TypeString},
	}
	// StudySessionsTable holds the schema information for the "study_sessions" table.
	StudySessionsTable = &schema.Table{
		Name:       studySessionsTable,
		Columns:    StudySessionsColumns,
		PrimaryKey: []*schema.Column{StudySessionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "study_sessions_courses_sessions",
				Columns:    []*schema.Column{StudySessionsColumns[4]},
				RefColumns: []*schema.Column{CoursesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "studysession_course_id_started_at",
				Unique:  false,
				Columns: []*schema.Column{StudySessionsColumns[4], StudySessionsColumns[1]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CoursesTable,
		SettingsTable,
		StreakTable,
		StudySessionsTable,
	}
)

func init() {
	StudySessionsTable.ForeignKeys[0].RefTable = CoursesTable
}

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("ent/migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}

// builder starts a query in the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
