package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/pacer/internal/course"
)

const globalConfigKey = "global_config"

type settingsRepo struct {
	db *sql.DB
}

func (r *settingsRepo) GlobalConfig(ctx context.Context) (course.Config, error) {
	var value string
	query, args := builder().Select("value").
		From(entsql.Table(settingsTable)).
		Where(entsql.EQ("key", globalConfigKey)).
		Query()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return course.DefaultGlobalConfig(), nil
	}
	if err != nil {
		return course.Config{}, fmt.Errorf("query global config: %w", err)
	}

	cfg := course.DefaultGlobalConfig()
	if err := json.Unmarshal([]byte(value), &cfg); err != nil {
		return course.Config{}, fmt.Errorf("decode global config: %w", err)
	}
	return cfg.Normalize(), nil
}

func (r *settingsRepo) SaveGlobalConfig(ctx context.Context, cfg course.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal global config: %w", err)
	}
	query, args := builder().Insert(settingsTable).
		Columns("key", "value").
		Values(globalConfigKey, string(data)).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save global config: %w", err)
	}
	return nil
}

func (r *settingsRepo) ResetGlobalConfig(ctx context.Context) error {
	query, args := builder().Delete(settingsTable).Where(entsql.EQ("key", globalConfigKey)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset global config: %w", err)
	}
	return nil
}
