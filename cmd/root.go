package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/config"
	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/render"
	"github.com/abhisek/pacer/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "pacer",
	Short:         "Pace your way through video courses",
	Long:          "pacer tracks progress through directories of course videos and plans study sessions that fit your time.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PACER_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides PACER_LOG_LEVEL)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(deadlineCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps bundles what a command needs to run.
type deps struct {
	cfg    config.Config
	log    *log.Logger
	store  *store.Store
	out    io.Writer
	now    func() time.Time
	closer func() error
}

func (d *deps) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer()
}

// loadSettings reads the environment config and applies the persistent
// flags on top of it.
func loadSettings(cmd *cobra.Command) (config.Config, *log.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			return config.Config{}, nil, err
		}
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "pacer",
		Level:  cfg.Level(),
	})
	return cfg, logger, nil
}

// openDeps loads settings and opens the store.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	logger.Debug("opening store", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &deps{
		cfg:    cfg,
		log:    logger,
		store:  st,
		out:    cmd.OutOrStdout(),
		now:    time.Now,
		closer: st.Close,
	}, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PACER_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveCourse finds a course by id, then by root path. With no reference
// the only stored course is used.
func (d *deps) resolveCourse(ctx context.Context, ref string) (*course.Course, error) {
	repo := d.store.CourseRepo()
	if ref == "" {
		list, err := repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}
		switch len(list) {
		case 0:
			return nil, errors.New("no courses found: run `pacer scan <path>` to add one")
		case 1:
			return repo.Load(ctx, list[0].ID)
		default:
			return nil, fmt.Errorf("%d courses found: pass a course id or path (see `pacer list`)", len(list))
		}
	}

	c, err := repo.Load(ctx, ref)
	var nf *store.ErrCourseNotFound
	if err == nil || !errors.As(err, &nf) {
		return c, err
	}
	abs, aerr := filepath.Abs(ref)
	if aerr != nil {
		return nil, err
	}
	return repo.FindByPath(ctx, abs)
}

// findVideo matches a video by id, then by file name, then by relative path.
func findVideo(c *course.Course, ref string) (course.VideoItem, error) {
	if v, ok := c.Video(ref); ok {
		return v, nil
	}
	for _, v := range c.Ordered() {
		if v.FileName == ref || v.RelativePath == ref {
			return v, nil
		}
	}
	return course.VideoItem{}, &course.ErrVideoNotFound{ID: ref}
}

// formatFlag reads and validates the --format flag of cmd.
func formatFlag(cmd *cobra.Command) (render.Format, error) {
	f, _ := cmd.Flags().GetString("format")
	return render.ParseFormat(f)
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", "text", "Output format: text, json, yaml or csv")
}

// warn reports a failure that does not abort the command.
func (d *deps) warn(msg string, err error) {
	d.log.Warn(msg, "err", err)
}

// openFile opens path for writing, or returns the command output for "-".
func openFile(d *deps, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return d.out, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
