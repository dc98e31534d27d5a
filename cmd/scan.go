package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/gamify"
	"github.com/abhisek/pacer/internal/render"
	"github.com/abhisek/pacer/internal/scanner"
	"github.com/abhisek/pacer/internal/store"
	"github.com/abhisek/pacer/internal/ui/theme"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a directory for videos and save it as a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		quiet, _ := cmd.Flags().GetBool("quiet")
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		prober := &scanner.FFProbe{Binary: d.cfg.FFProbe}
		return runScan(cmd.Context(), d, prober, args[0], scanOptions{Force: force, Quiet: quiet, Format: format})
	},
}

func init() {
	scanCmd.Flags().BoolP("force", "f", false, "Re-scan even if the course already exists")
	scanCmd.Flags().BoolP("quiet", "q", false, "Suppress output except errors")
	addFormatFlag(scanCmd)
}

type scanOptions struct {
	Force  bool
	Quiet  bool
	Format render.Format
}

func runScan(ctx context.Context, d *deps, prober scanner.Prober, path string, opts scanOptions) error {
	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	repo := d.store.CourseRepo()
	existing, err := repo.FindByPath(ctx, root)
	var nf *store.ErrCourseNotFound
	switch {
	case err == nil:
		if !opts.Force {
			fmt.Fprintf(d.out, "Course already exists: %s\nUse --force to re-scan\n", existing.ID)
			return nil
		}
	case errors.As(err, &nf):
		existing = nil
	default:
		return fmt.Errorf("look up course: %w", err)
	}

	sc := scanner.New(scanner.Options{
		Prober: prober,
		Logger: d.log,
		OnProgress: func(count int, name string) {
			if !opts.Quiet {
				d.log.Debug("found video", "count", count, "file", name)
			}
		},
	})
	res, err := sc.Scan(ctx, root)
	if err != nil {
		return err
	}

	report := &render.ScanReport{Result: res, New: existing == nil}
	c := existing
	if c == nil {
		c = course.New(scanner.CourseID(res.RootPath), res.RootPath)
		global, err := d.store.SettingsRepo().GlobalConfig(ctx)
		if err != nil {
			d.warn("global config unavailable, using defaults", err)
		} else {
			c.Config = global
		}
	} else {
		report.Changes = scanner.Diff(c.Videos, res.Videos)
	}
	c.ReplaceVideos(res.Videos, d.now())

	if err := repo.Save(ctx, c); err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	report.CourseID = c.ID
	report.Gaps = gamify.DetectGaps(c)

	if opts.Quiet {
		return nil
	}
	if err := render.Write(d.out, opts.Format, report); err != nil {
		return err
	}
	if opts.Format == render.FormatText && len(res.Videos) == 0 {
		fmt.Fprintln(d.out, theme.Hint.Render("No video files found."))
	}
	return nil
}
