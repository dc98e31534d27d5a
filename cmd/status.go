package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/gamify"
	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/render"
)

var statusCmd = &cobra.Command{
	Use:   "status [course]",
	Short: "Show progress, streak and achievements",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runStatus(cmd.Context(), d, argOr(args, 0), format)
	},
}

func init() {
	addFormatFlag(statusCmd)
}

func argOr(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func runStatus(ctx context.Context, d *deps, ref string, format render.Format) error {
	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}
	report, err := buildStatus(ctx, d, c)
	if err != nil {
		return err
	}
	return render.Write(d.out, format, report)
}

func buildStatus(ctx context.Context, d *deps, c *course.Course) (*render.StatusReport, error) {
	now := d.now()
	progress, err := pacing.Aggregate(c, 0)
	if err != nil {
		return nil, fmt.Errorf("aggregate progress: %w", err)
	}

	var unwatched []course.VideoItem
	for _, v := range c.Ordered() {
		if !c.IsWatched(v.ID) {
			unwatched = append(unwatched, v)
		}
	}
	remaining, err := pacing.Totals(unwatched, c.Config)
	if err != nil {
		return nil, fmt.Errorf("remaining time: %w", err)
	}

	r := &render.StatusReport{
		CourseID:    c.ID,
		RootPath:    c.RootPath,
		Progress:    progress,
		Remaining:   remaining,
		Config:      c.Config,
		Gaps:        gamify.DetectGaps(c),
		ScannedAt:   c.ScannedAt,
		GeneratedAt: now,
	}
	if v, ok := pacing.ResolveCheckpoint(c); ok {
		r.Checkpoint = &v
	}
	if v, ok := c.LastWatched(); ok {
		r.LastWatched = &v
	}

	analytics := d.store.AnalyticsRepo()
	streak, err := analytics.Streak(ctx)
	if err != nil {
		d.warn("streak unavailable", err)
	}
	r.Streak = streak
	r.StreakAtRisk = streak.AtRisk(now)
	if totals, err := analytics.Totals(ctx, c.ID); err != nil {
		d.warn("study log unavailable", err)
	} else {
		r.Study = totals
	}

	r.Achievements = gamify.Achievements(progress, streak)
	r.Motivation = gamify.Motivation(progress.CompletionPercentage, streak.Current)
	return r, nil
}
