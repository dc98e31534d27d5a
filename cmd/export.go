package cmd

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/calendar"
	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/render"
	"github.com/abhisek/pacer/internal/timeutil"
)

const formatICS = "ics"

var exportCmd = &cobra.Command{
	Use:   "export [course]",
	Short: "Export a study plan as a calendar event or a document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := exportOptions{}
		budget, _ := cmd.Flags().GetString("budget")
		if budget != "" {
			b, err := timeutil.ParseBudget(budget)
			if err != nil {
				return err
			}
			opts.Budget = b
		}
		opts.Date, _ = cmd.Flags().GetString("date")
		opts.Output, _ = cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		opts.Format = strings.ToLower(strings.TrimSpace(format))
		if opts.Format != formatICS {
			if _, err := render.ParseFormat(opts.Format); err != nil || opts.Format == string(render.FormatText) {
				return fmt.Errorf("unknown export format %q (expected ics, json, yaml or csv)", format)
			}
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runExport(cmd.Context(), d, argOr(args, 0), opts)
	},
}

func init() {
	exportCmd.Flags().String("budget", "", "Time budget of the plan (default: every remaining video)")
	exportCmd.Flags().String("date", "", "Start date of the session (YYYY-MM-DD, default now)")
	exportCmd.Flags().StringP("output", "o", "", "Output file, - for stdout (default study-plan-<date>.<format>)")
	exportCmd.Flags().String("format", formatICS, "Export format: ics, json, yaml or csv")
}

type exportOptions struct {
	Budget float64
	Date   string
	Output string
	Format string
}

func runExport(ctx context.Context, d *deps, ref string, opts exportOptions) error {
	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}
	now := d.now()

	start := now
	if opts.Date != "" {
		start, err = pacing.ParseDeadline(opts.Date, now.Location())
		if err != nil {
			return err
		}
	}

	// Without a budget every remaining video is exported.
	unbounded := opts.Budget == 0
	budget := opts.Budget
	if unbounded {
		budget = math.Inf(1)
	}
	report, err := buildPlan(c, pacing.PlanOptions{
		TimeBudget:      budget,
		StartFrom:       pacing.StartLast,
		IncludePractice: true,
	})
	if err != nil {
		return err
	}
	if unbounded {
		report.Budget = report.Plan.TotalTime
		report.Utilization = report.Plan.Utilization(report.Budget)
	}

	output := opts.Output
	if output == "" {
		output = fmt.Sprintf("study-plan-%s.%s", now.Format("2006-01-02"), opts.Format)
	}
	w, closeFn, err := openFile(d, output)
	if err != nil {
		return err
	}

	if opts.Format == formatICS {
		ics := calendar.Generate(calendar.Event{Plan: report.Plan, Start: start, CourseName: courseName(c)})
		_, err = io.WriteString(w, ics)
	} else {
		err = render.Write(w, render.Format(opts.Format), report)
	}
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if output != "-" {
		fmt.Fprintf(d.out, "✓ Exported %d videos (%s) to %s\n",
			len(report.Items), timeutil.FormatShort(report.Plan.TotalTime), output)
	}
	return nil
}

func courseName(c *course.Course) string {
	return filepath.Base(c.RootPath)
}
