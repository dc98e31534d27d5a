package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/calendar"
	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/render"
	"github.com/abhisek/pacer/internal/timeutil"
)

var planCmd = &cobra.Command{
	Use:   "plan <budget> [course]",
	Short: "Plan a study session that fits a time budget (e.g. 3h, 90m)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		budget, err := timeutil.ParseBudget(args[0])
		if err != nil {
			return err
		}
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		section, _ := cmd.Flags().GetString("section")
		noPractice, _ := cmd.Flags().GetBool("no-practice")
		icsPath, _ := cmd.Flags().GetString("ics")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		return runPlan(cmd.Context(), d, argOr(args, 1), planOptions{
			Options: pacing.PlanOptions{
				TimeBudget:      budget,
				StartFrom:       from,
				Section:         section,
				IncludePractice: !noPractice,
			},
			Format:  format,
			ICSPath: icsPath,
		})
	},
}

func init() {
	planCmd.Flags().String("from", pacing.StartLast, "Start from: last, beginning, checkpoint, or a video id")
	planCmd.Flags().String("section", "", "Limit the plan to one section")
	planCmd.Flags().Bool("no-practice", false, "Do not charge practice time against the budget")
	planCmd.Flags().String("ics", "", "Also write the plan as an iCalendar event to this file")
	addFormatFlag(planCmd)
}

type planOptions struct {
	Options pacing.PlanOptions
	Format  render.Format
	ICSPath string
}

func runPlan(ctx context.Context, d *deps, ref string, opts planOptions) error {
	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}
	report, err := buildPlan(c, opts.Options)
	if err != nil {
		return err
	}
	if err := render.Write(d.out, opts.Format, report); err != nil {
		return err
	}
	if opts.ICSPath == "" {
		return nil
	}
	ics := calendar.Generate(calendar.Event{Plan: report.Plan, Start: d.now(), CourseName: courseName(c)})
	if err := os.WriteFile(opts.ICSPath, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	d.log.Info("calendar written", "path", opts.ICSPath)
	return nil
}

func buildPlan(c *course.Course, opts pacing.PlanOptions) (*render.PlanReport, error) {
	plan, err := pacing.Plan(c, opts)
	if err != nil {
		return nil, err
	}
	costs, err := pacing.Costs(plan.Videos, c.Config)
	if err != nil {
		return nil, err
	}
	return render.NewPlanReport(c.ID, plan, costs, opts.TimeBudget, opts.IncludePractice), nil
}
