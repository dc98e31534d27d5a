package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/render"
)

var deadlineCmd = &cobra.Command{
	Use:   "deadline [course]",
	Short: "Work out the daily study needed for a deadline, or suggest one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		date, _ := cmd.Flags().GetString("date")
		suggest, _ := cmd.Flags().GetBool("suggest")
		hours, _ := cmd.Flags().GetFloat64("hours-per-day")
		if date == "" && !suggest {
			return errors.New("pass --date YYYY-MM-DD or --suggest")
		}
		if date != "" && suggest {
			return errors.New("--date and --suggest are mutually exclusive")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		if !cmd.Flags().Changed("hours-per-day") {
			hours = d.cfg.HoursPerDay
		}
		return runDeadline(cmd.Context(), d, argOr(args, 0), deadlineOptions{
			Date: date, Suggest: suggest, HoursPerDay: hours, Format: format,
		})
	},
}

func init() {
	deadlineCmd.Flags().String("date", "", "Target deadline (YYYY-MM-DD)")
	deadlineCmd.Flags().Bool("suggest", false, "Suggest a deadline for a daily study amount")
	deadlineCmd.Flags().Float64("hours-per-day", 2, "Daily study hours for --suggest (default from PACER_HOURS_PER_DAY)")
	addFormatFlag(deadlineCmd)
}

type deadlineOptions struct {
	Date        string
	Suggest     bool
	HoursPerDay float64
	Format      render.Format
}

func runDeadline(ctx context.Context, d *deps, ref string, opts deadlineOptions) error {
	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}
	now := d.now()
	report := &render.DeadlineReport{CourseID: c.ID, Now: now}

	if opts.Suggest {
		suggested, err := pacing.SuggestDeadline(c, opts.HoursPerDay, now)
		if err != nil {
			return err
		}
		report.Suggested = &suggested
		report.HoursPerDay = opts.HoursPerDay
		if suggested.After(now) {
			calc, err := pacing.CalculateRequirements(c, suggested, now)
			if err != nil {
				return err
			}
			report.Calculation = &calc
		}
	} else {
		calc, err := pacing.RequirementsFor(c, opts.Date, now)
		if err != nil {
			return err
		}
		report.Calculation = &calc
	}
	return render.Write(d.out, opts.Format, report)
}
