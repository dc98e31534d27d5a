package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/analyzer"
	"github.com/abhisek/pacer/internal/render"
	"github.com/abhisek/pacer/internal/ui/theme"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [course]",
	Short: "Break a course down by section and video format",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		opts := analyzeOptions{Format: format}
		opts.Filter.Section, _ = cmd.Flags().GetString("section")
		opts.Filter.Format, _ = cmd.Flags().GetString("video-format")
		opts.Output, _ = cmd.Flags().GetString("output")

		watched, _ := cmd.Flags().GetBool("watched")
		unwatched, _ := cmd.Flags().GetBool("unwatched")
		switch {
		case watched && unwatched:
			return errors.New("--watched and --unwatched are mutually exclusive")
		case watched, unwatched:
			opts.Filter.Watched = &watched
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runAnalyze(cmd.Context(), d, argOr(args, 0), opts)
	},
}

func init() {
	analyzeCmd.Flags().StringP("section", "s", "", "Only videos of this section")
	analyzeCmd.Flags().BoolP("watched", "w", false, "Only watched videos")
	analyzeCmd.Flags().BoolP("unwatched", "u", false, "Only unwatched videos")
	analyzeCmd.Flags().String("video-format", "", "Only videos of this container format (e.g. mov, matroska)")
	analyzeCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	addFormatFlag(analyzeCmd)
}

type analyzeOptions struct {
	Filter analyzer.Filter
	Format render.Format
	Output string
}

func runAnalyze(ctx context.Context, d *deps, ref string, opts analyzeOptions) error {
	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}
	a, err := analyzer.Analyze(c, opts.Filter)
	if err != nil {
		return err
	}
	report := &render.AnalysisReport{CourseID: c.ID, RootPath: c.RootPath, Filter: opts.Filter, Analysis: a}

	w, closeFn, err := openFile(d, opts.Output)
	if err != nil {
		return err
	}
	err = render.Write(w, opts.Format, report)
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	if opts.Output != "" && opts.Output != "-" {
		fmt.Fprintln(d.out, theme.Watched.Render("✓ Report saved to "+opts.Output))
	}
	return nil
}
