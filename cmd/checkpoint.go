package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/ui/theme"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint [course]",
	Short: "Show or move the resume checkpoint",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, _ := cmd.Flags().GetString("set")
		last, _ := cmd.Flags().GetBool("last")
		reset, _ := cmd.Flags().GetBool("reset")

		n := 0
		for _, on := range []bool{set != "", last, reset} {
			if on {
				n++
			}
		}
		if n > 1 {
			return errors.New("use only one of --set, --last and --reset")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runCheckpoint(cmd.Context(), d, argOr(args, 0), checkpointOptions{Set: set, Last: last, Reset: reset})
	},
}

func init() {
	checkpointCmd.Flags().String("set", "", "Move the checkpoint to a video id or file name")
	checkpointCmd.Flags().Bool("last", false, "Move the checkpoint to the most recently watched video")
	checkpointCmd.Flags().Bool("reset", false, "Move the checkpoint back to the first video")
}

type checkpointOptions struct {
	Set   string
	Last  bool
	Reset bool
}

func runCheckpoint(ctx context.Context, d *deps, ref string, opts checkpointOptions) error {
	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}

	var v course.VideoItem
	switch {
	case opts.Set != "":
		v, err = findVideo(c, opts.Set)
		if err == nil {
			err = c.SetCheckpoint(v.ID)
		}
	case opts.Last:
		v, err = c.CheckpointToLastWatched()
	case opts.Reset:
		v, err = c.ResetCheckpoint()
	default:
		cp, ok := pacing.ResolveCheckpoint(c)
		if !ok {
			fmt.Fprintln(d.out, theme.Hint.Render("No videos in this course."))
			return nil
		}
		fmt.Fprintf(d.out, "%s %s %s\n", theme.Label.Render("Checkpoint:"), theme.Current.Render(cp.FileName), theme.Label.Render(cp.ID))
		return nil
	}
	if err != nil {
		return err
	}

	if err := d.store.CourseRepo().Save(ctx, c); err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	fmt.Fprintf(d.out, "%s %s\n", theme.Watched.Render("✓ Checkpoint set to"), theme.Current.Render(v.FileName))
	return nil
}
