package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/render"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scanned courses",
	Args:  cobra.NoArgs,
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
		return runList(cmd.Context(), d, format)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <course>",
	Short: "Forget a course and its study log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runRemove(cmd.Context(), d, args[0])
	},
}

func init() {
	addFormatFlag(listCmd)
}

func runList(ctx context.Context, d *deps, format render.Format) error {
	courses, err := d.store.CourseRepo().List(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}
	return render.Write(d.out, format, &render.CourseList{Courses: courses, Now: d.now()})
}

func runRemove(ctx context.Context, d *deps, ref string) error {
	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}
	if err := d.store.CourseRepo().Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("remove course: %w", err)
	}
	fmt.Fprintf(d.out, "Removed %s (%s)\n", c.RootPath, c.ID)
	return nil
}
