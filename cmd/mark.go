package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/pacing"
	"github.com/abhisek/pacer/internal/store"
	"github.com/abhisek/pacer/internal/ui/theme"
)

var markCmd = &cobra.Command{
	Use:   "mark [video]",
	Short: "Mark videos watched or unwatched",
	Long: `Mark a video by id, file name or relative path. Without --watched or
--unwatched the watched state is toggled. With --section or --all the
argument, when given, selects the course instead of a video.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := markOptions{}
		opts.Course, _ = cmd.Flags().GetString("course")
		watched, _ := cmd.Flags().GetBool("watched")
		unwatched, _ := cmd.Flags().GetBool("unwatched")
		opts.Notes, _ = cmd.Flags().GetString("notes")
		opts.Section, _ = cmd.Flags().GetString("section")
		opts.UpTo, _ = cmd.Flags().GetBool("up-to")
		opts.All, _ = cmd.Flags().GetBool("all")
		opts.Yes, _ = cmd.Flags().GetBool("yes")

		switch {
		case watched && unwatched:
			return errors.New("--watched and --unwatched are mutually exclusive")
		case watched:
			opts.State = markWatched
		case unwatched:
			opts.State = markUnwatched
		}

		if opts.Section != "" || opts.All {
			if opts.Course == "" {
				opts.Course = argOr(args, 0)
			}
		} else {
			if len(args) == 0 {
				return errors.New("a video id or file name is required")
			}
			opts.Video = args[0]
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runMark(cmd.Context(), d, opts)
	},
}

func init() {
	markCmd.Flags().String("course", "", "Course id or path (searched across courses when omitted)")
	markCmd.Flags().BoolP("watched", "w", false, "Mark as watched")
	markCmd.Flags().BoolP("unwatched", "u", false, "Mark as unwatched")
	markCmd.Flags().StringP("notes", "n", "", "Attach notes to the video")
	markCmd.Flags().StringP("section", "s", "", "Mark every video in a section")
	markCmd.Flags().Bool("up-to", false, "Also mark every video before the given one")
	markCmd.Flags().BoolP("all", "a", false, "Mark every video in the course")
	markCmd.Flags().BoolP("yes", "y", false, "Confirm --all")
}

type markState int

const (
	markToggle markState = iota
	markWatched
	markUnwatched
)

type markOptions struct {
	Course  string
	Video   string
	State   markState
	Notes   string
	Section string
	UpTo    bool
	All     bool
	Yes     bool
}

func runMark(ctx context.Context, d *deps, opts markOptions) error {
	if opts.All && !opts.Yes {
		return errors.New("marking every video needs confirmation: add --yes")
	}

	c, video, err := markTarget(ctx, d, opts)
	if err != nil {
		return err
	}

	before := watchedSet(c)
	now := d.now()
	watched := opts.State != markUnwatched
	var msg string

	switch {
	case opts.All:
		n := c.MarkAll(watched, now)
		msg = fmt.Sprintf("Marked %d videos as %s", n, stateWord(watched))
	case opts.Section != "":
		n, err := c.MarkSection(opts.Section, watched, now)
		if err != nil {
			return err
		}
		msg = fmt.Sprintf("Marked %d videos in %q as %s", n, opts.Section, stateWord(watched))
	case opts.UpTo:
		n, err := c.MarkUpTo(video.ID, watched, now)
		if err != nil {
			return err
		}
		msg = fmt.Sprintf("Marked %d videos up to %q as %s", n, video.FileName, stateWord(watched))
	default:
		switch opts.State {
		case markWatched:
			err = c.MarkWatched(video.ID, opts.Notes, now)
		case markUnwatched:
			err = c.MarkUnwatched(video.ID)
		default:
			watched, err = c.ToggleWatched(video.ID, now)
		}
		if err != nil {
			return err
		}
		if opts.Notes != "" && opts.State != markWatched {
			if err := c.SetNotes(video.ID, opts.Notes); err != nil {
				return err
			}
		}
		msg = fmt.Sprintf("Marked %q as %s", video.FileName, stateWord(watched))
	}

	if err := d.store.CourseRepo().Save(ctx, c); err != nil {
		return fmt.Errorf("save course: %w", err)
	}

	style := theme.Watched
	if !watched {
		style = theme.Warn
	}
	fmt.Fprintln(d.out, style.Render("✓ "+msg))

	recordStudy(ctx, d, c, newlyWatched(c, before))
	return nil
}

// markTarget loads the course and, for single video marks, the video.
func markTarget(ctx context.Context, d *deps, opts markOptions) (*course.Course, course.VideoItem, error) {
	if opts.Video == "" {
		c, err := d.resolveCourse(ctx, opts.Course)
		return c, course.VideoItem{}, err
	}
	return locateVideo(ctx, d, opts.Course, opts.Video)
}

// locateVideo finds a video in the referenced course, or in every stored
// course when courseRef is empty.
func locateVideo(ctx context.Context, d *deps, courseRef, videoRef string) (*course.Course, course.VideoItem, error) {
	if courseRef != "" {
		c, err := d.resolveCourse(ctx, courseRef)
		if err != nil {
			return nil, course.VideoItem{}, err
		}
		v, err := findVideo(c, videoRef)
		return c, v, err
	}

	list, err := d.store.CourseRepo().List(ctx)
	if err != nil {
		return nil, course.VideoItem{}, fmt.Errorf("list courses: %w", err)
	}
	for _, s := range list {
		c, err := d.store.CourseRepo().Load(ctx, s.ID)
		if err != nil {
			var corrupt *store.ErrCorruptCourse
			if errors.As(err, &corrupt) {
				d.warn("skipping unreadable course", err)
				continue
			}
			return nil, course.VideoItem{}, err
		}
		if v, err := findVideo(c, videoRef); err == nil {
			return c, v, nil
		}
	}
	return nil, course.VideoItem{}, &course.ErrVideoNotFound{ID: videoRef}
}

func watchedSet(c *course.Course) map[string]bool {
	out := make(map[string]bool)
	for id, ws := range c.Progress {
		if ws.Watched {
			out[id] = true
		}
	}
	return out
}

func newlyWatched(c *course.Course, before map[string]bool) []course.VideoItem {
	var out []course.VideoItem
	for _, v := range c.Ordered() {
		if c.IsWatched(v.ID) && !before[v.ID] {
			out = append(out, v)
		}
	}
	return out
}

// recordStudy extends the streak and logs a study session for videos that
// just became watched. Failures are logged, not returned: the marks are
// already saved.
func recordStudy(ctx context.Context, d *deps, c *course.Course, videos []course.VideoItem) {
	if len(videos) == 0 {
		return
	}
	now := d.now()
	analytics := d.store.AnalyticsRepo()

	streak, record, err := analytics.RecordStudy(ctx, now)
	if err != nil {
		d.warn("could not update streak", err)
	} else if record && streak.Longest > 1 {
		fmt.Fprintln(d.out, theme.Current.Render(fmt.Sprintf("🔥 New longest streak: %d days!", streak.Longest)))
	}

	totals, err := pacing.Totals(videos, c.Config)
	if err != nil {
		d.warn("could not cost watched videos", err)
		return
	}
	session := &store.StudySession{
		CourseID:      c.ID,
		StartedAt:     now,
		Duration:      totals.VideoTime,
		VideosWatched: len(videos),
	}
	if err := analytics.AppendSession(ctx, session); err != nil {
		d.warn("could not log study session", err)
	}
}

func stateWord(watched bool) string {
	if watched {
		return "watched"
	}
	return "unwatched"
}
