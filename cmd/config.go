package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/render"
)

var configCmd = &cobra.Command{
	Use:   "config [course]",
	Short: "Show or change playback speed and practice multipliers",
	Long: `Without flags the current settings are shown. --multiplier takes either a
plain value for the default practice multiplier or section:value for one
section, and may be repeated. --global changes the defaults applied to newly
scanned courses.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		opts := configOptions{Format: format}
		opts.Global, _ = cmd.Flags().GetBool("global")
		opts.Reset, _ = cmd.Flags().GetBool("reset")
		if cmd.Flags().Changed("speed") {
			speed, _ := cmd.Flags().GetFloat64("speed")
			opts.Update.PlaybackSpeed = &speed
		}
		mults, _ := cmd.Flags().GetStringArray("multiplier")
		for _, m := range mults {
			if err := parseMultiplier(m, &opts.Update); err != nil {
				return err
			}
		}
		if opts.Global && len(args) > 0 {
			return fmt.Errorf("--global does not take a course")
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runConfig(cmd.Context(), d, argOr(args, 0), opts)
	},
}

func init() {
	configCmd.Flags().Float64("speed", 0, "Playback speed (0.5 to 3.0)")
	configCmd.Flags().StringArray("multiplier", nil, "Practice multiplier: value, or section:value")
	configCmd.Flags().Bool("global", false, "Change the defaults for new courses")
	configCmd.Flags().Bool("reset", false, "Reset to defaults")
	addFormatFlag(configCmd)
}

type configOptions struct {
	Update course.ConfigUpdate
	Global bool
	Reset  bool
	Format render.Format
}

func (o configOptions) mutates() bool {
	return o.Reset || o.updates()
}

func (o configOptions) updates() bool {
	u := o.Update
	return u.PlaybackSpeed != nil || u.DefaultPracticeMultiplier != nil || len(u.SectionMultipliers) > 0
}

// parseMultiplier reads "1.5" or "section:1.5" into u. The section name is
// everything before the last colon.
func parseMultiplier(s string, u *course.ConfigUpdate) error {
	section, value := "", s
	if i := strings.LastIndex(s, ":"); i >= 0 {
		section, value = strings.TrimSpace(s[:i]), s[i+1:]
		if section == "" {
			return fmt.Errorf("invalid multiplier %q: empty section", s)
		}
	}
	m, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("invalid multiplier %q: expected a number or section:number", s)
	}
	if section == "" {
		u.DefaultPracticeMultiplier = &m
		return nil
	}
	if u.SectionMultipliers == nil {
		u.SectionMultipliers = make(map[string]float64)
	}
	u.SectionMultipliers[section] = m
	return nil
}

func runConfig(ctx context.Context, d *deps, ref string, opts configOptions) error {
	if opts.Global {
		return runGlobalConfig(ctx, d, opts)
	}

	c, err := d.resolveCourse(ctx, ref)
	if err != nil {
		return err
	}
	if opts.mutates() {
		if opts.Reset {
			c.Config = course.DefaultConfig()
		}
		if err := c.UpdateConfig(opts.Update); err != nil {
			return err
		}
		if err := d.store.CourseRepo().Save(ctx, c); err != nil {
			return fmt.Errorf("save course: %w", err)
		}
	}
	return render.Write(d.out, opts.Format, &render.ConfigReport{Scope: c.ID, Config: c.Config})
}

func runGlobalConfig(ctx context.Context, d *deps, opts configOptions) error {
	settings := d.store.SettingsRepo()
	if opts.Reset {
		if err := settings.ResetGlobalConfig(ctx); err != nil {
			return fmt.Errorf("reset global config: %w", err)
		}
	}
	cfg, err := settings.GlobalConfig(ctx)
	if err != nil {
		return fmt.Errorf("load global config: %w", err)
	}
	if opts.updates() {
		cfg, err = opts.Update.Apply(cfg)
		if err != nil {
			return err
		}
		if err := settings.SaveGlobalConfig(ctx, cfg); err != nil {
			return fmt.Errorf("save global config: %w", err)
		}
	}
	return render.Write(d.out, opts.Format, &render.ConfigReport{Scope: "global", Config: cfg})
}
