package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/pacer/internal/ui/theme"
)

var launchCmd = &cobra.Command{
	Use:   "launch <video>",
	Short: "Open a video in the system's default player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		courseRef, _ := cmd.Flags().GetString("course")
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		return runLaunch(cmd.Context(), d, systemOpener{goos: runtime.GOOS}, courseRef, args[0])
	},
}

func init() {
	launchCmd.Flags().String("course", "", "Course id or path (default: search every course)")
}

// opener hands a file to an external application.
type opener interface {
	Open(ctx context.Context, path string) error
}

// systemOpener uses the platform's "open with default application" command.
type systemOpener struct {
	goos string
}

// command returns the program and arguments that open path on goos.
func (o systemOpener) command(path string) (string, []string, error) {
	switch o.goos {
	case "windows":
		// start is a cmd builtin; its first quoted argument is the window title.
		return "cmd", []string{"/c", "start", "", path}, nil
	case "darwin":
		return "open", []string{path}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

func (o systemOpener) Open(ctx context.Context, path string) error {
	name, args, err := o.command(path)
	if err != nil {
		return err
	}
	var stderr bytes.Buffer
	c := exec.CommandContext(ctx, name, args...)
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("failed to launch video: %w: %s", err, msg)
		}
		return fmt.Errorf("failed to launch video: %w", err)
	}
	return nil
}

func runLaunch(ctx context.Context, d *deps, o opener, courseRef, videoRef string) error {
	_, v, err := locateVideo(ctx, d, courseRef, videoRef)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, theme.Heading.Render("🎬 Launching: "+v.FileName+"..."))
	if err := o.Open(ctx, v.Path); err != nil {
		return err
	}
	fmt.Fprintln(d.out, theme.Watched.Render("✓ Video launched"))
	return nil
}
