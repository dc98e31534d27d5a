package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Metadata is what a Prober learns about a video file.
type Metadata struct {
	Duration float64 // seconds
	Size     int64
	Format   string
}

// Prober extracts metadata from a video file.
type Prober interface {
	Probe(ctx context.Context, path string) (Metadata, error)
}

// FFProbe probes files with the ffprobe binary.
type FFProbe struct {
	// Binary is the ffprobe executable. Defaults to "ffprobe".
	Binary string
}

type ffprobeOutput struct {
	Format *struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// Probe runs ffprobe and parses its JSON format section. Durations are
// rounded to whole seconds.
func (f *FFProbe) Probe(ctx context.Context, path string) (Metadata, error) {
	bin := f.Binary
	if bin == "" {
		bin = "ffprobe"
	}
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration,size,format_name",
		"-of", "json",
		path,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Metadata{}, fmt.Errorf("ffprobe: %w: %s", err, msg)
		}
		return Metadata{}, fmt.Errorf("ffprobe: %w", err)
	}
	return parseFFProbe(out)
}

func parseFFProbe(out []byte) (Metadata, error) {
	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return Metadata{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if parsed.Format == nil {
		return Metadata{}, fmt.Errorf("no format information found")
	}

	duration, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil || math.IsNaN(duration) || duration <= 0 {
		return Metadata{}, fmt.Errorf("invalid duration %q", parsed.Format.Duration)
	}
	size, _ := strconv.ParseInt(parsed.Format.Size, 10, 64)

	format := "unknown"
	if name, _, _ := strings.Cut(parsed.Format.FormatName, ","); name != "" {
		format = name
	}
	return Metadata{
		Duration: math.Round(duration),
		Size:     size,
		Format:   format,
	}, nil
}

// Estimate guesses metadata from the file size alone: one minute per MiB,
// never less than one minute.
func Estimate(size int64) Metadata {
	seconds := math.Round(float64(size) / (1024 * 1024) * 60)
	return Metadata{
		Duration: math.Max(seconds, 60),
		Size:     size,
		Format:   "unknown",
	}
}
