package scanner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/pacer/internal/course"
)

// VideoExtensions are the file extensions treated as videos, lower case.
var VideoExtensions = []string{".mp4", ".mkv", ".avi", ".mov", ".webm", ".flv", ".wmv", ".m4v"}

// IsVideo reports whether the file name has a video extension.
func IsVideo(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, v := range VideoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// FileError records a file or directory that could not be processed.
type FileError struct {
	Path string `json:"file"`
	Err  string `json:"error"`
}

// Result is the outcome of a scan.
type Result struct {
	RootPath      string             `json:"rootPath"`
	Videos        []course.VideoItem `json:"videos"`
	TotalDuration float64            `json:"totalDuration"`
	TotalSize     int64              `json:"totalSize"`
	Sections      []string           `json:"sections"`
	Errors        []FileError        `json:"errors,omitempty"`
}

// Options configures a Scanner.
type Options struct {
	// Prober extracts duration and container metadata. Defaults to ffprobe
	// on PATH.
	Prober Prober

	// Logger receives warnings about fallbacks and unreadable files.
	Logger *log.Logger

	// OnProgress is called after each video is added with the running count.
	OnProgress func(count int, name string)
}

// Scanner walks a course directory and builds its video list.
type Scanner struct {
	prober     Prober
	logger     *log.Logger
	onProgress func(int, string)
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	s := &Scanner{
		prober:     opts.Prober,
		logger:     opts.Logger,
		onProgress: opts.OnProgress,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.prober == nil {
		s.prober = &FFProbe{}
	}
	return s
}

// Scan walks root recursively. Entries of each directory are visited in
// natural order and a subdirectory is descended into at its sorted position,
// so order numbers follow a depth-first natural traversal. Per-file failures
// are collected in Result.Errors; only an unusable root is an error.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", abs)
	}

	w := &walk{Scanner: s, root: abs, res: &Result{RootPath: abs, Videos: []course.VideoItem{}}}
	if err := w.dir(ctx, abs); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, v := range w.res.Videos {
		w.res.TotalDuration += v.Duration
		w.res.TotalSize += v.Size
		if v.Section != "" && !seen[v.Section] {
			seen[v.Section] = true
			w.res.Sections = append(w.res.Sections, v.Section)
		}
	}
	course.SortNatural(w.res.Sections)
	return w.res, nil
}

type walk struct {
	*Scanner
	root  string
	res   *Result
	order int
}

func (w *walk) dir(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.fail(dir, fmt.Errorf("read directory: %w", err))
		return nil
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return course.CompareNatural(entries[i].Name(), entries[j].Name()) < 0
	})

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		full := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			if err := w.dir(ctx, full); err != nil {
				return err
			}
		case e.Type().IsRegular() && IsVideo(e.Name()):
			v, err := w.video(ctx, full, e.Name())
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.fail(full, err)
				continue
			}
			w.res.Videos = append(w.res.Videos, v)
			if w.onProgress != nil {
				w.onProgress(len(w.res.Videos), e.Name())
			}
		}
	}
	return nil
}

func (w *walk) video(ctx context.Context, full, name string) (course.VideoItem, error) {
	info, err := os.Stat(full)
	if err != nil {
		return course.VideoItem{}, fmt.Errorf("stat: %w", err)
	}
	rel, err := filepath.Rel(w.root, full)
	if err != nil {
		return course.VideoItem{}, err
	}
	rel = filepath.ToSlash(rel)

	meta, err := w.prober.Probe(ctx, full)
	if err != nil {
		if ctx.Err() != nil {
			return course.VideoItem{}, ctx.Err()
		}
		w.logger.Warn("could not extract metadata, estimating from size", "file", full, "err", err)
		meta = Estimate(info.Size())
	}
	if meta.Size == 0 {
		meta.Size = info.Size()
	}

	v := course.VideoItem{
		ID:           VideoID(rel),
		Path:         full,
		RelativePath: rel,
		FileName:     name,
		Duration:     meta.Duration,
		Size:         meta.Size,
		Format:       meta.Format,
		ModTime:      info.ModTime(),
		Section:      SectionOf(rel),
		Order:        w.order,
	}
	w.order++
	return v, nil
}

func (w *walk) fail(p string, err error) {
	w.logger.Warn("skipping", "path", p, "err", err)
	w.res.Errors = append(w.res.Errors, FileError{Path: p, Err: err.Error()})
}

// VideoID derives the stable id of a video from its slash separated path
// relative to the course root.
func VideoID(relPath string) string {
	sum := sha256.Sum256([]byte(relPath))
	return hex.EncodeToString(sum[:])[:16]
}

// CourseID derives the id of a course from its absolute root path, so
// scanning the same directory again finds the same course.
func CourseID(root string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.ToSlash(root))).String()
}

// SectionOf returns the directory part of a relative path, or "" for files
// directly under the root.
func SectionOf(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." {
		return ""
	}
	return dir
}
