package course

import (
	"sort"
	"time"
)

// VideoItem is one scanned video file.
type VideoItem struct {
	ID           string    `json:"id"`
	Path         string    `json:"path"`
	RelativePath string    `json:"relativePath"`
	FileName     string    `json:"filename"`
	Duration     float64   `json:"duration"` // seconds
	Size         int64     `json:"size"`
	Format       string    `json:"format"`
	ModTime      time.Time `json:"lastModified"`
	Section      string    `json:"section,omitempty"` // "" = uncategorized
	Order        int       `json:"order"`
}

// WatchState is the mutable per-video progress record.
type WatchState struct {
	Watched      bool       `json:"watched"`
	WatchedAt    *time.Time `json:"watchedAt,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	LastPosition *float64   `json:"lastPosition,omitempty"`
}

// Course is a scanned directory of videos plus the learner's progress in it.
type Course struct {
	ID        string                `json:"id"`
	RootPath  string                `json:"rootPath"`
	ScannedAt time.Time             `json:"scannedAt"`
	Videos    []VideoItem           `json:"videos"`
	Progress  map[string]WatchState `json:"progress"`
	Config    Config                `json:"config"`
	// Checkpoint is a video id, or "" when unset.
	Checkpoint string `json:"checkpoint,omitempty"`
}

// New creates an empty course with default config.
func New(id, rootPath string) *Course {
	return &Course{
		ID:       id,
		RootPath: rootPath,
		Progress: make(map[string]WatchState),
		Config:   DefaultConfig(),
	}
}

// Video returns the video with the given id.
func (c *Course) Video(id string) (VideoItem, bool) {
	for _, v := range c.Videos {
		if v.ID == id {
			return v, true
		}
	}
	return VideoItem{}, false
}

// Ordered returns a copy of the video list sorted by Order.
func (c *Course) Ordered() []VideoItem {
	out := make([]VideoItem, len(c.Videos))
	copy(out, c.Videos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// IsWatched reports whether the video is marked watched.
func (c *Course) IsWatched(id string) bool {
	return c.Progress[id].Watched
}

// CheckpointVideo returns the explicit checkpoint if it references a video
// that still exists in the course.
func (c *Course) CheckpointVideo() (VideoItem, bool) {
	if c.Checkpoint == "" {
		return VideoItem{}, false
	}
	return c.Video(c.Checkpoint)
}

// Sections returns the distinct non-empty section labels in natural order.
func (c *Course) Sections() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range c.Videos {
		if v.Section == "" || seen[v.Section] {
			continue
		}
		seen[v.Section] = true
		out = append(out, v.Section)
	}
	SortNatural(out)
	return out
}

// LastWatched returns the watched video with the latest WatchedAt. Videos are
// visited in order and ties keep the first one seen.
func (c *Course) LastWatched() (VideoItem, bool) {
	var (
		best   VideoItem
		bestAt time.Time
		found  bool
	)
	for _, v := range c.Ordered() {
		ws, ok := c.Progress[v.ID]
		if !ok || !ws.Watched || ws.WatchedAt == nil {
			continue
		}
		if !found || ws.WatchedAt.After(bestAt) {
			best, bestAt, found = v, *ws.WatchedAt, true
		}
	}
	return best, found
}
