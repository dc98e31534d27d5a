package course

import "time"

// MarkWatched marks a video watched and moves the checkpoint to it. Both
// changes land in the same mutation so a saved course never shows one
// without the other.
func (c *Course) MarkWatched(id, notes string, now time.Time) error {
	if _, ok := c.Video(id); !ok {
		return &ErrVideoNotFound{ID: id}
	}
	c.ensureProgress()
	ws := c.Progress[id]
	at := now
	ws.Watched = true
	ws.WatchedAt = &at
	if notes != "" {
		ws.Notes = notes
	}
	c.Progress[id] = ws
	c.Checkpoint = id
	return nil
}

// MarkUnwatched clears the watched flag and timestamp. Notes and the
// checkpoint are left alone.
func (c *Course) MarkUnwatched(id string) error {
	if _, ok := c.Video(id); !ok {
		return &ErrVideoNotFound{ID: id}
	}
	ws, ok := c.Progress[id]
	if !ok {
		return nil
	}
	ws.Watched = false
	ws.WatchedAt = nil
	c.Progress[id] = ws
	return nil
}

// ToggleWatched flips the watched state and returns the new value.
func (c *Course) ToggleWatched(id string, now time.Time) (bool, error) {
	if c.IsWatched(id) {
		return false, c.MarkUnwatched(id)
	}
	return true, c.MarkWatched(id, "", now)
}

// SetNotes replaces the notes of a video, creating an unwatched entry if the
// video has no progress yet.
func (c *Course) SetNotes(id, notes string) error {
	if _, ok := c.Video(id); !ok {
		return &ErrVideoNotFound{ID: id}
	}
	c.ensureProgress()
	ws := c.Progress[id]
	ws.Notes = notes
	c.Progress[id] = ws
	return nil
}

// SetCheckpoint points the checkpoint at an existing video.
func (c *Course) SetCheckpoint(id string) error {
	if _, ok := c.Video(id); !ok {
		return &ErrVideoNotFound{ID: id}
	}
	c.Checkpoint = id
	return nil
}

// CheckpointToLastWatched moves the checkpoint to the most recently watched
// video. It fails with *ErrNothingWatched when no video is watched.
func (c *Course) CheckpointToLastWatched() (VideoItem, error) {
	v, ok := c.LastWatched()
	if !ok {
		if len(c.Videos) == 0 {
			return VideoItem{}, &ErrNoVideos{CourseID: c.ID}
		}
		return VideoItem{}, &ErrNothingWatched{CourseID: c.ID}
	}
	c.Checkpoint = v.ID
	return v, nil
}

// ResetCheckpoint moves the checkpoint back to the first video.
func (c *Course) ResetCheckpoint() (VideoItem, error) {
	ordered := c.Ordered()
	if len(ordered) == 0 {
		return VideoItem{}, &ErrNoVideos{CourseID: c.ID}
	}
	c.Checkpoint = ordered[0].ID
	return ordered[0], nil
}

// MarkSection sets the watched state of every video in a section and
// returns how many videos changed.
func (c *Course) MarkSection(section string, watched bool, now time.Time) (int, error) {
	var ids []string
	for _, v := range c.Ordered() {
		if v.Section == section {
			ids = append(ids, v.ID)
		}
	}
	if len(ids) == 0 {
		return 0, &ErrSectionNotFound{Section: section, Available: c.Sections()}
	}
	return c.markAll(ids, watched, now), nil
}

// MarkUpTo sets the watched state of every video up to and including the
// target in natural order.
func (c *Course) MarkUpTo(id string, watched bool, now time.Time) (int, error) {
	target, ok := c.Video(id)
	if !ok {
		return 0, &ErrVideoNotFound{ID: id}
	}
	var ids []string
	for _, v := range c.Ordered() {
		if v.Order <= target.Order {
			ids = append(ids, v.ID)
		}
	}
	return c.markAll(ids, watched, now), nil
}

// MarkAll sets the watched state of every video in the course.
func (c *Course) MarkAll(watched bool, now time.Time) int {
	ordered := c.Ordered()
	ids := make([]string, len(ordered))
	for i, v := range ordered {
		ids[i] = v.ID
	}
	return c.markAll(ids, watched, now)
}

// UpdateConfig applies a validated partial config change.
func (c *Course) UpdateConfig(u ConfigUpdate) error {
	cfg, err := u.Apply(c.Config)
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// ReplaceVideos installs a fresh scan. Progress, config and checkpoint
// survive; entries for videos that disappeared stay in Progress and are
// ignored by every consumer.
func (c *Course) ReplaceVideos(videos []VideoItem, scannedAt time.Time) {
	c.Videos = videos
	c.ScannedAt = scannedAt
	c.ensureProgress()
}

func (c *Course) markAll(ids []string, watched bool, now time.Time) int {
	changed := 0
	for _, id := range ids {
		if c.IsWatched(id) == watched {
			continue
		}
		if watched {
			_ = c.MarkWatched(id, "", now)
		} else {
			_ = c.MarkUnwatched(id)
		}
		changed++
	}
	return changed
}

func (c *Course) ensureProgress() {
	if c.Progress == nil {
		c.Progress = make(map[string]WatchState)
	}
}
