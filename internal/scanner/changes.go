package scanner

import "github.com/abhisek/pacer/internal/course"

// Changes describes how a fresh scan differs from the stored video list.
type Changes struct {
	Added     []course.VideoItem `json:"added"`
	Removed   []string           `json:"removed"`
	Modified  []course.VideoItem `json:"modified"`
	Unchanged []course.VideoItem `json:"unchanged"`
}

// HasChanges reports whether anything was added, removed or modified.
func (c Changes) HasChanges() bool {
	return len(c.Added)+len(c.Removed)+len(c.Modified) > 0
}

// Diff compares two video lists by id. A video present in both is modified
// when its size, modification time or duration differ.
func Diff(existing, fresh []course.VideoItem) Changes {
	old := make(map[string]course.VideoItem, len(existing))
	for _, v := range existing {
		old[v.ID] = v
	}
	current := make(map[string]bool, len(fresh))

	var ch Changes
	for _, v := range fresh {
		current[v.ID] = true
		prev, ok := old[v.ID]
		switch {
		case !ok:
			ch.Added = append(ch.Added, v)
		case prev.Size != v.Size || !prev.ModTime.Equal(v.ModTime) || prev.Duration != v.Duration:
			ch.Modified = append(ch.Modified, v)
		default:
			ch.Unchanged = append(ch.Unchanged, v)
		}
	}
	for _, v := range existing {
		if !current[v.ID] {
			ch.Removed = append(ch.Removed, v.ID)
		}
	}
	return ch
}
