package pacing

import "github.com/abhisek/pacer/internal/course"

// ResolveCheckpoint returns the learner's current position: a valid explicit
// checkpoint, else the most recently watched video, else the first video.
// The bool is false only for a course without videos.
func ResolveCheckpoint(c *course.Course) (course.VideoItem, bool) {
	if v, ok := c.CheckpointVideo(); ok {
		return v, true
	}
	if v, ok := c.LastWatched(); ok {
		return v, true
	}
	ordered := c.Ordered()
	if len(ordered) == 0 {
		return course.VideoItem{}, false
	}
	return ordered[0], true
}
