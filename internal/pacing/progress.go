package pacing

import (
	"math"

	"github.com/abhisek/pacer/internal/course"
)

// SectionProgress is the completion of one section.
type SectionProgress struct {
	TotalVideos          int `json:"totalVideos"`
	WatchedVideos        int `json:"watchedVideos"`
	CompletionPercentage int `json:"completionPercentage"`
}

// CourseProgress summarizes how far through a course the learner is.
// Durations are effective video seconds; practice time is not included.
type CourseProgress struct {
	TotalVideos          int                        `json:"totalVideos"`
	WatchedVideos        int                        `json:"watchedVideos"`
	CompletionPercentage int                        `json:"completionPercentage"`
	TotalDuration        float64                    `json:"totalDuration"`
	WatchedDuration      float64                    `json:"watchedDuration"`
	RemainingDuration    float64                    `json:"remainingDuration"`
	LastWatchedVideo     string                     `json:"lastWatchedVideo,omitempty"`
	Sections             map[string]SectionProgress `json:"sectionProgress"`
}

// Aggregate reduces a course to completion statistics. A speedOverride <= 0
// means the course's own playback speed is used.
func Aggregate(c *course.Course, speedOverride float64) (CourseProgress, error) {
	speed := c.Config.PlaybackSpeed
	if speedOverride > 0 {
		speed = speedOverride
	}

	p := CourseProgress{
		TotalVideos: len(c.Videos),
		Sections:    make(map[string]SectionProgress),
	}
	for _, v := range c.Videos {
		effective, err := effectiveTime(v.Duration, speed)
		if err != nil {
			return CourseProgress{}, err
		}
		watched := c.IsWatched(v.ID)

		p.TotalDuration += effective
		if watched {
			p.WatchedVideos++
			p.WatchedDuration += effective
		}

		if v.Section == "" {
			continue
		}
		sp := p.Sections[v.Section]
		sp.TotalVideos++
		if watched {
			sp.WatchedVideos++
		}
		p.Sections[v.Section] = sp
	}

	p.RemainingDuration = p.TotalDuration - p.WatchedDuration
	p.CompletionPercentage = Percent(p.WatchedVideos, p.TotalVideos)
	for name, sp := range p.Sections {
		sp.CompletionPercentage = Percent(sp.WatchedVideos, sp.TotalVideos)
		p.Sections[name] = sp
	}
	if v, ok := c.LastWatched(); ok {
		p.LastWatchedVideo = v.ID
	}
	return p, nil
}

// Percent rounds to the nearest whole percent but reports 100 only when
// part == whole, so 199 of 200 is 99.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	pct := int(math.Round(float64(part) / float64(whole) * 100))
	if part < whole && pct > 99 {
		return 99
	}
	return pct
}
