// Package analyzer breaks a course down by section and container format.
package analyzer

import (
	"math"

	"github.com/abhisek/pacer/internal/course"
	"github.com/abhisek/pacer/internal/pacing"
)

// Uncategorized labels videos that sit directly under the course root.
const Uncategorized = "Uncategorized"

// Filter narrows the videos an analysis looks at. Zero values match all.
type Filter struct {
	Section string `json:"section,omitempty"`
	// Watched selects watched (true) or unwatched (false) videos when set.
	Watched *bool  `json:"watched,omitempty"`
	Format  string `json:"format,omitempty"`
}

func (f Filter) match(c *course.Course, v course.VideoItem) bool {
	if f.Section != "" && v.Section != f.Section {
		return false
	}
	if f.Watched != nil && c.IsWatched(v.ID) != *f.Watched {
		return false
	}
	if f.Format != "" && v.Format != f.Format {
		return false
	}
	return true
}

// SectionStats summarizes the filtered videos of one section. Durations are
// raw seconds.
type SectionStats struct {
	Name                 string  `json:"name"`
	VideoCount           int     `json:"videoCount"`
	TotalDuration        float64 `json:"totalDuration"`
	WatchedCount         int     `json:"watchedCount"`
	CompletionPercentage int     `json:"completionPercentage"`
}

// FormatStats summarizes the filtered videos of one container format.
type FormatStats struct {
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	TotalDuration float64 `json:"totalDuration"`
	TotalSize     int64   `json:"totalSize"`
}

// VideoRef names a video and its raw duration.
type VideoRef struct {
	ID       string  `json:"id"`
	FileName string  `json:"filename"`
	Duration float64 `json:"duration"`
}

// Analysis is the breakdown of a course. TotalDuration is raw seconds and
// AdjustedDuration is the same videos at the course's playback speed.
type Analysis struct {
	TotalVideos          int            `json:"totalVideos"`
	TotalDuration        float64        `json:"totalDuration"`
	AdjustedDuration     float64        `json:"adjustedDuration"`
	TotalSize            int64          `json:"totalSize"`
	WatchedVideos        int            `json:"watchedVideos"`
	UnwatchedVideos      int            `json:"unwatchedVideos"`
	CompletionPercentage int            `json:"completionPercentage"`
	Sections             []SectionStats `json:"sections"`
	Formats              []FormatStats  `json:"formats"`
	AverageVideoDuration float64        `json:"averageVideoDuration"`
	LongestVideo         *VideoRef      `json:"longestVideo"`
	ShortestVideo        *VideoRef      `json:"shortestVideo"`
}

// Analyze computes the breakdown of the videos matching f. Sections and
// formats are listed in order of first appearance. On equal durations the
// longest video is the first in course order and the shortest the last.
func Analyze(c *course.Course, f Filter) (Analysis, error) {
	var videos []course.VideoItem
	for _, v := range c.Ordered() {
		if f.match(c, v) {
			videos = append(videos, v)
		}
	}

	a := Analysis{Sections: []SectionStats{}, Formats: []FormatStats{}}
	if len(videos) == 0 {
		return a, nil
	}

	totals, err := pacing.Totals(videos, c.Config)
	if err != nil {
		return Analysis{}, err
	}
	a.AdjustedDuration = totals.VideoTime
	a.TotalVideos = len(videos)

	sectionIdx := make(map[string]int)
	formatIdx := make(map[string]int)
	for _, v := range videos {
		watched := c.IsWatched(v.ID)
		a.TotalDuration += v.Duration
		a.TotalSize += v.Size
		if watched {
			a.WatchedVideos++
		}

		name := v.Section
		if name == "" {
			name = Uncategorized
		}
		i, ok := sectionIdx[name]
		if !ok {
			i = len(a.Sections)
			sectionIdx[name] = i
			a.Sections = append(a.Sections, SectionStats{Name: name})
		}
		s := &a.Sections[i]
		s.VideoCount++
		s.TotalDuration += v.Duration
		if watched {
			s.WatchedCount++
		}

		j, ok := formatIdx[v.Format]
		if !ok {
			j = len(a.Formats)
			formatIdx[v.Format] = j
			a.Formats = append(a.Formats, FormatStats{Name: v.Format})
		}
		fs := &a.Formats[j]
		fs.Count++
		fs.TotalDuration += v.Duration
		fs.TotalSize += v.Size

		if a.LongestVideo == nil || v.Duration > a.LongestVideo.Duration {
			a.LongestVideo = ref(v)
		}
		if a.ShortestVideo == nil || v.Duration <= a.ShortestVideo.Duration {
			a.ShortestVideo = ref(v)
		}
	}

	a.UnwatchedVideos = a.TotalVideos - a.WatchedVideos
	a.CompletionPercentage = pacing.Percent(a.WatchedVideos, a.TotalVideos)
	for i := range a.Sections {
		s := &a.Sections[i]
		s.CompletionPercentage = pacing.Percent(s.WatchedCount, s.VideoCount)
	}
	a.AverageVideoDuration = math.Round(a.TotalDuration / float64(a.TotalVideos))
	return a, nil
}

func ref(v course.VideoItem) *VideoRef {
	return &VideoRef{ID: v.ID, FileName: v.FileName, Duration: v.Duration}
}
