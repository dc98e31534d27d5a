package pacing

import "github.com/abhisek/pacer/internal/course"

// VideoCost is the study time one video takes, in seconds.
type VideoCost struct {
	Video              course.VideoItem
	EffectiveVideoTime float64
	PracticeTime       float64
	TotalTime          float64
}

// Cost converts a raw duration into study time at the configured speed, plus
// practice time from the section override or default multiplier. Nothing is
// rounded so repeated sums stay exact.
func Cost(v course.VideoItem, cfg course.Config) (VideoCost, error) {
	effective, err := effectiveTime(v.Duration, cfg.PlaybackSpeed)
	if err != nil {
		return VideoCost{}, err
	}
	practice := effective * cfg.Multiplier(v.Section)
	return VideoCost{
		Video:              v,
		EffectiveVideoTime: effective,
		PracticeTime:       practice,
		TotalTime:          effective + practice,
	}, nil
}

// Costs computes Cost for each video, preserving order.
func Costs(videos []course.VideoItem, cfg course.Config) ([]VideoCost, error) {
	out := make([]VideoCost, 0, len(videos))
	for _, v := range videos {
		c, err := Cost(v, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// TimeTotals sums the three cost figures over a set of videos.
type TimeTotals struct {
	VideoTime    float64 `json:"totalVideoTime"`
	PracticeTime float64 `json:"totalPracticeTime"`
	Total        float64 `json:"totalTime"`
}

// Totals sums costs over videos.
func Totals(videos []course.VideoItem, cfg course.Config) (TimeTotals, error) {
	costs, err := Costs(videos, cfg)
	if err != nil {
		return TimeTotals{}, err
	}
	var t TimeTotals
	for _, c := range costs {
		t.VideoTime += c.EffectiveVideoTime
		t.PracticeTime += c.PracticeTime
		t.Total += c.TotalTime
	}
	return t, nil
}

func effectiveTime(duration, speed float64) (float64, error) {
	if speed <= 0 {
		return 0, &course.ErrConfiguration{
			Field:  "playback speed",
			Value:  speed,
			Reason: "must be greater than 0",
		}
	}
	return duration / speed, nil
}
