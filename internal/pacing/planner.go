package pacing

import "github.com/abhisek/pacer/internal/course"

// Plan selects the unwatched videos that fit in the time budget, starting at
// the resolved start video and walking the course in natural order. The walk
// stops at the first video that does not fit: a session is studied
// sequentially, so later shorter videos are never pulled forward.
func Plan(c *course.Course, opts PlanOptions) (*SessionPlan, error) {
	if opts.TimeBudget < 0 {
		return nil, &course.ErrConfiguration{
			Field:  "time budget",
			Value:  opts.TimeBudget,
			Reason: "must not be negative",
		}
	}

	start, err := startVideo(c, opts.StartFrom)
	if err != nil {
		return nil, err
	}

	candidates := candidateVideos(c, start, opts.Section)
	if len(candidates) == 0 {
		return nil, &ErrEmptyCandidateSet{StartID: start.ID, Section: opts.Section}
	}

	costs, err := Costs(candidates, c.Config)
	if err != nil {
		return nil, err
	}

	plan := &SessionPlan{
		Videos:          []course.VideoItem{},
		StartCheckpoint: start.ID,
		EndCheckpoint:   start.ID,
	}
	remaining := opts.TimeBudget
	for _, vc := range costs {
		charge := vc.EffectiveVideoTime
		if opts.IncludePractice {
			charge = vc.TotalTime
		}
		if charge > remaining {
			break
		}
		remaining -= charge

		plan.Videos = append(plan.Videos, vc.Video)
		plan.TotalVideoTime += vc.EffectiveVideoTime
		if opts.IncludePractice {
			plan.TotalPracticeTime += vc.PracticeTime
		}
		plan.EndCheckpoint = vc.Video.ID
	}
	plan.TotalTime = plan.TotalVideoTime + plan.TotalPracticeTime
	return plan, nil
}

// EstimateVideosInBudget counts how many unwatched videos, taken from the
// beginning of the course, fit in the budget.
func EstimateVideosInBudget(c *course.Course, budget float64, includePractice bool) (int, error) {
	var unwatched []course.VideoItem
	for _, v := range c.Ordered() {
		if !c.IsWatched(v.ID) {
			unwatched = append(unwatched, v)
		}
	}
	costs, err := Costs(unwatched, c.Config)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, vc := range costs {
		charge := vc.EffectiveVideoTime
		if includePractice {
			charge = vc.TotalTime
		}
		if charge > budget {
			break
		}
		budget -= charge
		count++
	}
	return count, nil
}

func startVideo(c *course.Course, startFrom string) (course.VideoItem, error) {
	var (
		v  course.VideoItem
		ok bool
	)
	switch startFrom {
	case "", StartLast:
		v, ok = ResolveCheckpoint(c)
	case StartBeginning:
		v, ok = firstUnwatched(c)
	case StartCheckpoint:
		if v, ok = c.CheckpointVideo(); !ok {
			v, ok = ResolveCheckpoint(c)
		}
	default:
		v, ok = c.Video(startFrom)
	}
	if !ok {
		return course.VideoItem{}, &ErrNoStartVideo{StartFrom: startFrom}
	}
	return v, nil
}

// firstUnwatched returns the first unwatched video by order, or the first
// video when everything has been watched.
func firstUnwatched(c *course.Course) (course.VideoItem, bool) {
	ordered := c.Ordered()
	for _, v := range ordered {
		if !c.IsWatched(v.ID) {
			return v, true
		}
	}
	if len(ordered) == 0 {
		return course.VideoItem{}, false
	}
	return ordered[0], true
}

func candidateVideos(c *course.Course, start course.VideoItem, section string) []course.VideoItem {
	var out []course.VideoItem
	for _, v := range c.Ordered() {
		if v.Order < start.Order || c.IsWatched(v.ID) {
			continue
		}
		if section != "" && v.Section != section {
			continue
		}
		out = append(out, v)
	}
	return out
}
