// Package timer implements a Pomodoro study timer and its terminal UI.
package timer

import "time"

// State is the run state of the timer.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Phase is the kind of interval being timed.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Event is what a Tick or Skip produced.
type Event int

const (
	EventNone Event = iota
	// EventWorkDone means a work interval ended and a break is loaded.
	EventWorkDone
	// EventBreakDone means a break ended and the next work interval is loaded.
	EventBreakDone
	// EventFinished means the last planned work interval ended.
	EventFinished
)

// Pomodoro alternates work and break intervals. A finished interval leaves
// the timer idle with the next interval loaded, so each one is started
// explicitly.
type Pomodoro struct {
	work, brk time.Duration
	cycles    int

	state     State
	phase     Phase
	remaining time.Duration
	completed int
}

// NewPomodoro creates an idle timer. cycles <= 0 means no limit.
func NewPomodoro(work, brk time.Duration, cycles int) *Pomodoro {
	return &Pomodoro{
		work:      work,
		brk:       brk,
		cycles:    cycles,
		state:     StateIdle,
		phase:     PhaseWork,
		remaining: work,
	}
}

func (p *Pomodoro) State() State             { return p.state }
func (p *Pomodoro) Phase() Phase             { return p.phase }
func (p *Pomodoro) Remaining() time.Duration { return p.remaining }

// Completed counts finished work intervals.
func (p *Pomodoro) Completed() int { return p.completed }

// Cycles is the planned number of work intervals, 0 when unlimited.
func (p *Pomodoro) Cycles() int { return p.cycles }

// Finished reports whether all planned work intervals are done.
func (p *Pomodoro) Finished() bool {
	return p.cycles > 0 && p.completed >= p.cycles
}

// Length is the full duration of the current interval.
func (p *Pomodoro) Length() time.Duration {
	if p.phase == PhaseBreak {
		return p.brk
	}
	return p.work
}

// Elapsed is the fraction of the current interval already done, 0 to 1.
func (p *Pomodoro) Elapsed() float64 {
	total := p.Length()
	if total <= 0 {
		return 1
	}
	return 1 - float64(p.remaining)/float64(total)
}

// Start runs the loaded interval, resuming it when paused.
func (p *Pomodoro) Start() {
	if p.Finished() {
		return
	}
	p.state = StateRunning
}

// Pause stops the clock without losing the remaining time.
func (p *Pomodoro) Pause() {
	if p.state == StateRunning {
		p.state = StatePaused
	}
}

// Toggle starts an idle or paused timer and pauses a running one.
func (p *Pomodoro) Toggle() {
	if p.state == StateRunning {
		p.Pause()
		return
	}
	p.Start()
}

// Reset returns to an idle work interval and clears the completed count.
func (p *Pomodoro) Reset() {
	p.state = StateIdle
	p.phase = PhaseWork
	p.remaining = p.work
	p.completed = 0
}

// Skip ends the current interval immediately.
func (p *Pomodoro) Skip() Event {
	if p.Finished() {
		return EventNone
	}
	return p.finish()
}

// Tick advances a running timer by d.
func (p *Pomodoro) Tick(d time.Duration) Event {
	if p.state != StateRunning {
		return EventNone
	}
	p.remaining -= d
	if p.remaining > 0 {
		return EventNone
	}
	return p.finish()
}

func (p *Pomodoro) finish() Event {
	p.state = StateIdle
	if p.phase == PhaseBreak {
		p.phase = PhaseWork
		p.remaining = p.work
		return EventBreakDone
	}

	p.completed++
	if p.Finished() {
		p.remaining = 0
		return EventFinished
	}
	p.phase = PhaseBreak
	p.remaining = p.brk
	return EventWorkDone
}
