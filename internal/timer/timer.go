// Package timer computes the countdown state for the next allowed pouch.
// The state is re-derived from scratch on every tick from a sampled instant,
// so there is no drift and nothing to resume after a suspend.
package timer

import (
	"time"

	"github.com/pouchfree/pouchfree/internal/timeutil"
)

// Status is the countdown state machine's current state
type Status string

const (
	StatusSleeping  Status = "sleeping"
	StatusCounting  Status = "counting"
	StatusAvailable Status = "available"
)

// Input carries everything one timer evaluation needs. IntervalMin must be
// resolved (never the auto sentinel) before calling Compute.
type Input struct {
	LastUse     *time.Time
	IntervalMin int
	WakeTime    string // "HH:MM"
	SleepTime   string // "HH:MM"
	DailyLimit  int
	TodayCount  int
	Now         time.Time
}

// State is the derived countdown state for a single instant.
type State struct {
	Status Status

	// Remaining is the displayed countdown in seconds: time until the next
	// allowed pouch while counting, or time until wake while sleeping.
	Remaining int

	// Progress is the elapsed share of the interval, 0-100.
	Progress float64

	// IsOverLimit reports whether today's count has reached the daily
	// limit. Independent of Status: it can be true while available.
	IsOverLimit bool

	// SecondsWaitedPastTimer is how long the user has held out since the
	// timer reached available. Zero unless available with a prior use.
	SecondsWaitedPastTimer int
}

// Compute evaluates the timer state machine for in.Now.
func (in Input) Compute() (State, error) {
	st := State{
		IsOverLimit: in.TodayCount >= in.DailyLimit,
	}

	sleeping, err := timeutil.InSleepWindow(in.Now, in.WakeTime, in.SleepTime)
	if err != nil {
		return State{}, err
	}

	remaining := in.secondsRemaining()

	if sleeping {
		st.Status = StatusSleeping
		untilWake, err := timeutil.SecondsUntilWake(in.Now, in.WakeTime)
		if err != nil {
			return State{}, err
		}
		st.Remaining = untilWake
		st.Progress = in.progress(remaining)
		return st, nil
	}

	if remaining > 0 {
		st.Status = StatusCounting
		st.Remaining = remaining
		st.Progress = in.progress(remaining)
		return st, nil
	}

	st.Status = StatusAvailable
	st.Progress = 100
	if in.LastUse != nil {
		availableSince := in.LastUse.Add(time.Duration(in.IntervalMin) * time.Minute)
		waited := int(in.Now.Sub(availableSince).Seconds())
		if waited > 0 {
			st.SecondsWaitedPastTimer = waited
		}
	}
	return st, nil
}

// secondsRemaining returns the seconds until the next allowed pouch,
// rounded up so the display never shows zero early. No prior use means
// available now.
func (in Input) secondsRemaining() int {
	if in.LastUse == nil {
		return 0
	}
	next := in.LastUse.Add(time.Duration(in.IntervalMin) * time.Minute)
	remaining := next.Sub(in.Now)
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}

// progress is the elapsed share of the interval, clamped to [0, 100].
func (in Input) progress(remaining int) float64 {
	if in.LastUse == nil || remaining <= 0 {
		return 100
	}
	intervalSec := float64(in.IntervalMin) * 60
	if intervalSec <= 0 {
		return 100
	}
	elapsed := in.Now.Sub(*in.LastUse).Seconds()
	p := elapsed / intervalSec * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
