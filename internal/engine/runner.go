package engine

import (
	"strconv"
	"time"
)

// Runner is the stopping-condition object shared by every virtual user in
// a simulation: given the sent-requests count and the simulation's start
// time, it answers whether the run should continue and how far through its
// budget it is.
type Runner interface {
	Continue(sent int64, start time.Time) bool
	Progress(sent int64, start time.Time) float64
	Info() string

	// MaxIterationsPerUser bounds how many times a single User Loop may
	// walk its scenario, independent of Continue. Zero means unbounded.
	// Only FixedUserRunner uses this: each user runs the scenario exactly
	// once, then the engine stops.
	MaxIterationsPerUser() int
}

// DurationRunner stops once d has elapsed since the simulation started.
type DurationRunner struct {
	Duration time.Duration
}

func (r DurationRunner) Continue(_ int64, start time.Time) bool {
	return time.Since(start) < r.Duration
}

func (r DurationRunner) Progress(_ int64, start time.Time) float64 {
	if r.Duration <= 0 {
		return 1
	}
	p := time.Since(start).Seconds() / r.Duration.Seconds()
	return clamp01(p)
}

func (r DurationRunner) Info() string {
	return "duration:" + r.Duration.String()
}

func (r DurationRunner) MaxIterationsPerUser() int { return 0 }

// RequestCountRunner stops once N requests have been sent.
type RequestCountRunner struct {
	N int64
}

func (r RequestCountRunner) Continue(sent int64, _ time.Time) bool {
	return sent < r.N
}

func (r RequestCountRunner) Progress(sent int64, _ time.Time) float64 {
	if r.N <= 0 {
		return 1
	}
	return clamp01(float64(sent) / float64(r.N))
}

func (r RequestCountRunner) Info() string {
	return "requests:" + strconv.FormatInt(r.N, 10)
}

func (r RequestCountRunner) MaxIterationsPerUser() int { return 0 }

// FixedUserRunner is chosen when neither a duration nor a request count is
// given: every user runs its scenario exactly once, then the engine stops.
// Continue is unconditionally true -- termination comes from each User
// Loop capping itself at one iteration (MaxIterationsPerUser) and the
// simulation naturally draining once all loops finish.
type FixedUserRunner struct {
	Users int
}

func (r FixedUserRunner) Continue(_ int64, _ time.Time) bool { return true }

func (r FixedUserRunner) Progress(sent int64, _ time.Time) float64 {
	if r.Users <= 0 {
		return 1
	}
	return clamp01(float64(sent) / float64(r.Users))
}

func (r FixedUserRunner) Info() string { return "fixed-users:" + strconv.Itoa(r.Users) }

func (r FixedUserRunner) MaxIterationsPerUser() int { return 1 }

// ChooseRunner implements the runner selection rule: duration wins if
// set, else request count, else FixedUserRunner.
func ChooseRunner(opts *SimulationOptions) Runner {
	switch {
	case opts.Duration > 0:
		return DurationRunner{Duration: opts.Duration}
	case opts.Requests > 0:
		return RequestCountRunner{N: opts.Requests}
	default:
		return FixedUserRunner{Users: len(opts.userIDs())}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

