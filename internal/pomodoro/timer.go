// Package pomodoro implements the work/break interval timer. The timer owns
// no goroutine: hosts call Tick on their own render schedule and the timer
// performs phase rollovers as a side effect of that call.
package pomodoro

import "time"

// Phase is the timer's current mode.
type Phase int

const (
	Idle Phase = iota
	Working
	OnBreak
)

func (p Phase) String() string {
	switch p {
	case Working:
		return "Work"
	case OnBreak:
		return "Break"
	default:
		return "Idle"
	}
}

// next returns the phase that follows p on rollover.
func (p Phase) next() Phase {
	if p == Working {
		return OnBreak
	}
	return Working
}

// State is a snapshot of the timer. PhaseStart is the zero time while idle.
type State struct {
	Phase      Phase
	PhaseStart time.Time
	Running    bool
}

// Reading is what Tick reports to the host.
type Reading struct {
	Phase        Phase
	Remaining    int // seconds, always within [0, Total]
	Total        int // seconds in the current phase
	Transitioned bool
}

// Timer is the interval timer. A Timer belongs to a single session and is not
// safe for concurrent use.
type Timer struct {
	clock Clock

	// active drives the running countdown; staged is the latest accepted
	// configuration and replaces active on rollover or start.
	active Config
	staged Config

	state State
}

// New returns an idle timer. A nil clock means RealClock.
func New(clock Clock, cfg Config) (*Timer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Timer{clock: clock, active: cfg, staged: cfg}, nil
}

// Configure stores new durations. While running they are staged and take
// effect at the next rollover or restart.
func (t *Timer) Configure(workMinutes, breakMinutes int) error {
	cfg := Config{WorkMinutes: workMinutes, BreakMinutes: breakMinutes}
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.staged = cfg
	if !t.state.Running {
		t.active = cfg
	}
	return nil
}

// Config returns the most recently accepted configuration.
func (t *Timer) Config() Config { return t.staged }

// Active returns the configuration driving the current countdown.
func (t *Timer) Active() Config { return t.active }

func (t *Timer) State() State { return t.state }

func (t *Timer) Running() bool { return t.state.Running }

// Start begins a work phase. Calling Start while running changes nothing.
func (t *Timer) Start() State {
	if t.state.Running {
		return t.state
	}
	t.active = t.staged
	t.state = State{Phase: Working, PhaseStart: t.clock.Now(), Running: true}
	return t.state
}

// Stop resets the timer to idle unconditionally.
func (t *Timer) Stop() State {
	t.state = State{}
	return t.state
}

// Tick evaluates the timer at now. When the current phase has run out it
// flips to the other phase exactly once, restarting the countdown at now.
// Elapsed time beyond the rollover is dropped, not carried over.
func (t *Timer) Tick(now time.Time) Reading {
	if !t.state.Running {
		return Reading{Phase: Idle}
	}

	elapsed := int(now.Sub(t.state.PhaseStart) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	total := t.active.total(t.state.Phase)
	remaining := total - elapsed
	if remaining > 0 {
		return Reading{Phase: t.state.Phase, Remaining: remaining, Total: total}
	}

	t.active = t.staged
	t.state.Phase = t.state.Phase.next()
	t.state.PhaseStart = now
	total = t.active.total(t.state.Phase)
	return Reading{Phase: t.state.Phase, Remaining: total, Total: total, Transitioned: true}
}

// Remaining is Tick at the timer's own clock.
func (t *Timer) Remaining() Reading {
	return t.Tick(t.clock.Now())
}
