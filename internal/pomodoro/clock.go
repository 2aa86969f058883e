package pomodoro

import "time"

// Clock abstracts the wall clock so hosts and tests can control "now".
type Clock interface {
	Now() time.Time
}

// RealClock uses actual system time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward (or backward, for skew tests) by d.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

func (c *ManualClock) Set(t time.Time) { c.now = t }
