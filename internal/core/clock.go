package core

import "time"

// Clock measures elapsed time in microseconds. Delta returns the time since
// the previous Delta (or construction) and resets the reference; Split
// returns it without resetting.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock creates a clock reading the wall clock.
func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

// NewClockWithSource creates a clock reading now. A nil source uses time.Now.
func NewClockWithSource(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, last: now()}
}

// Delta returns microseconds since the last reset and resets.
func (c *Clock) Delta() int64 {
	t := c.now()
	d := t.Sub(c.last).Microseconds()
	c.last = t
	return d
}

// Split returns microseconds since the last reset.
func (c *Clock) Split() int64 {
	return c.now().Sub(c.last).Microseconds()
}
