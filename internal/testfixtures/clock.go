package testfixtures

import (
	"sync"
	"time"
)

// Clock is a manually driven time source. Tests hand NowFunc to code that
// accepts a now function and steer it with Set and Advance.
type Clock struct {
	mu sync.Mutex
	at time.Time
}

// NewClock returns a clock positioned at start. A zero start positions it at
// ReferenceTime so fixtures and clock-driven code agree on a common instant.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{at: start}
}

// Now reports the instant the clock currently points at.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

// NowFunc adapts the clock to the now-function shape the handlers and
// services accept. A nil clock degrades to the real time.Now.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set repositions the clock at t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = t
}

// Advance moves the clock forward by d and returns where it landed.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
	return c.at
}
