// Package clock provides the millisecond time base used for scheduling.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current monotonic time in milliseconds.
// The value wraps at 32 bits, the same width the wire protocol uses.
type Clock interface {
	Millis() uint32
}

// System is a Clock counting milliseconds since it was created.
type System struct {
	start time.Time
}

// NewSystem creates a System clock starting at zero.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Millis implements Clock.
func (c *System) Millis() uint32 {
	return uint32(time.Since(c.start) / time.Millisecond)
}

// Manual is a Clock which only moves when told to.
type Manual struct {
	now  uint32
	lock sync.Mutex
}

// NewManual creates a Manual clock at the given time.
func NewManual(now uint32) *Manual {
	return &Manual{now: now}
}

// Millis implements Clock.
func (c *Manual) Millis() uint32 {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

// Set moves the clock to an absolute time.
func (c *Manual) Set(now uint32) {
	c.lock.Lock()
	c.now = now
	c.lock.Unlock()
}

// Advance moves the clock forward.
func (c *Manual) Advance(d time.Duration) uint32 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now += uint32(d / time.Millisecond)
	return c.now
}
