package session

import (
	"sync"
	"time"
)

// Clock hands out capture timestamps that never go backwards, even if the
// wall clock is stepped back underneath it.
type Clock struct {
	mu     sync.Mutex
	source func() time.Time
	last   time.Time
}

// NewClock returns a Clock reading from source. A nil source means time.Now.
func NewClock(source func() time.Time) *Clock {
	if source == nil {
		source = time.Now
	}
	return &Clock{source: source}
}

// Now returns the current time, clamped to the last value returned.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.source().UTC()
	if t.Before(c.last) {
		t = c.last
	}
	c.last = t
	return t
}
