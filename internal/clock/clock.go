// Package clock supplies the logical height stamped on todo mutations.
//
// A height is a non-decreasing counter. Stores read it once per mutation and
// never interpret it beyond ordering.
package clock

import (
	"sync"
	"time"
)

// Unix reports wall-clock seconds. Height never goes backwards within the
// process even if the system clock does.
type Unix struct {
	// Now defaults to time.Now.
	Now func() time.Time

	mu   sync.Mutex
	last uint64
}

// NewUnix returns a Unix clock that never reports less than floor, typically
// the highest height already stored.
func NewUnix(floor uint64) *Unix {
	return &Unix{last: floor}
}

func (c *Unix) Height() uint64 {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	var h uint64
	if s := now().Unix(); s > 0 {
		h = uint64(s)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if h < c.last {
		h = c.last
	}
	c.last = h
	return h
}

// Counter is a monotonic logical clock. Every Height call returns the next
// value, starting at start+1.
type Counter struct {
	mu  sync.Mutex
	seq uint64
}

func NewCounter(start uint64) *Counter {
	return &Counter{seq: start}
}

func (c *Counter) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last height handed out without advancing.
func (c *Counter) Current() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Manual returns whatever height was last Set. Used by tests.
type Manual struct {
	mu sync.Mutex
	h  uint64
}

func NewManual(h uint64) *Manual { return &Manual{h: h} }

func (m *Manual) Set(h uint64) {
	m.mu.Lock()
	m.h = h
	m.mu.Unlock()
}

func (m *Manual) Height() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.h
}
