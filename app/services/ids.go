package services

import (
	"strconv"
	"sync"
	"time"
)

// ClockIDs mints task ids from the wall clock in milliseconds. Ids are
// strictly increasing even when the clock stalls or steps back.
type ClockIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewClockIDs returns an id source reading now, or time.Now when nil.
func NewClockIDs(now func() time.Time) *ClockIDs {
	if now == nil {
		now = time.Now
	}
	return &ClockIDs{now: now}
}

// Next returns a fresh id.
func (c *ClockIDs) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.last {
		ms = c.last + 1
	}
	c.last = ms
	return strconv.FormatInt(ms, 10)
}

// Observe raises the floor for future ids past a stored numeric id, so ids
// minted after a restart never repeat one already persisted.
func (c *ClockIDs) Observe(id string) {
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms > c.last {
		c.last = ms
	}
}
