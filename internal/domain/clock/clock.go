package clock

import (
	"sync"
	"time"

	// Embedded zone database so America/Sao_Paulo resolves on slim images.
	_ "time/tzdata"
)

// Clock abstracts "now" so business rules can be evaluated against any instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant until moved with Set/Advance.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixed(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
