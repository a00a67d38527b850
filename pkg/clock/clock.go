// Package clock abstrae la hora actual para poder fijarla en tests.
package clock

import (
	"sync"
	"time"
)

// Clock fuente de la hora actual.
type Clock interface {
	Now() time.Time
}

// System usa time.Now.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fake reloj manual para tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake crea un reloj fijo en t (UTC).
func NewFake(t time.Time) *Fake {
	return &Fake{now: t.UTC()}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance mueve el reloj d hacia adelante.
func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set fija el reloj en t.
func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}
