package utils

import (
	"context"
	"time"
)

// Pacer enforces a fixed pause between consecutive requests. It is meant for
// a single sequential caller and holds no locks.
type Pacer struct {
	interval time.Duration
}

// NewPacer creates a Pacer with the given interval. Zero disables pausing.
func NewPacer(interval time.Duration) *Pacer {
	if interval < 0 {
		interval = 0
	}
	return &Pacer{interval: interval}
}

// Interval returns the configured pause.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Wait blocks for the full interval or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.interval == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
