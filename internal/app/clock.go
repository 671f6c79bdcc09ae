package app

import (
	"context"
	"runtime"
	"time"
)

// SystemClock waits on the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep blocks for d or until ctx is done.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// GCReclaimer forces a garbage collection after every cycle.
type GCReclaimer struct{}

// Reclaim runs the garbage collector.
func (GCReclaimer) Reclaim() { runtime.GC() }

// NoopReclaimer leaves reclamation to the runtime.
type NoopReclaimer struct{}

// Reclaim does nothing.
func (NoopReclaimer) Reclaim() {}
