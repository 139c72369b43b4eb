// Package clock holds the waiting primitives used by the ingestion drivers.
package clock

import (
	"context"
	"time"
)

// SleepWithContext blocks for d. It returns ctx.Err() if the context ends first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff hands out doubling delays, starting at Min and capped at Max.
// A zero Max means no cap. Not safe for concurrent use.
type Backoff struct {
	Min time.Duration
	Max time.Duration

	next time.Duration
}

// Next returns the delay for the current failure and advances the sequence.
func (b *Backoff) Next() time.Duration {
	if b.next < b.Min {
		b.next = b.Min
	}
	d := b.next
	b.next *= 2
	if b.Max > 0 && b.next > b.Max {
		b.next = b.Max
	}
	return d
}

// Reset restarts the sequence at Min.
func (b *Backoff) Reset() {
	b.next = 0
}
