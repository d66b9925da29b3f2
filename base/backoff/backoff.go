package backoff

import (
	"context"
	"math/rand"
	"time"
)

// Backoff sleeps between retries, doubling from start up to limit
type Backoff struct {
	start  time.Duration
	limit  time.Duration
	jitter time.Duration
	next   time.Duration
	count  int
}

// NewExponential waits start, 2*start, 4*start... capped at limit when limit > 0.
// Up to jitter of random extra wait is added to every sleep.
func NewExponential(start, limit, jitter time.Duration) *Backoff {
	b := &Backoff{start: start, limit: limit, jitter: jitter}
	b.Reset()
	return b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.next = b.start
}

// Next is the wait of the coming Backoff call, jitter excluded
func (b *Backoff) Next() time.Duration {
	return b.next
}

func (b *Backoff) Count() int {
	return b.count
}

// Backoff blocks for the next wait or until ctx is done
func (b *Backoff) Backoff(ctx context.Context) error {
	wait := b.next
	if b.jitter > 0 {
		wait += time.Duration(rand.Int63n(int64(b.jitter)))
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	b.count++
	b.next *= 2
	if b.limit > 0 && b.next > b.limit {
		b.next = b.limit
	}
	return nil
}
