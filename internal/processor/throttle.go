package processor

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Throttle limits how many input files are opened per second using a token
// bucket. A nil Throttle, or one created with filesPerSecond <= 0, never blocks.
type Throttle struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	waited  int64
}

// NewThrottle creates a throttle allowing filesPerSecond with the given burst.
func NewThrottle(filesPerSecond float64, burst int) *Throttle {
	if filesPerSecond <= 0 {
		return &Throttle{}
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Limit(filesPerSecond), burst),
	}
}

// Wait blocks until a file may be opened or ctx is cancelled.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return ctx.Err()
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	t.mu.Lock()
	t.waited++
	t.mu.Unlock()
	return nil
}

// Enabled reports whether the throttle actually limits anything.
func (t *Throttle) Enabled() bool {
	return t != nil && t.limiter != nil
}

// Granted returns how many files were let through a limiting throttle.
func (t *Throttle) Granted() int64 {
	if t == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.waited
}
