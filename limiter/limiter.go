// Package limiter spaces out outbound requests. The time of the next allowed
// request is written to a file so that separate runs of the cli share it.
package limiter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

func New(filename string, delay time.Duration, log *zap.Logger) *Limiter {
	return &Limiter{
		filename: filename,
		delay:    delay,
		log:      log,
	}
}

type Limiter struct {
	mu       sync.Mutex
	filename string
	delay    time.Duration
	nextAt   time.Time
	log      *zap.Logger
}

// Load reads the next allowed request time left by a previous run, if any.
func (lim *Limiter) Load() error {
	lim.mu.Lock()
	defer lim.mu.Unlock()

	if lim.filename == "" {
		return nil
	}
	bs, err := os.ReadFile(lim.filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error reading limiter file '%s': %w", lim.filename, err)
	}

	nextAt, err := time.Parse(time.RFC3339Nano, string(bs))
	if err != nil {
		return fmt.Errorf("error parsing limiter file '%s': %w", lim.filename, err)
	}
	lim.nextAt = nextAt
	return nil
}

// Wait blocks until the next request is allowed or ctx is done. Each call
// claims its slot before sleeping, and the slot after it opens one delay
// later.
func (lim *Limiter) Wait(ctx context.Context) error {
	lim.mu.Lock()
	now := time.Now()
	nextAt := lim.nextAt
	if nextAt.Before(now) {
		nextAt = now
	}
	lim.nextAt = nextAt.Add(lim.delay)
	lim.mu.Unlock()

	dur := nextAt.Sub(now)
	if dur <= 0 {
		return nil
	}
	if dur > time.Second {
		lim.log.Info("waiting for rate limit",
			zap.Duration("wait", dur.Truncate(time.Second)),
			zap.Time("until", nextAt))
	}

	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Delay pushes the next allowed request out by the limiter's delay.
func (lim *Limiter) Delay() error {
	return lim.DelayBy(lim.delay)
}

// DelayBy pushes the next allowed request out to at least d from now.
func (lim *Limiter) DelayBy(d time.Duration) error {
	lim.mu.Lock()
	defer lim.mu.Unlock()

	// never move earlier than a slot another caller has claimed
	if at := time.Now().Add(d); at.After(lim.nextAt) {
		lim.nextAt = at
	}
	if lim.filename == "" {
		return nil
	}
	if err := os.WriteFile(lim.filename, []byte(lim.nextAt.Format(time.RFC3339Nano)), 0o644); err != nil {
		return fmt.Errorf("error writing limiter file '%s': %w", lim.filename, err)
	}
	return nil
}

// NextAt returns the time of the next allowed request.
func (lim *Limiter) NextAt() time.Time {
	lim.mu.Lock()
	defer lim.mu.Unlock()
	return lim.nextAt
}
