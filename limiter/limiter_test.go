package limiter_test

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/amonks/oshinavi/limiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWaitWithoutDelay(t *testing.T) {
	lim := limiter.New("", time.Hour, zap.NewNop())
	start := time.Now()
	require.NoError(t, lim.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestDelay(t *testing.T) {
	lim := limiter.New("", 50*time.Millisecond, zap.NewNop())
	require.NoError(t, lim.Delay())

	start := time.Now()
	require.NoError(t, lim.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestWaitCanceled(t *testing.T) {
	lim := limiter.New("", time.Hour, zap.NewNop())
	require.NoError(t, lim.Delay())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, lim.Wait(ctx), context.Canceled)
}

func TestPersistsAcrossRuns(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "next-req")

	first := limiter.New(filename, time.Hour, zap.NewNop())
	require.NoError(t, first.Delay())

	second := limiter.New(filename, time.Hour, zap.NewNop())
	require.NoError(t, second.Load())
	assert.WithinDuration(t, first.NextAt(), second.NextAt(), time.Millisecond)
}

func TestConcurrentWaitsAreSpaced(t *testing.T) {
	lim := limiter.New("", 50*time.Millisecond, zap.NewNop())

	start := time.Now()
	var (
		mu    sync.Mutex
		waits []time.Duration
		wg    sync.WaitGroup
	)
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, lim.Wait(context.Background()))
			mu.Lock()
			waits = append(waits, time.Since(start))
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(waits, func(i, j int) bool { return waits[i] < waits[j] })
	assert.Less(t, waits[0], 40*time.Millisecond)
	assert.GreaterOrEqual(t, waits[1], 45*time.Millisecond)
	assert.GreaterOrEqual(t, waits[2], 95*time.Millisecond)
}
