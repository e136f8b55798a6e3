package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader hands out fresh tables and tracks how often it ran.
type countingLoader struct {
	calls int32
	delay time.Duration
	fail  atomic.Bool
}

func (l *countingLoader) load(ctx context.Context) (*Table, error) {
	atomic.AddInt32(&l.calls, 1)
	if l.delay > 0 {
		time.Sleep(l.delay)
	}
	if l.fail.Load() {
		return nil, fmt.Errorf("%w: synthetic failure", ErrDataUnavailable)
	}
	return newTestTable(), nil
}

func (l *countingLoader) count() int32 { return atomic.LoadInt32(&l.calls) }

func TestCacheGetReusesSnapshot(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(time.Hour, loader.load)

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	second, err := cache.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), loader.count())
	assert.Equal(t, first.ID, second.ID)
	assert.NotEmpty(t, first.ID)
}

func TestCacheExpiry(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(time.Hour, loader.load)

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return clock }

	first, err := cache.Get(context.Background())
	require.NoError(t, err)

	// Still inside the window: same snapshot.
	clock = clock.Add(59 * time.Minute)
	mid, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, mid.ID)

	// Window elapsed: a new fetch replaces it.
	clock = clock.Add(2 * time.Minute)
	fresh, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fresh.ID)
	assert.Equal(t, int32(2), loader.count())
}

func TestCacheFailureIsNotCached(t *testing.T) {
	loader := &countingLoader{}
	loader.fail.Store(true)
	cache := NewCache(time.Hour, loader.load)

	_, err := cache.Get(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)

	_, ok := cache.Peek()
	assert.False(t, ok, "a failed load must not leave a snapshot behind")

	// The next caller retries instead of replaying the failure.
	loader.fail.Store(false)
	snap, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap.Table)
	assert.Equal(t, int32(2), loader.count())
}

func TestCacheRefreshFailureKeepsOldSnapshot(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(time.Hour, loader.load)

	orig, err := cache.Get(context.Background())
	require.NoError(t, err)

	loader.fail.Store(true)
	_, err = cache.Refresh(context.Background())
	require.Error(t, err)

	kept, ok := cache.Peek()
	require.True(t, ok)
	assert.Equal(t, orig.ID, kept.ID)
}

func TestCacheRefreshReplacesFreshSnapshot(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(time.Hour, loader.load)

	orig, err := cache.Get(context.Background())
	require.NoError(t, err)

	replaced, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, replaced.ID)

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, replaced.ID, got.ID)
}

func TestCacheConcurrentGetsShareOneFetch(t *testing.T) {
	loader := &countingLoader{delay: 50 * time.Millisecond}
	cache := NewCache(time.Hour, loader.load)

	const callers = 10
	ids := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := cache.Get(context.Background())
			assert.NoError(t, err)
			ids[i] = snap.ID
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), loader.count(), "concurrent callers must share one fetch")
	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}
}

func TestCachePeekDoesNotFetch(t *testing.T) {
	loader := &countingLoader{}
	cache := NewCache(time.Hour, loader.load)

	_, ok := cache.Peek()
	assert.False(t, ok)
	assert.Equal(t, int32(0), loader.count())
}
