package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL matches the dataset's upstream refresh cadence.
const DefaultCacheTTL = time.Hour

// Snapshot is one cached fetch of the dataset. The ID changes on every
// successful fetch so clients can tell two snapshots apart even when the
// data itself did not move.
type Snapshot struct {
	Table     *Table
	FetchedAt time.Time
	ID        string
}

// LoadFunc produces a fresh Table.
type LoadFunc func(ctx context.Context) (*Table, error)

// Cache keeps the most recent dataset snapshot for a fixed window. The
// snapshot is replaced wholesale on expiry; a failed load leaves the cache
// untouched, and an expired snapshot is never served.
type Cache struct {
	ttl  time.Duration
	load LoadFunc

	group singleflight.Group

	mu   sync.Mutex
	snap Snapshot

	now func() time.Time
}

// NewCache builds a cache around load. A non-positive ttl selects
// DefaultCacheTTL.
func NewCache(ttl time.Duration, load LoadFunc) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{ttl: ttl, load: load, now: time.Now}
}

// Get returns the current snapshot, fetching one if the cache is empty or
// the window has elapsed. Concurrent callers share a single in-flight
// fetch instead of stampeding the source.
func (c *Cache) Get(ctx context.Context) (Snapshot, error) {
	if snap, ok := c.fresh(); ok {
		return snap, nil
	}
	v, err, _ := c.group.Do("dataset", func() (interface{}, error) {
		// A queued caller may arrive just after the previous flight
		// stored its result.
		if snap, ok := c.fresh(); ok {
			return snap, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

// Refresh refetches immediately and replaces the snapshot on success. The
// warm scheduler uses it to keep interactive requests off the fetch path;
// a failure leaves the previous snapshot as it was.
func (c *Cache) Refresh(ctx context.Context) (Snapshot, error) {
	return c.refresh(ctx)
}

// Peek reports whatever snapshot is currently held, without fetching.
func (c *Cache) Peek() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.Table == nil {
		return Snapshot{}, false
	}
	return c.snap, true
}

func (c *Cache) refresh(ctx context.Context) (Snapshot, error) {
	tab, err := c.load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Table: tab, FetchedAt: c.now(), ID: uuid.NewString()}
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return snap, nil
}

func (c *Cache) fresh() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap.Table == nil || c.now().Sub(c.snap.FetchedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return c.snap, true
}
