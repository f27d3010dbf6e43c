package query

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a cached value is served before it is considered
// stale and refetched on the next read.
const DefaultTTL = 30 * time.Second

// Cache de-duplicates and caches reads keyed by semantic keys maintained by
// the feature services ("agents", "contacts", "auth/user", ...).
//
// Concurrent reads of the same key while a fetch is in flight collapse into a
// single underlying request. A mutation that changes server state for a key
// must call Invalidate before reporting success, so the next read refetches
// instead of serving a pre-mutation value. That holds even when the
// pre-mutation fetch is still in flight: each key carries a generation,
// bumped on invalidation, and a fetch result is stored only if the
// generation it started under is still current.
type Cache struct {
	ttl   time.Duration
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry
	gens    map[string]uint64
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// New creates a cache with the given TTL. A non-positive ttl means entries
// never expire by age and are dropped only by invalidation.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		gens:    make(map[string]uint64),
	}
}

// Get returns the cached value for key or runs fetch to populate it.
//
// The fetch is keyed through singleflight: overlapping callers share one
// in-flight request and its result. Errors are not cached. A caller whose
// context ends while the shared fetch is still running gets ctx.Err() without
// cancelling the fetch for the other waiters.
func (c *Cache) Get(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	gen := c.generation(key)
	ch := c.group.DoChan(key, func() (any, error) {
		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, value, gen)
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Since(e.fetchedAt) > c.ttl {
		return nil, false
	}
	return e.value, true
}

// generation returns the key's current invalidation generation, recording
// the key so prefix invalidation reaches fetches that have not stored an
// entry yet.
func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	gen := c.gens[key]
	c.gens[key] = gen
	return gen
}

// store records a fetch result unless the key was invalidated after the
// fetch started; a result from before the mutation must not be served.
func (c *Cache) store(key string, value any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return
	}
	c.entries[key] = entry{value: value, fetchedAt: time.Now()}
}

// Peek returns the cached value without fetching. Stale entries miss.
func (c *Cache) Peek(key string) (any, bool) {
	return c.lookup(key)
}

// Invalidate drops the entry for key and bumps its generation, discarding
// any in-flight fetch result for it as well, so the next Get refetches.
func (c *Cache) Invalidate(key string) {
	c.group.Forget(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	delete(c.entries, key)
}

// InvalidatePrefix drops every entry whose key is prefix or derived from it
// (prefix + "/..."), covering per-item keys under a collection. In-flight
// fetches under the prefix are discarded the same way.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.gens {
		if key == prefix || strings.HasPrefix(key, prefix+"/") {
			c.group.Forget(key)
			c.gens[key]++
			delete(c.entries, key)
		}
	}
}

// Clear drops every entry and discards every in-flight fetch result.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.gens {
		c.group.Forget(key)
		c.gens[key]++
	}
	c.entries = make(map[string]entry)
}

// Get is the typed wrapper around Cache.Get for a concrete value type.
func Get[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q holds %T, not %T", key, value, zero)
	}
	return typed, nil
}
