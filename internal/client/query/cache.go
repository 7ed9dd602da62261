// Package query implements the client-side query cache: request
// deduplication, a staleness window, and tag-based invalidation. It is the
// read-after-write backbone of the list views: a mutation invalidates the
// tags of the lists it touches, and the next read of those lists refetches.
//
// The cache is an explicitly constructed value with a defined lifecycle:
// created at application start, Reset on logout. There is no package-level
// singleton.
package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rashedul-dev/Qourio-client/internal/logging"
)

// Tag groups cache entries by the backend resource they project. The values
// mirror the invalidation relationships between endpoints.
type Tag string

const (
	TagUser           Tag = "USER"
	TagSenderParcel   Tag = "SENDER_PARCEL"
	TagReceiverParcel Tag = "RECEIVER_PARCEL"
	TagAllParcel      Tag = "ALL_PARCEL"
)

type entry struct {
	val       any
	tags      []Tag
	fetchedAt time.Time
}

// Cache deduplicates and caches query results.
//
// Concurrency: all methods are safe for concurrent use. Concurrent Gets for
// the same key within one generation share a single fetch (singleflight).
//
// Staleness: an entry older than the TTL is refetched on the next Get.
// Identical keys within the TTL never re-trigger a fetch.
//
// Generations: Invalidate and Reset advance a generation counter. A fetch
// that was started under an older generation still returns its result to the
// waiting callers, but the result is discarded instead of being stored, so a
// response from before a mutation (or from a logged-out session) can never
// repopulate the cache.
type Cache struct {
	ttl time.Duration
	log logging.Logger
	now func() time.Time

	sf singleflight.Group

	mu      sync.Mutex
	gen     uint64
	entries map[string]*entry
}

// Option customizes a Cache.
type Option func(*Cache)

// WithNow replaces the time source. Test seam.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an empty cache whose entries stay fresh for ttl.
func New(ttl time.Duration, log logging.Logger, opts ...Option) *Cache {
	if log == nil {
		log = logging.Discard()
	}
	c := &Cache{
		ttl:     ttl,
		log:     log.With("component", "query-cache"),
		now:     time.Now,
		entries: make(map[string]*entry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the cached value for key when fresh; otherwise it runs fetch
// (deduplicated across concurrent callers), stores the result under the given
// tags, and returns it. Fetch errors are returned as-is and never cached.
func (c *Cache) Get(ctx context.Context, key string, tags []Tag, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		v := e.val
		c.mu.Unlock()
		c.log.Debug(ctx, "cache hit", "key", key)
		return v, nil
	}
	gen := c.gen
	c.mu.Unlock()

	// The generation is part of the flight key: callers arriving after an
	// invalidation never join a flight that predates it.
	flightKey := fmt.Sprintf("%d\x00%s", gen, key)
	v, err, shared := c.sf.Do(flightKey, func() (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debug(ctx, "fetch shared between callers", "key", key)
	}

	c.mu.Lock()
	if c.gen == gen {
		c.entries[key] = &entry{val: v, tags: tags, fetchedAt: c.now()}
	} else {
		c.log.Debug(ctx, "discarding stale fetch result", "key", key)
	}
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops every entry carrying at least one of the tags and starts a
// new generation, so in-flight fetches from before the call cannot persist.
func (c *Cache) Invalidate(tags ...Tag) {
	if len(tags) == 0 {
		return
	}
	want := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}

	c.mu.Lock()
	for key, e := range c.entries {
		for _, t := range e.tags {
			if _, ok := want[t]; ok {
				delete(c.entries, key)
				break
			}
		}
	}
	c.gen++
	c.mu.Unlock()
}

// Reset empties the cache entirely. Called on logout so nothing fetched under
// one identity survives into the next.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*entry)
	c.gen++
	c.mu.Unlock()
}

// Len reports the number of stored entries (including expired ones that have
// not been touched yet).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fetch is the typed wrapper around Cache.Get. A cached value that does not
// match T (a programming error: two endpoints sharing a key) surfaces as an
// error rather than a panic.
func Fetch[T any](ctx context.Context, c *Cache, key string, tags []Tag, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, tags, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache key %q holds %T, want %T", key, v, zero)
	}
	return typed, nil
}
