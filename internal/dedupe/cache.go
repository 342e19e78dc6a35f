package dedupe

import (
	"strings"
	"sync"
	"time"
)

// Kinds of keys tracked by the harvesting and streaming paths.
const (
	KindID    = "id"
	KindLink  = "link"
	KindTitle = "title"
)

type entry struct {
	key string
	ts  time.Time
}

// Cache keeps a bounded set of recently seen article keys. Keys are
// namespaced by kind so a title never collides with a link.
type Cache struct {
	mu       sync.Mutex
	items    map[string]time.Time
	order    []entry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewCache creates a cache with the provided capacity and ttl.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		items:    make(map[string]time.Time, capacity),
		order:    make([]entry, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

// Seen reports whether key of the given kind was marked inside the ttl
// window. Blank keys are never seen.
func (c *Cache) Seen(kind, key string) bool {
	k, ok := cacheKey(kind, key)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ts, found := c.items[k]
	return found && c.now().Sub(ts) <= c.ttl
}

// Mark records key of the given kind. Blank keys are ignored.
func (c *Cache) Mark(kind, key string) {
	k, ok := cacheKey(kind, key)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.items[k] = now
	c.order = append(c.order, entry{key: k, ts: now})
	c.compact(now)
}

// SeenAny reports whether any of the (kind, key) pairs was already seen.
// pairs alternates kind and key.
func (c *Cache) SeenAny(pairs ...string) bool {
	for i := 0; i+1 < len(pairs); i += 2 {
		if c.Seen(pairs[i], pairs[i+1]) {
			return true
		}
	}
	return false
}

// Len returns the number of live keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cache) compact(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.order) > 0 && (len(c.items) > c.capacity || c.order[0].ts.Before(cutoff)) {
		oldest := c.order[0]
		c.order = c.order[1:]

		if ts, ok := c.items[oldest.key]; ok && ts.Equal(oldest.ts) {
			delete(c.items, oldest.key)
		}
	}
}

func cacheKey(kind, key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false
	}
	return kind + "\x00" + key, true
}
