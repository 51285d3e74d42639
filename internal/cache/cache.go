package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/csaugo/analisevoc/internal/models"
)

// DefaultTTL is how long a search result stays reusable
const DefaultTTL = 15 * time.Minute

// Entry is one cached search result with its provenance
type Entry struct {
	Posts      []models.Post
	IsRealData bool
	Platform   models.Platform
	StoredAt   time.Time
}

// Cache is a process-wide in-memory store keyed by platform+query. Entries
// are replaced, never merged. Expiry is checked on read; Sweep removes
// expired entries so growth across distinct queries stays bounded.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache. now may be nil, in which case time.Now is used.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     now,
	}
}

// Key normalizes a query into its cache key. The platform prefix prevents
// cross-platform collisions on the raw query.
func Key(platform models.Platform, query string) string {
	return fmt.Sprintf("%s_%s", platform, strings.ToLower(strings.TrimSpace(query)))
}

// Get returns the cached entry for platform+query, or ok=false on a miss.
// An entry past its TTL or stored for another platform does not hit.
func (c *Cache) Get(platform models.Platform, query string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[Key(platform, query)]
	if !ok {
		return Entry{}, false
	}
	if entry.Platform != platform {
		return Entry{}, false
	}
	if c.now().Sub(entry.StoredAt) >= c.ttl {
		return Entry{}, false
	}
	return entry, true
}

// Put stores a search result, replacing any previous entry for the key
func (c *Cache) Put(platform models.Platform, query string, posts []models.Post, isRealData bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[Key(platform, query)] = Entry{
		Posts:      posts,
		IsRealData: isRealData,
		Platform:   platform,
		StoredAt:   c.now(),
	}
}

// Sweep removes expired entries and returns how many were dropped
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.StoredAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
