package market

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/NemoBot_Go/internal/domain"
)

// playerCache holds player snapshots keyed by user ID. Entries expire after
// the TTL and are dropped whenever a committed operation touches the user.
//
// A fill races with invalidation: a snapshot read before a commit may reach
// Set after that commit's Invalidate. Fills therefore carry the generation
// observed before the read and are discarded if any invalidation happened
// since.
type playerCache struct {
	mu         sync.Mutex
	generation uint64
	lru        *expirable.LRU[int64, domain.PlayerSnapshot]
}

func newPlayerCache(size int, ttl time.Duration) *playerCache {
	if size <= 0 {
		size = DefaultPlayerCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultPlayerCacheTTL
	}
	return &playerCache{
		lru: expirable.NewLRU[int64, domain.PlayerSnapshot](size, nil, ttl),
	}
}

// Get returns a copy so callers cannot mutate the cached item map.
func (c *playerCache) Get(userID int64) (domain.PlayerSnapshot, bool) {
	p, ok := c.lru.Get(userID)
	if !ok {
		return domain.PlayerSnapshot{}, false
	}
	return p.Clone(), true
}

// Generation is taken before reading a snapshot and handed back to Set.
func (c *playerCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Set stores p unless an invalidation happened after gen was taken. It
// reports whether p was stored.
func (c *playerCache) Set(p domain.PlayerSnapshot, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.lru.Add(p.UserID, p.Clone())
	return true
}

func (c *playerCache) Invalidate(userIDs ...int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for _, id := range userIDs {
		c.lru.Remove(id)
	}
}

func (c *playerCache) Len() int {
	return c.lru.Len()
}
