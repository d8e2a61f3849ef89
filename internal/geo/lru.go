package geo

import (
	"container/list"
	"sync"
)

// CacheStats reports assignment cache effectiveness.
type CacheStats struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Size     int   `json:"size"`
	Capacity int   `json:"capacity"`
}

// lruCache is a bounded least-recently-used cache of assignment results,
// keyed by normalized zipcode. Cached values are immutable once computed;
// the mutex protects only the internal bookkeeping.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	entries  map[string]*list.Element
	hits     int64
	misses   int64
}

type lruEntry struct {
	key string
	val Assignment
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		ll:       list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

func (c *lruCache) Get(key string) (Assignment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return Assignment{}, false
	}
	c.ll.MoveToFront(el)
	c.hits++
	return el.Value.(*lruEntry).val, true
}

func (c *lruCache) Add(key string, val Assignment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*lruEntry).val = val
		c.ll.MoveToFront(el)
		return
	}

	c.entries[key] = c.ll.PushFront(&lruEntry{key: key, val: val})

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry).key)
		}
	}
}

func (c *lruCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		Size:     c.ll.Len(),
		Capacity: c.capacity,
	}
}

// Reset clears entries and counters. Used between tests.
func (c *lruCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.entries = make(map[string]*list.Element, c.capacity)
	c.hits = 0
	c.misses = 0
}
