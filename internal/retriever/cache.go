// File path: internal/retriever/cache.go
package retriever

import (
	"container/list"
	"sync"
)

type cacheEntry struct {
	pattern string
	matches []Match
}

// queryCache remembers the ranked matches of recent normalized queries for
// one index snapshot, evicting the least recently used pattern.
type queryCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	ll       *list.List
}

func newQueryCache(size int) *queryCache {
	if size <= 0 {
		return nil
	}
	return &queryCache{
		capacity: size,
		items:    make(map[string]*list.Element, size),
		ll:       list.New(),
	}
}

func (c *queryCache) get(pattern string) ([]Match, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[pattern]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(elem)
	return append([]Match(nil), elem.Value.(cacheEntry).matches...), true
}

func (c *queryCache) set(pattern string, matches []Match) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := append([]Match(nil), matches...)
	if elem, ok := c.items[pattern]; ok {
		elem.Value = cacheEntry{pattern: pattern, matches: stored}
		c.ll.MoveToFront(elem)
		return
	}
	c.items[pattern] = c.ll.PushFront(cacheEntry{pattern: pattern, matches: stored})
	if c.ll.Len() > c.capacity {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.items, tail.Value.(cacheEntry).pattern)
		}
	}
}

func (c *queryCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
