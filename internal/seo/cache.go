// internal/seo/cache.go
//
// Tiny LRU cache for materialized pages.  The live /api/seo endpoint
// serves the same payloads the static build produces; recomputing them
// per request would be cheap but pointless, so we keep a small
// keyed-by-(date, target) cache.  No external deps.
package seo

import (
	"container/list"

	"github.com/luvora/luvora/internal/pool"
)

type pageKey struct {
	date   string
	target pool.Target
}

// PageCache is a least-recently-used cache of *Page payloads.  Not safe
// for concurrent use; the web layer guards it with its own mutex.
type PageCache struct {
	cap  int
	ll   *list.List
	dict map[pageKey]*list.Element
}

type pageEntry struct {
	key  pageKey
	page *Page
}

// NewPageCache returns a cache with the given capacity.  Panics on
// cap < 1.
func NewPageCache(capacity int) *PageCache {
	if capacity < 1 {
		panic("seo: cache capacity must be ≥1")
	}
	return &PageCache{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[pageKey]*list.Element, capacity),
	}
}

// Get retrieves a cached page and marks it MRU.
func (c *PageCache) Get(date string, target pool.Target) (*Page, bool) {
	if ele, hit := c.dict[pageKey{date, target}]; hit {
		c.ll.MoveToFront(ele)
		return ele.Value.(pageEntry).page, true
	}
	return nil, false
}

// Add inserts or updates a page, evicting the LRU entry past capacity.
func (c *PageCache) Add(date string, target pool.Target, p *Page) {
	key := pageKey{date, target}
	if ele, hit := c.dict[key]; hit {
		ele.Value = pageEntry{key, p}
		c.ll.MoveToFront(ele)
		return
	}
	ele := c.ll.PushFront(pageEntry{key, p})
	c.dict[key] = ele
	if c.ll.Len() > c.cap {
		last := c.ll.Back()
		c.ll.Remove(last)
		delete(c.dict, last.Value.(pageEntry).key)
	}
}

// Len reports current size.
func (c *PageCache) Len() int { return c.ll.Len() }
