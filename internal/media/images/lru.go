package images

import (
	"container/list"
	"image"
	"sync"
)

// lruCache is a fixed-capacity LRU of decoded images keyed by image id.
// Thread-safe. Eviction drops the least recently used entry; the disk tier
// still holds the bytes, so eviction never loses data.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
}

type lruEntry struct {
	id  string
	img image.Image
}

func newLRUCache(capacity int) *lruCache {
	if capacity < 1 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached image for id and marks it most recently used.
func (c *lruCache) Get(id string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).img, true
}

// Put inserts or refreshes an entry, evicting the least recently used one
// when the cache is full.
func (c *lruCache) Put(id string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[id]; ok {
		elem.Value.(*lruEntry).img = img
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*lruEntry).id)
		}
	}

	c.entries[id] = c.order.PushFront(&lruEntry{id: id, img: img})
}

// Remove drops an entry if present.
func (c *lruCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[id]; ok {
		c.order.Remove(elem)
		delete(c.entries, id)
	}
}

// Len returns the number of cached entries.
func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every entry.
func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element, c.capacity)
}
