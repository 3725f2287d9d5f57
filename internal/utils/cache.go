package utils

import (
	"os"
	"sync"
	"time"
)

// cacheItem holds a cached value together with the file metadata used for
// invalidation
type cacheItem[T any] struct {
	value   T
	modTime time.Time
	size    int64
}

// Cache is a generic cache keyed by file path with mtime/size invalidation
type Cache[V any] struct {
	items map[string]*cacheItem[V]
	mutex sync.RWMutex
}

// NewCache creates a new cache
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		items: make(map[string]*cacheItem[V]),
	}
}

// Get retrieves a cached value for path. A value is returned only while the
// file on disk still has the mtime and size recorded at Set time; a modified
// file evicts its stale entry.
func (c *Cache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	stat, err := os.Stat(path)
	if err == nil && stat.ModTime().Equal(item.modTime) && stat.Size() == item.size {
		return item.value, true
	}

	c.Delete(path)
	return zero, false
}

// Set stores a value for path, recording the file's current mtime and size
func (c *Cache[V]) Set(path string, value V) {
	stat, err := os.Stat(path)
	if err != nil {
		return // nothing to validate against later, skip caching
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items[path] = &cacheItem[V]{
		value:   value,
		modTime: stat.ModTime(),
		size:    stat.Size(),
	}
}

// Delete removes the entry for path
func (c *Cache[V]) Delete(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.items, path)
}

// Size returns the number of cached entries
func (c *Cache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}

// Clear removes all entries
func (c *Cache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items = make(map[string]*cacheItem[V])
}
