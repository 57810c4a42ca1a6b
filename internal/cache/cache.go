// Package cache provides the in-process TTL cache backing the cart
// badge count. It keeps one integer per user so the badge query does
// not hit the database on every page render.
package cache

import (
	"sync"
	"time"
)

type CountCache interface {
	Get(key string) (int, bool)
	Set(key string, value int, ttl time.Duration)
	Delete(key string)
}

type entry struct {
	value     int
	expiresAt time.Time
}

type countCacheImpl struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewCountCache() CountCache {
	return &countCacheImpl{
		entries: make(map[string]entry),
	}
}

func (c *countCacheImpl) Get(key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return 0, false
	}

	return e.value, true
}

func (c *countCacheImpl) Set(key string, value int, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *countCacheImpl) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}
