package cache

import (
	"sync"
	"time"

	"github.com/IAMC-DH/my-site-template/internal/config"
)

type entry struct {
	value config.Object
	exp   time.Time
}

// Cache is a keyed TTL read cache for stored content records.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (c *Cache) Get(key string) (config.Object, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.exp) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value config.Object) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, exp: time.Now().Add(c.ttl)}
}

func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
