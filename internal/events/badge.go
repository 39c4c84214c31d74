package events

import "sync"

// BadgeCache holds the last confirmed cart item count per session for the
// header badge. A cart-changed event invalidates the entry so the next badge
// read re-fetches instead of serving a stale count.
type BadgeCache struct {
	mu     sync.RWMutex
	counts map[string]int
	stop   func()
}

func NewBadgeCache(bus *Bus) *BadgeCache {
	c := &BadgeCache{counts: make(map[string]int)}
	ch, cancel := bus.Subscribe()
	c.stop = cancel
	go func() {
		for key := range ch {
			c.Invalidate(key)
		}
	}()
	return c
}

// Get returns the cached count and whether it is still valid.
func (c *BadgeCache) Get(sessionKey string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.counts[sessionKey]
	return n, ok
}

func (c *BadgeCache) Put(sessionKey string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[sessionKey] = count
}

func (c *BadgeCache) Invalidate(sessionKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, sessionKey)
}

func (c *BadgeCache) Close() {
	if c.stop != nil {
		c.stop()
	}
}
