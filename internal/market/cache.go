package market

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	books     OrderBooks
	fetchedAt time.Time
}

// Cache is a thread-safe in-memory TTL cache of item order-book snapshots.
// It is the single shared store between the push-update writer and the
// resolver/coalescer readers. Entries expire strictly after the TTL and
// misses are never cached.
type Cache struct {
	ttl        time.Duration
	sweepEvery time.Duration
	now        func() time.Time // overridable in tests

	mu      sync.Mutex
	entries map[string]*cacheEntry
	waiters map[string]chan struct{}
}

// NewCache creates an empty cache with the given entry TTL and sweep period.
func NewCache(ttl, sweepEvery time.Duration) *Cache {
	return &Cache{
		ttl:        ttl,
		sweepEvery: sweepEvery,
		now:        time.Now,
		entries:    make(map[string]*cacheEntry),
		waiters:    make(map[string]chan struct{}),
	}
}

// Put stores a fresh snapshot for an item, replacing any previous entry,
// and wakes every waiter blocked on that item. Safe under duplicate
// deliveries: a second identical Put just resets the entry's age.
func (c *Cache) Put(itemHrid string, books OrderBooks) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[itemHrid] = &cacheEntry{books: books, fetchedAt: c.now()}
	if ch, ok := c.waiters[itemHrid]; ok {
		close(ch)
		delete(c.waiters, itemHrid)
	}
}

// Get returns the snapshot for an item if a non-expired entry exists.
// Expired entries are evicted on sight.
func (c *Cache) Get(itemHrid string) (OrderBooks, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[itemHrid]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) > c.ttl {
		delete(c.entries, itemHrid)
		return nil, false
	}
	return e.books, true
}

// Wait returns a channel that is closed on the next Put for the item.
// Waiters for the same item share one channel.
func (c *Cache) Wait(itemHrid string) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch, ok := c.waiters[itemHrid]
	if !ok {
		ch = make(chan struct{})
		c.waiters[itemHrid] = ch
	}
	return ch
}

// Forget discards the waiter channel for an item if it is still the one
// returned by Wait. A waiter that gives up must call this, or channels for
// items that never receive a Put accumulate forever.
func (c *Cache) Forget(itemHrid string, ch <-chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.waiters[itemHrid]; ok && cur == ch {
		delete(c.waiters, itemHrid)
	}
}

// Sweep removes every expired entry and returns how many were evicted.
// Idempotent: a second call right after finds nothing left to remove.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for item, e := range c.entries {
		if now.Sub(e.fetchedAt) > c.ttl {
			delete(c.entries, item)
			removed++
		}
	}
	return removed
}

// Len returns the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Start runs the periodic sweeper until the context is cancelled.
func (c *Cache) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}
