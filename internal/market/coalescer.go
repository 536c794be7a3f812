package market

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// pending is one queued fetch request. done is buffered so the drain loop
// never blocks on a caller that gave up.
type pending struct {
	itemHrid string
	done     chan OrderBooks
}

// Coalescer bounds the rate and concurrency of provider fetches while still
// serving every caller. Queued requests drain in fixed-size batches with a
// pause between batches; within a batch every item is handled in parallel.
// A singleflight.Group on top of the queue lets concurrent requesters for
// the same item share a single outcome.
type Coalescer struct {
	cache    *Cache
	provider Provider

	batchSize int
	pause     time.Duration
	timeout   time.Duration

	group singleflight.Group

	mu       sync.Mutex
	queue    []*pending
	draining bool
	closed   bool
}

// NewCoalescer creates a coalescer in front of the given cache and provider.
func NewCoalescer(cache *Cache, provider Provider, batchSize int, pause, timeout time.Duration) *Coalescer {
	return &Coalescer{
		cache:     cache,
		provider:  provider,
		batchSize: batchSize,
		pause:     pause,
		timeout:   timeout,
	}
}

// Request fetches the freshest snapshot for an item, queueing a provider
// fetch on cache miss. It returns (nil, false) when no data could be
// obtained within the per-item timeout — absence is an expected state, not
// an error. While the provider is unready it returns absent immediately.
func (c *Coalescer) Request(ctx context.Context, itemHrid string) (OrderBooks, bool) {
	if !c.provider.Ready() {
		return nil, false
	}

	v, _, _ := c.group.Do(itemHrid, func() (interface{}, error) {
		p := &pending{itemHrid: itemHrid, done: make(chan OrderBooks, 1)}
		if !c.enqueue(p) {
			return OrderBooks(nil), nil
		}
		select {
		case books := <-p.done:
			return books, nil
		case <-ctx.Done():
			return OrderBooks(nil), nil
		}
	})

	books, _ := v.(OrderBooks)
	return books, books != nil
}

// enqueue appends a request and starts the drain loop if idle.
func (c *Coalescer) enqueue(p *pending) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.queue = append(c.queue, p)
	start := !c.draining
	if start {
		c.draining = true
	}
	c.mu.Unlock()

	if start {
		go c.drain()
	}
	return true
}

// drain processes the queue in batches until it is empty. Only one drain
// loop runs at a time; the draining flag is the guard.
func (c *Coalescer) drain() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.draining = false
			c.mu.Unlock()
			return
		}
		n := c.batchSize
		if n > len(c.queue) {
			n = len(c.queue)
		}
		batch := c.queue[:n:n]
		c.queue = c.queue[n:]
		c.mu.Unlock()

		var wg sync.WaitGroup
		for _, p := range batch {
			wg.Add(1)
			go func(p *pending) {
				defer wg.Done()
				c.fetchOne(p)
			}(p)
		}
		wg.Wait()

		c.mu.Lock()
		more := len(c.queue) > 0
		c.mu.Unlock()
		if more {
			time.Sleep(c.pause)
		}
	}
}

// fetchOne resolves a single queued request: recheck the cache, trigger the
// provider, then wait for a push update until the timeout. The request
// always resolves with whatever the cache holds at that point.
func (c *Coalescer) fetchOne(p *pending) {
	// Another caller or a push update may have satisfied this item while it
	// sat in the queue; don't re-issue a redundant fetch.
	if books, ok := c.cache.Get(p.itemHrid); ok {
		p.done <- books
		return
	}

	arrived := c.cache.Wait(p.itemHrid)

	// A push may have landed between the miss above and the waiter
	// registration; without this recheck such a request would sit out the
	// full timeout for data it already has.
	if books, ok := c.cache.Get(p.itemHrid); ok {
		c.cache.Forget(p.itemHrid, arrived)
		p.done <- books
		return
	}

	// Best effort: a trigger that fails to issue behaves exactly like one
	// that never answers, so the error is swallowed here.
	_ = c.provider.RequestOrderBooks(p.itemHrid)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case <-arrived:
	case <-timer.C:
		c.cache.Forget(p.itemHrid, arrived)
	}

	books, _ := c.cache.Get(p.itemHrid)
	p.done <- books
}

// Close flushes the queue, resolving every pending request as absent.
// Requests made after Close resolve absent immediately. A batch already in
// flight still completes.
func (c *Coalescer) Close() {
	c.mu.Lock()
	flushed := c.queue
	c.queue = nil
	c.closed = true
	c.mu.Unlock()

	for _, p := range flushed {
		p.done <- nil
	}
}
