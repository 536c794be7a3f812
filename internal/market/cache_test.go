package market

import (
	"testing"
	"time"
)

func bookWithAsk(price float64) OrderBooks {
	return OrderBooks{{Asks: []Offer{{Price: price, Quantity: 1}}}}
}

func TestCache_GetWithinTTL(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)
	c.Put("/items/lucky_elixir", bookWithAsk(100))

	books, ok := c.Get("/items/lucky_elixir")
	if !ok {
		t.Fatal("Get = miss, want hit")
	}
	ask, _ := books[0].BestAsk()
	if ask != 100 {
		t.Errorf("BestAsk = %v, want 100", ask)
	}
}

func TestCache_ExpiryBoundaryIsExclusive(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("/items/coin_pouch", bookWithAsk(5))

	// Exactly at TTL: still fresh.
	c.now = func() time.Time { return base.Add(300 * time.Second) }
	if _, ok := c.Get("/items/coin_pouch"); !ok {
		t.Fatal("entry aged exactly TTL should still be served")
	}

	// One instant past TTL: expired and evicted.
	c.now = func() time.Time { return base.Add(300*time.Second + time.Millisecond) }
	if _, ok := c.Get("/items/coin_pouch"); ok {
		t.Fatal("entry older than TTL should be absent")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after lazy eviction, want 0", c.Len())
	}
}

func TestCache_PutResetsAge(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("/items/amber", bookWithAsk(10))

	c.now = func() time.Time { return base.Add(299 * time.Second) }
	c.Put("/items/amber", bookWithAsk(20))

	c.now = func() time.Time { return base.Add(500 * time.Second) }
	books, ok := c.Get("/items/amber")
	if !ok {
		t.Fatal("overwritten entry should be fresh again")
	}
	ask, _ := books[0].BestAsk()
	if ask != 20 {
		t.Errorf("BestAsk = %v, want the newer snapshot's 20", ask)
	}
}

func TestCache_SweepIdempotent(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("/items/old_a", nil)
	c.Put("/items/old_b", nil)
	c.now = func() time.Time { return base.Add(200 * time.Second) }
	c.Put("/items/young", nil)

	c.now = func() time.Time { return base.Add(301 * time.Second) }
	if removed := c.Sweep(); removed != 2 {
		t.Fatalf("first Sweep removed %d, want 2", removed)
	}
	if removed := c.Sweep(); removed != 0 {
		t.Fatalf("second Sweep removed %d, want 0", removed)
	}
	if _, ok := c.Get("/items/young"); !ok {
		t.Error("Sweep must not touch entries younger than TTL")
	}
}

func TestCache_NoNegativeCaching(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)
	if _, ok := c.Get("/items/never_seen"); ok {
		t.Fatal("Get on unknown item = hit, want miss")
	}
	if c.Len() != 0 {
		t.Errorf("a miss must not create an entry, Len = %d", c.Len())
	}
}

func TestCache_WaitWokenByPut(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)

	arrived := c.Wait("/items/spaceberry")
	select {
	case <-arrived:
		t.Fatal("waiter fired before any Put")
	default:
	}

	c.Put("/items/spaceberry", bookWithAsk(7))
	select {
	case <-arrived:
	case <-time.After(time.Second):
		t.Fatal("waiter not woken by Put")
	}
}

func TestCache_ForgetRemovesAbandonedWaiter(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)

	w := c.Wait("/items/never_listed")
	c.Forget("/items/never_listed", w)

	c.mu.Lock()
	n := len(c.waiters)
	c.mu.Unlock()
	if n != 0 {
		t.Fatalf("waiters after Forget = %d, want 0", n)
	}

	// A later waiter starts over with a fresh channel.
	w2 := c.Wait("/items/never_listed")
	if w2 == w {
		t.Fatal("Wait after Forget should hand out a new channel")
	}
	c.Put("/items/never_listed", bookWithAsk(1))
	select {
	case <-w2:
	case <-time.After(time.Second):
		t.Fatal("fresh waiter not woken by Put")
	}
}

func TestCache_ForgetIgnoresStaleChannel(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)

	w := c.Wait("/items/sugar")
	c.Put("/items/sugar", bookWithAsk(2))
	w2 := c.Wait("/items/sugar")

	// Forget with the already-closed handle must not evict the new waiter.
	c.Forget("/items/sugar", w)

	c.Put("/items/sugar", bookWithAsk(3))
	select {
	case <-w2:
	case <-time.After(time.Second):
		t.Fatal("current waiter lost to a stale Forget")
	}
}

func TestCache_SharedWaiterChannel(t *testing.T) {
	c := NewCache(300*time.Second, time.Minute)

	w1 := c.Wait("/items/azure_cheese")
	w2 := c.Wait("/items/azure_cheese")
	if w1 != w2 {
		t.Fatal("waiters for the same item should share one channel")
	}

	c.Put("/items/azure_cheese", nil)
	<-w1
	<-w2

	// A waiter registered after the Put gets a fresh channel.
	w3 := c.Wait("/items/azure_cheese")
	select {
	case <-w3:
		t.Fatal("new waiter should not observe an old Put")
	default:
	}
}
