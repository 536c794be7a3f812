package market

import "context"

// Resolver turns an item identifier plus enhancement level into a best
// ask/bid quote, reading the cache first and falling back to a coalesced
// provider fetch on miss.
type Resolver struct {
	cache     *Cache
	coalescer *Coalescer
}

// NewResolver creates a resolver over the given cache and coalescer.
func NewResolver(cache *Cache, coalescer *Coalescer) *Resolver {
	return &Resolver{cache: cache, coalescer: coalescer}
}

// ResolvePrice returns the quote for an item at an enhancement level.
//
// The material flag selects the tier-miss policy: a material whose level
// has no data resolves to an unresolved price (blocking any profit
// computation that consumes it), while an output resolves to TierMissing
// when the snapshot exists without that level, or 0 when the provider had
// no data at all — a zero-value drop should not by itself block the
// computation.
func (r *Resolver) ResolvePrice(ctx context.Context, itemHrid string, level int, material bool) Quote {
	// Coin is the base currency: fixed 1:1, no market lookup.
	if itemHrid == CoinHrid {
		return Quote{Ask: Known(1), Bid: Known(1)}
	}

	books, ok := r.cache.Get(itemHrid)
	if !ok {
		books, ok = r.coalescer.Request(ctx, itemHrid)
	}
	return quoteAt(books, ok, level, material)
}

func quoteAt(books OrderBooks, ok bool, level int, material bool) Quote {
	if ok {
		if tb, found := books.Tier(level); found {
			if material {
				return Quote{Ask: bestOrUnknown(tb.Asks), Bid: bestOrUnknown(tb.Bids)}
			}
			return Quote{Ask: bestOrZero(tb.Asks), Bid: bestOrZero(tb.Bids)}
		}
	}

	switch {
	case material:
		return Quote{Ask: Unknown(), Bid: Unknown()}
	case ok:
		return Quote{Ask: Known(TierMissing), Bid: Known(TierMissing)}
	default:
		return Quote{Ask: Known(0), Bid: Known(0)}
	}
}

func bestOrUnknown(side []Offer) Price {
	if len(side) == 0 {
		return Unknown()
	}
	return Known(side[0].Price)
}

func bestOrZero(side []Offer) Price {
	if len(side) == 0 {
		return Known(0)
	}
	return Known(side[0].Price)
}
