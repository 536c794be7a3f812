package market

// CoinHrid is the base currency item. It always trades 1:1 and market fees
// are waived on coin payouts.
const CoinHrid = "/items/coin"

// TierMissing marks an output price for an enhancement level the provider
// has no order book for, while data for the item itself exists. Distinct
// from 0, which means the provider had no data for the item at all.
const TierMissing = -1

// Offer is a single standing order on one side of a book.
type Offer struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// TierBook holds the standing orders for one enhancement level.
// Asks are sorted ascending, bids descending, so index 0 is the best offer.
type TierBook struct {
	Asks []Offer `json:"asks"`
	Bids []Offer `json:"bids"`
}

// OrderBooks is a full item snapshot, indexed by enhancement level.
// Snapshots are replaced wholesale on every update, never merged.
type OrderBooks []TierBook

// Tier returns the book for an enhancement level, if the snapshot covers it.
func (b OrderBooks) Tier(level int) (TierBook, bool) {
	if level < 0 || level >= len(b) {
		return TierBook{}, false
	}
	return b[level], true
}

// BestAsk returns the lowest standing sell price.
func (tb TierBook) BestAsk() (float64, bool) {
	if len(tb.Asks) == 0 {
		return 0, false
	}
	return tb.Asks[0].Price, true
}

// BestBid returns the highest standing buy price.
func (tb TierBook) BestBid() (float64, bool) {
	if len(tb.Bids) == 0 {
		return 0, false
	}
	return tb.Bids[0].Price, true
}

// Price is one side of a resolved quote. The zero value is unresolved:
// no quotable price could be obtained, and a profit computation that needs
// it must abort. A known value of 0 or TierMissing is still a resolved
// price — collapsing the two states would misclassify legitimate
// zero-value legs as blocking errors.
type Price struct {
	value float64
	known bool
}

// Known wraps a resolved price value.
func Known(v float64) Price {
	return Price{value: v, known: true}
}

// Unknown returns the unresolved price.
func Unknown() Price {
	return Price{}
}

// Known reports whether the price is resolved.
func (p Price) Known() bool {
	return p.known
}

// Value returns the price value, or 0 for an unresolved price.
func (p Price) Value() float64 {
	return p.value
}

// Quote pairs the best ask and best bid for one item at one enhancement level.
type Quote struct {
	Ask Price
	Bid Price
}
