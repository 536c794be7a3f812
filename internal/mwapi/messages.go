package mwapi

import (
	"encoding/json"

	"mwi-alchemist/internal/market"
)

const (
	// Inbound message types the client cares about. Everything else on the
	// game socket is ignored.
	msgOrderBooksUpdated = "market_item_order_books_updated"
	msgActionCompleted   = "action_completed"

	// Outbound request for a fresh order book snapshot.
	msgGetOrderBooks = "get_market_item_order_books"
)

// envelope carries the type tag every game message starts with. Payloads
// are decoded lazily once the type is known.
type envelope struct {
	Type string `json:"type"`

	MarketItemOrderBooks *orderBooksPayload `json:"marketItemOrderBooks,omitempty"`
}

// orderBooksPayload is the body of a market_item_order_books_updated push.
// Order books arrive as one array per enhancement level, best offer first.
type orderBooksPayload struct {
	ItemHrid   string            `json:"itemHrid"`
	OrderBooks market.OrderBooks `json:"orderBooks"`
}

// orderBooksRequest asks the server to publish a snapshot for one item.
// The answer comes back as a regular market_item_order_books_updated push,
// not as a direct reply.
type orderBooksRequest struct {
	Type     string `json:"type"`
	ItemHrid string `json:"itemHrid"`
}

func encodeOrderBooksRequest(itemHrid string) ([]byte, error) {
	return json.Marshal(orderBooksRequest{Type: msgGetOrderBooks, ItemHrid: itemHrid})
}
