package market

// Provider is the upstream market-data source. Requests are fire-and-forget:
// the answer, if any, arrives later through the push feed that writes into
// the Cache. There is no delivery guarantee and no way to cancel a request
// once issued.
type Provider interface {
	// Ready reports whether the provider handshake has completed. While
	// false, all fetch paths short-circuit to "no data" instead of queuing
	// doomed requests.
	Ready() bool

	// RequestOrderBooks asks the provider to publish a fresh snapshot for
	// the item. A synchronous error means the trigger could not be issued;
	// callers treat that identically to a request that never answers.
	RequestOrderBooks(itemHrid string) error
}
