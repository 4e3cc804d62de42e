package orderbookv1

// Book is the order book of a single instrument: one priority ordering per side plus a
// liveness registry keyed by order id. The registry is authoritative; entries of the
// orderings that disagree with it are stale and are discarded when reached.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderbookv1_mock
type Book interface {
	// AddResting books order and registers it with its original requested quantity.
	// MARKET orders are refused.
	AddResting(order Order, original int64) error
	// MarkRemoved drops id from the registry only. It returns false if side is invalid.
	MarkRemoved(id int64, side Side) bool
	// PeekBestAlive returns the best live order of side, discarding stale entries on the way.
	PeekBestAlive(side Side) (Order, bool)
	// FillBest takes quantity from the best live order of side and returns its new state.
	// An order reduced to zero leaves the book and the registry.
	FillBest(side Side, quantity int64) (Order, error)
	// Lookup returns the registry entry for id.
	Lookup(id int64) (RestingOrder, bool)
	// Snapshot returns the live orders of side in priority order.
	Snapshot(side Side) []Order
	// Len returns the number of physical entries of side, stale ones included.
	Len(side Side) int
	// LiveCount returns the number of registered orders of side.
	LiveCount(side Side) int
}

// Matcher matches an incoming order against the opposite side of a Book.
type Matcher interface {
	TryMatch(incoming Order) MatchResult
}
