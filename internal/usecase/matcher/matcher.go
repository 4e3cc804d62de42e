package matcher

import (
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// Matcher matches incoming orders against a book by price-time priority.
type Matcher struct {
	book orderbookv1.Book
}

// NewMatcher creates a matcher over book.
func NewMatcher(book orderbookv1.Book) *Matcher {
	return &Matcher{book: book}
}

// TryMatch consumes the opposite side of the book for incoming until its quantity is
// exhausted or the best live resting order no longer crosses. Every trade is priced at
// the resting order, and the resting order's new state is reported as an impacted result
// stamped with the incoming timestamp.
func (m *Matcher) TryMatch(incoming orderbookv1.Order) orderbookv1.MatchResult {
	result := orderbookv1.MatchResult{Residual: incoming.Quantity}
	opposite := incoming.Side.Opposite()

	for result.Residual > 0 {
		resting, ok := m.book.PeekBestAlive(opposite)
		if !ok {
			break
		}
		// The best live order does not cross, so nothing behind it can.
		if !crosses(&incoming, &resting) {
			break
		}

		quantity := min(result.Residual, resting.Quantity)
		filled, err := m.book.FillBest(opposite, quantity)
		if err != nil {
			break
		}

		result.Trades = append(result.Trades, orderbookv1.NewTrade(&incoming, &resting, quantity))
		result.Residual -= quantity

		status := orderbookv1.StatusPartiallyExecuted
		if filled.IsFilled() {
			status = orderbookv1.StatusExecuted
		}
		filled.Timestamp = incoming.Timestamp
		result.Impacted = append(result.Impacted, orderbookv1.NewExecutionResult(
			filled,
			status,
			quantity,
			resting.Price,
			incoming.ID,
		))
	}

	return result
}

// crosses reports whether incoming may trade against resting. MARKET orders accept any price.
func crosses(incoming, resting *orderbookv1.Order) bool {
	if incoming.IsMarket() {
		return true
	}
	if incoming.IsBid() {
		return incoming.Price.GreaterThanOrEqual(resting.Price)
	}
	return resting.Price.GreaterThanOrEqual(incoming.Price)
}
