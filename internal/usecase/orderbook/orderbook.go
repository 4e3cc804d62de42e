package orderbook

import (
	"container/heap"
	"fmt"
	"sort"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/batch-matcher/pkg/errors"
)

type registration struct {
	order    orderbookv1.Order
	original int64
}

// Orderbook is the book of one instrument. The bid and ask queues may hold stale entries; the
// registry decides which entries are live. It is owned by a single engine and is not safe for
// concurrent use.
type Orderbook struct {
	bids     *priorityQueue
	asks     *priorityQueue
	registry map[int64]*registration // orderID -> live order
	sequence int64
}

// NewOrderbook creates a new orderbook
func NewOrderbook() *Orderbook {
	return &Orderbook{
		bids:     newPriorityQueue(orderbookv1.SideBuy),
		asks:     newPriorityQueue(orderbookv1.SideSell),
		registry: make(map[int64]*registration),
	}
}

func (ob *Orderbook) queue(side orderbookv1.Side) *priorityQueue {
	switch side {
	case orderbookv1.SideBuy:
		return ob.bids
	case orderbookv1.SideSell:
		return ob.asks
	default:
		return nil
	}
}

// AddResting books a LIMIT order and registers it under a fresh insertion sequence.
func (ob *Orderbook) AddResting(order orderbookv1.Order, original int64) error {
	if order.IsMarket() {
		return errors.NewErrorDetails("market orders cannot rest in the book", errors.MarketOrderNotBookable, "type")
	}
	if order.Quantity <= 0 {
		return errors.NewErrorDetails("resting quantity must be positive", errors.InvalidQuantity, "quantity")
	}

	pq := ob.queue(order.Side)
	if pq == nil {
		return errors.NewErrorDetails(fmt.Sprintf("invalid side %q", order.Side), errors.InvalidBookSide, "side")
	}
	if _, exists := ob.registry[order.ID]; exists {
		return errors.NewErrorDetails(fmt.Sprintf("order with ID %d already exists", order.ID), errors.DuplicateOrderID, "order_id")
	}

	ob.sequence++
	order.Sequence = ob.sequence

	entry := order
	heap.Push(pq, &entry)
	ob.registry[order.ID] = &registration{order: order, original: original}

	return nil
}

// MarkRemoved drops id from the registry and leaves its entry in the queue to be
// discarded lazily. Removing an unknown id is a no-op.
func (ob *Orderbook) MarkRemoved(id int64, side orderbookv1.Side) bool {
	if !side.Valid() {
		return false
	}

	delete(ob.registry, id)
	return true
}

// PeekBestAlive pops stale entries off side until a live one is on top and returns it.
func (ob *Orderbook) PeekBestAlive(side orderbookv1.Side) (orderbookv1.Order, bool) {
	best := ob.peekBestAlive(side)
	if best == nil {
		return orderbookv1.Order{}, false
	}
	return *best, true
}

func (ob *Orderbook) peekBestAlive(side orderbookv1.Side) *orderbookv1.Order {
	pq := ob.queue(side)
	if pq == nil {
		return nil
	}

	for pq.Len() > 0 {
		top := pq.top()
		if ob.isAlive(side, top) {
			return top
		}
		heap.Pop(pq)
	}
	return nil
}

// isAlive matches an entry against the registry on id, side, sequence and quantity.
func (ob *Orderbook) isAlive(side orderbookv1.Side, entry *orderbookv1.Order) bool {
	reg, ok := ob.registry[entry.ID]
	if !ok {
		return false
	}
	return reg.order.Side == side &&
		reg.order.Sequence == entry.Sequence &&
		reg.order.Quantity == entry.Quantity
}

// FillBest reduces the best live order of side by quantity, in the queue and the registry.
func (ob *Orderbook) FillBest(side orderbookv1.Side, quantity int64) (orderbookv1.Order, error) {
	best := ob.peekBestAlive(side)
	if best == nil {
		return orderbookv1.Order{}, errors.NewErrorDetails(fmt.Sprintf("no live order on side %q", side), errors.NoLiquidity, "side")
	}
	if quantity <= 0 || quantity > best.Quantity {
		return orderbookv1.Order{}, errors.NewErrorDetails(
			fmt.Sprintf("fill of %d is outside (0, %d]", quantity, best.Quantity),
			errors.InvalidQuantity,
			"quantity",
		)
	}

	best.Quantity -= quantity
	filled := *best

	if best.IsFilled() {
		heap.Pop(ob.queue(side))
		delete(ob.registry, best.ID)
		return filled, nil
	}

	ob.registry[best.ID].order.Quantity = best.Quantity
	return filled, nil
}

// Lookup returns the live order registered under id.
func (ob *Orderbook) Lookup(id int64) (orderbookv1.RestingOrder, bool) {
	reg, ok := ob.registry[id]
	if !ok {
		return orderbookv1.RestingOrder{}, false
	}
	return orderbookv1.RestingOrder{Order: reg.order, Original: reg.original}, true
}

// Snapshot returns the live orders of side in priority order without touching the queue.
func (ob *Orderbook) Snapshot(side orderbookv1.Side) []orderbookv1.Order {
	pq := ob.queue(side)
	if pq == nil {
		return nil
	}

	orders := make([]orderbookv1.Order, 0, pq.Len())
	for _, entry := range pq.entries {
		if ob.isAlive(side, entry) {
			orders = append(orders, *entry)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return higherPriority(side, &orders[i], &orders[j])
	})
	return orders
}

// Len returns the number of physical entries of side, stale ones included.
func (ob *Orderbook) Len(side orderbookv1.Side) int {
	pq := ob.queue(side)
	if pq == nil {
		return 0
	}
	return pq.Len()
}

// LiveCount returns the number of registered orders of side.
func (ob *Orderbook) LiveCount(side orderbookv1.Side) int {
	count := 0
	for _, reg := range ob.registry {
		if reg.order.Side == side {
			count++
		}
	}
	return count
}
