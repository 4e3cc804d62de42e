package orderbook

import (
	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// priorityQueue holds the physical entries of one side. It implements heap.Interface;
// entries are never removed from the middle, only popped from the top.
type priorityQueue struct {
	side    orderbookv1.Side
	entries []*orderbookv1.Order
}

func newPriorityQueue(side orderbookv1.Side) *priorityQueue {
	return &priorityQueue{side: side}
}

func (pq *priorityQueue) Len() int { return len(pq.entries) }

func (pq *priorityQueue) Less(i, j int) bool {
	return higherPriority(pq.side, pq.entries[i], pq.entries[j])
}

func (pq *priorityQueue) Swap(i, j int) {
	pq.entries[i], pq.entries[j] = pq.entries[j], pq.entries[i]
}

func (pq *priorityQueue) Push(x any) {
	pq.entries = append(pq.entries, x.(*orderbookv1.Order))
}

func (pq *priorityQueue) Pop() any {
	old := pq.entries
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.entries = old[:n-1]
	return item
}

func (pq *priorityQueue) top() *orderbookv1.Order {
	if len(pq.entries) == 0 {
		return nil
	}
	return pq.entries[0]
}

// higherPriority ranks bids by descending price and asks by ascending price, then both
// by ascending timestamp and insertion sequence.
func higherPriority(side orderbookv1.Side, a, b *orderbookv1.Order) bool {
	if cmp := a.Price.Cmp(b.Price); cmp != 0 {
		if side == orderbookv1.SideBuy {
			return cmp > 0
		}
		return cmp < 0
	}
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.Sequence < b.Sequence
}
