package orderreader

import (
	"sort"

	orderbookv1 "github.com/muhammadchandra19/batch-matcher/internal/domain/orderbook/v1"
)

// GroupByInstrument splits events by instrument, keeping delivery order inside each
// group, and returns the instruments in ascending order.
func GroupByInstrument(orders []orderbookv1.Order) (map[string][]orderbookv1.Order, []string) {
	groups := make(map[string][]orderbookv1.Order)
	for _, order := range orders {
		groups[order.Instrument] = append(groups[order.Instrument], order)
	}

	instruments := make([]string, 0, len(groups))
	for instrument := range groups {
		instruments = append(instruments, instrument)
	}
	sort.Strings(instruments)

	return groups, instruments
}
