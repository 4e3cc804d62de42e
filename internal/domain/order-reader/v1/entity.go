package orderreaderv1

// Columns is the field order of an input record.
var Columns = []string{"timestamp", "order_id", "instrument", "side", "type", "quantity", "price", "action"}

// RawOrder is an input record before validation. Every field is kept as text so that a
// malformed value still reaches the engine as an auditable BAD_INPUT event.
type RawOrder struct {
	Timestamp  string `json:"timestamp"`
	OrderID    string `json:"order_id"`
	Instrument string `json:"instrument"`
	Side       string `json:"side"`
	Type       string `json:"type"`
	Quantity   string `json:"quantity"`
	Price      string `json:"price"`
	Action     string `json:"action"`
}

// FromRecord maps a CSV record in Columns order to a RawOrder. ok is false when the
// record does not have exactly len(Columns) fields.
func FromRecord(record []string) (RawOrder, bool) {
	if len(record) != len(Columns) {
		return RawOrder{}, false
	}
	return RawOrder{
		Timestamp:  record[0],
		OrderID:    record[1],
		Instrument: record[2],
		Side:       record[3],
		Type:       record[4],
		Quantity:   record[5],
		Price:      record[6],
		Action:     record[7],
	}, true
}

// Record returns the fields in Columns order.
func (r RawOrder) Record() []string {
	return []string{r.Timestamp, r.OrderID, r.Instrument, r.Side, r.Type, r.Quantity, r.Price, r.Action}
}
