package entities

// Event is the read-only view of an event row owned by the backend data store.
//
// TicketPrice is the price of the cheapest batch currently on sale. Zero means
// the catalog does not expose a price and the amount check is skipped.
type Event struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TicketPrice   float64 `json:"ticket_price"`
	ActiveBatches int     `json:"active_batches"`
	Active        bool    `json:"active"`
}

// TicketBatch is one priced lot of tickets (general, VIP, ...) of an event.
type TicketBatch struct {
	ID      string  `json:"id"`
	EventID string  `json:"event_id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Active  bool    `json:"active"`
}
