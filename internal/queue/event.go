// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketPurchasedEvent is published when a ticket purchase commits.
// It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type TicketPurchasedEvent struct {
    EventID         uint64   `json:"event_id"`
    EventName       string   `json:"event_name"`
    AttendeeID      uint64   `json:"attendee_id"`
    Quantity        uint32   `json:"quantity"`
    TicketCodes     []string `json:"ticket_codes"`
    TotalPriceCents uint64   `json:"total_price_cents"`
    PurchasedAt     string   `json:"purchased_at"`
}
