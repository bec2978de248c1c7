package model

import "time"

// Ticket status values.  A ticket is ACTIVE when issued.  It may be
// cancelled by its holder (freeing the seat) or marked used at
// check-in.  Both transitions are one-way and only legal from
// ACTIVE.  Tickets are never deleted.
const (
    TicketActive    = "ACTIVE"
    TicketCancelled = "CANCELLED"
    TicketUsed      = "USED"
)

// Ticket records a single admission sold to an attendee.  PricePaid
// snapshots the event's ticket price at purchase time and never
// changes afterwards, even if the organizer later edits the event
// price.
//
// Fields:
//  ID             – primary key identifier.
//  EventID        – event the ticket admits to.
//  AttendeeID     – user who bought the ticket.
//  TicketCode     – unique human-shareable code (TKT-...).
//  PurchaseDate   – when the ticket was bought.
//  PricePaidCents – price snapshot in cents.
//  Status         – ACTIVE, CANCELLED or USED.
//  CreatedAt      – creation timestamp.
type Ticket struct {
    ID             uint64    // tickets.id
    EventID        uint64    // tickets.event_id
    AttendeeID     uint64    // tickets.attendee_id
    TicketCode     string    // tickets.ticket_code
    PurchaseDate   time.Time // tickets.purchase_date
    PricePaidCents uint32    // tickets.price_paid_cents
    Status         string    // tickets.status
    CreatedAt      time.Time // tickets.created_at
}

// CanTransition reports whether a ticket in status from may move to
// status to.  The only legal moves are ACTIVE→CANCELLED and
// ACTIVE→USED.
func CanTransition(from, to string) bool {
    if from != TicketActive {
        return false
    }
    return to == TicketCancelled || to == TicketUsed
}
