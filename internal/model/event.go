package model

import "time"

// Event represents a published event that attendees can buy tickets
// for.  Events are created by organizers, usually after a booking
// request for the venue has been approved.  CurrentAttendees starts
// at zero and is only ever changed by ticket sales and
// cancellations; organizer edits never touch it.
//
// Fields:
//  ID               – primary key identifier.
//  BookingRequestID – approved request this event originated from (nullable).
//  OrganizerID      – user who owns the event.
//  VenueID          – venue hosting the event.
//  Name             – event name.
//  Description      – optional description.
//  EventDate        – calendar date of the event.
//  StartTime        – when the event begins.
//  EndTime          – when the event ends (must be after StartTime).
//  TicketPriceCents – price of one ticket in cents.
//  MaxAttendees     – seat budget (≤ venue capacity, ≥ CurrentAttendees).
//  CurrentAttendees – seats sold so far (0 ≤ n ≤ MaxAttendees).
//  IsActive         – whether tickets can still be purchased.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Event struct {
    ID               uint64    // events.id
    BookingRequestID *uint64   // events.booking_request_id (nullable)
    OrganizerID      uint64    // events.organizer_id
    VenueID          uint64    // events.venue_id
    Name             string    // events.name
    Description      *string   // events.description (nullable)
    EventDate        time.Time // events.event_date
    StartTime        time.Time // events.start_time
    EndTime          time.Time // events.end_time
    TicketPriceCents uint32    // events.ticket_price_cents
    MaxAttendees     uint32    // events.max_attendees
    CurrentAttendees uint32    // events.current_attendees
    IsActive         bool      // events.is_active
    CreatedAt        time.Time // events.created_at
    UpdatedAt        time.Time // events.updated_at
}

// Remaining returns the number of tickets still available.
func (e *Event) Remaining() uint32 {
    if e.CurrentAttendees >= e.MaxAttendees {
        return 0
    }
    return e.MaxAttendees - e.CurrentAttendees
}

// IsFull reports whether every seat has been sold.
func (e *Event) IsFull() bool {
    return e.CurrentAttendees >= e.MaxAttendees
}

// CanAdmit reports whether qty additional tickets fit under the seat
// budget.  A zero or negative quantity is never admissible.
func (e *Event) CanAdmit(qty uint32) bool {
    return qty > 0 && qty <= e.Remaining()
}

// CanShrinkTo reports whether the seat budget may be lowered to n
// without cutting under seats that are already sold.
func (e *Event) CanShrinkTo(n uint32) bool {
    return n >= e.CurrentAttendees
}
