package model

import "time"

// Booking request status values.  A request starts as PENDING and is
// moved exactly once by an admin to APPROVED or REJECTED.  There are
// no further transitions after a decision.
const (
    BookingPending  = "PENDING"
    BookingApproved = "APPROVED"
    BookingRejected = "REJECTED"
)

// BookingRequest is an organizer's proposal to hold an event at a
// venue.  The proposed event details are captured so that an admin
// can evaluate the request against the venue's capacity and
// schedule.  Approval does not create the event automatically; the
// organizer creates it afterwards and may reference the approved
// request.
//
// Fields:
//  ID                – primary key identifier.
//  OrganizerID       – user who submitted the request.
//  VenueID           – venue being requested.
//  EventName         – proposed event name.
//  EventDescription  – optional proposed description.
//  EventDate         – proposed calendar date of the event.
//  StartTime         – proposed start of the event.
//  EndTime           – proposed end of the event (after StartTime).
//  ExpectedAttendees – anticipated head count (≤ venue capacity).
//  Status            – PENDING, APPROVED or REJECTED.
//  AdminNotes        – decision notes; required on rejection.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type BookingRequest struct {
    ID                uint64    // booking_requests.id
    OrganizerID       uint64    // booking_requests.organizer_id
    VenueID           uint64    // booking_requests.venue_id
    EventName         string    // booking_requests.event_name
    EventDescription  *string   // booking_requests.event_description (nullable)
    EventDate         time.Time // booking_requests.event_date
    StartTime         time.Time // booking_requests.start_time
    EndTime           time.Time // booking_requests.end_time
    ExpectedAttendees uint32    // booking_requests.expected_attendees
    Status            string    // booking_requests.status
    AdminNotes        *string   // booking_requests.admin_notes (nullable)
    CreatedAt         time.Time // booking_requests.created_at
    UpdatedAt         time.Time // booking_requests.updated_at
}

// IsDecided reports whether the request has already been approved or
// rejected.  Decided requests are terminal.
func (b *BookingRequest) IsDecided() bool {
    return b.Status == BookingApproved || b.Status == BookingRejected
}

// ValidDecision reports whether the given outcome and notes form a
// legal decision.  Only APPROVED and REJECTED are accepted, and a
// rejection must carry non-empty notes explaining the refusal.
func ValidDecision(outcome, notes string) bool {
    switch outcome {
    case BookingApproved:
        return true
    case BookingRejected:
        return notes != ""
    }
    return false
}
