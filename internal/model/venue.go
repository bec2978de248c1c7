package model

import "time"

// Venue represents a physical location that organizers can book for
// events.  Venues are created and maintained by admins.  Capacity
// bounds both the expected attendee count of booking requests and
// the max_attendees of events held at the venue.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – human readable venue name.
//  Description      – optional free-form description.
//  Location         – address or area of the venue.
//  Capacity         – maximum occupancy (must be positive).
//  PricePerDayCents – daily rental price in cents.
//  Amenities        – ordered list of amenity labels.
//  IsActive         – whether the venue can accept new bookings.
//  CreatedBy        – admin user who created the venue.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Venue struct {
    ID               uint64    // venues.id
    Name             string    // venues.name
    Description      *string   // venues.description (nullable)
    Location         string    // venues.location
    Capacity         uint32    // venues.capacity
    PricePerDayCents uint32    // venues.price_per_day_cents
    Amenities        []string  // venues.amenities (comma separated in DB)
    IsActive         bool      // venues.is_active
    CreatedBy        uint64    // venues.created_by
    CreatedAt        time.Time // venues.created_at
    UpdatedAt        time.Time // venues.updated_at
}
