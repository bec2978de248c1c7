package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/event-venue-booking/internal/model"
)

// ErrEventNotFound is returned when an event ID does not exist or
// the event is no longer active where an active one is required.
var ErrEventNotFound = errors.New("event not found")

// EventRepo provides persistence for events.  The
// current_attendees column is owned by the ticketing flow: it is
// only ever changed through ReserveTx and ReleaseTx, both of which
// are conditional updates, never through Update.
type EventRepo struct {
    db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle so the ticketing handler can run
// the reserve-and-insert sequence in one transaction.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, booking_request_id, organizer_id, venue_id, name, description, event_date,
        start_time, end_time, ticket_price_cents, max_attendees, current_attendees, is_active, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (model.Event, error) {
    var e model.Event
    var bookingID sql.NullInt64
    var desc sql.NullString
    err := row.Scan(&e.ID, &bookingID, &e.OrganizerID, &e.VenueID, &e.Name, &desc, &e.EventDate,
        &e.StartTime, &e.EndTime, &e.TicketPriceCents, &e.MaxAttendees, &e.CurrentAttendees,
        &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
    if err != nil {
        return model.Event{}, err
    }
    if bookingID.Valid {
        id := uint64(bookingID.Int64)
        e.BookingRequestID = &id
    }
    if desc.Valid {
        d := desc.String
        e.Description = &d
    }
    return e, nil
}

// Create inserts a new event with current_attendees = 0 and
// populates the generated ID and timestamps on the provided record.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
    const q = `INSERT INTO events
               (booking_request_id, organizer_id, venue_id, name, description, event_date, start_time, end_time,
                ticket_price_cents, max_attendees, current_attendees, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`
    var bookingArg interface{}
    if e.BookingRequestID != nil {
        bookingArg = *e.BookingRequestID
    }
    res, err := r.db.ExecContext(ctx, q, bookingArg, e.OrganizerID, e.VenueID, e.Name, e.Description,
        e.EventDate, e.StartTime, e.EndTime, e.TicketPriceCents, e.MaxAttendees, e.IsActive)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    e.ID = uint64(id)
    stored, err := r.GetByID(ctx, e.ID)
    if err != nil {
        return err
    }
    *e = stored
    return nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
    const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
    e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Event{}, ErrEventNotFound
    }
    return e, err
}

// ListByOrganizer returns all events owned by the given organizer,
// newest first, including deactivated ones.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.Event, error) {
    const q = `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = ? ORDER BY created_at DESC, id DESC`
    return r.list(ctx, q, organizerID)
}

// ListActive returns all active events, newest first.  This feeds
// the public browse endpoint.
func (r *EventRepo) ListActive(ctx context.Context) ([]model.Event, error) {
    const q = `SELECT ` + eventColumns + ` FROM events WHERE is_active = 1 ORDER BY event_date ASC, id ASC`
    return r.list(ctx, q)
}

func (r *EventRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Event, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Event, 0)
    for rows.Next() {
        e, err := scanEvent(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, e)
    }
    return out, rows.Err()
}

// EventWithVenue is the denormalized projection served to browsing
// attendees: the event plus its venue's name and location and the
// organizer's display name.
type EventWithVenue struct {
    ID               uint64  `json:"id"`
    Name             string  `json:"name"`
    Description      *string `json:"description,omitempty"`
    EventDate        string  `json:"event_date"`
    StartTime        string  `json:"start_time"`
    EndTime          string  `json:"end_time"`
    TicketPriceCents uint32  `json:"ticket_price_cents"`
    MaxAttendees     uint32  `json:"max_attendees"`
    CurrentAttendees uint32  `json:"current_attendees"`
    Remaining        uint32  `json:"remaining"`
    IsActive         bool    `json:"is_active"`
    VenueID          uint64  `json:"venue_id"`
    VenueName        string  `json:"venue_name"`
    VenueLocation    string  `json:"venue_location"`
    OrganizerID      uint64  `json:"organizer_id"`
    OrganizerName    string  `json:"organizer_name"`
}

// GetWithVenue returns the joined projection for one event or
// ErrEventNotFound.
func (r *EventRepo) GetWithVenue(ctx context.Context, id uint64) (*EventWithVenue, error) {
    const q = `SELECT e.id, e.name, e.description, e.event_date, e.start_time, e.end_time,
                      e.ticket_price_cents, e.max_attendees, e.current_attendees, e.is_active,
                      v.id, v.name, v.location, u.id, u.full_name
               FROM events e
               JOIN venues v ON v.id = e.venue_id
               JOIN users u ON u.id = e.organizer_id
               WHERE e.id = ?`
    var d EventWithVenue
    var desc sql.NullString
    var date, start, end sql.NullTime
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &d.ID, &d.Name, &desc, &date, &start, &end,
        &d.TicketPriceCents, &d.MaxAttendees, &d.CurrentAttendees, &d.IsActive,
        &d.VenueID, &d.VenueName, &d.VenueLocation, &d.OrganizerID, &d.OrganizerName,
    )
    if err == sql.ErrNoRows {
        return nil, ErrEventNotFound
    }
    if err != nil {
        return nil, err
    }
    if desc.Valid {
        s := desc.String
        d.Description = &s
    }
    if date.Valid {
        d.EventDate = date.Time.UTC().Format("2006-01-02")
    }
    if start.Valid {
        d.StartTime = start.Time.UTC().Format("15:04")
    }
    if end.Valid {
        d.EndTime = end.Time.UTC().Format("15:04")
    }
    if d.CurrentAttendees < d.MaxAttendees {
        d.Remaining = d.MaxAttendees - d.CurrentAttendees
    }
    return &d, nil
}

// EventUpdate lists the event fields an organizer may change.
// current_attendees is deliberately absent: that column belongs to
// the ticketing flow.
type EventUpdate struct {
    Name             *string
    Description      *string
    EventDate        *string
    StartTime        *string
    EndTime          *string
    TicketPriceCents *uint32
    MaxAttendees     *uint32
}

// Update applies a partial organizer edit.  The event row is locked
// for the duration so the sold-seat check cannot race a concurrent
// purchase.  It returns ErrForbidden when the caller does not own
// the event and ErrConflict when max_attendees would drop below the
// seats already sold or exceed the venue capacity.
func (r *EventRepo) Update(ctx context.Context, id, organizerID uint64, upd EventUpdate) (model.Event, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.Event{}, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const cur = `SELECT e.organizer_id, e.current_attendees, v.capacity
                 FROM events e JOIN venues v ON v.id = e.venue_id
                 WHERE e.id = ? FOR UPDATE`
    var owner uint64
    var sold, venueCap uint32
    if err := tx.QueryRowContext(ctx, cur, id).Scan(&owner, &sold, &venueCap); err != nil {
        if err == sql.ErrNoRows {
            return model.Event{}, ErrEventNotFound
        }
        return model.Event{}, err
    }
    if owner != organizerID {
        return model.Event{}, ErrForbidden
    }
    if upd.MaxAttendees != nil {
        if *upd.MaxAttendees < sold || *upd.MaxAttendees > venueCap {
            return model.Event{}, ErrConflict
        }
    }

    set := make([]string, 0, 7)
    args := make([]interface{}, 0, 8)
    if upd.Name != nil {
        set = append(set, "name = ?")
        args = append(args, *upd.Name)
    }
    if upd.Description != nil {
        set = append(set, "description = ?")
        args = append(args, *upd.Description)
    }
    if upd.EventDate != nil {
        set = append(set, "event_date = ?")
        args = append(args, *upd.EventDate)
    }
    if upd.StartTime != nil {
        set = append(set, "start_time = ?")
        args = append(args, *upd.StartTime)
    }
    if upd.EndTime != nil {
        set = append(set, "end_time = ?")
        args = append(args, *upd.EndTime)
    }
    if upd.TicketPriceCents != nil {
        set = append(set, "ticket_price_cents = ?")
        args = append(args, *upd.TicketPriceCents)
    }
    if upd.MaxAttendees != nil {
        set = append(set, "max_attendees = ?")
        args = append(args, *upd.MaxAttendees)
    }
    if len(set) > 0 {
        args = append(args, id)
        if _, err := tx.ExecContext(ctx, `UPDATE events SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
            return model.Event{}, err
        }
    }

    e, err := scanEvent(tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
    if err != nil {
        return model.Event{}, err
    }
    if err := tx.Commit(); err != nil {
        return model.Event{}, err
    }
    committed = true
    return e, nil
}

// Deactivate soft-deletes an event.  Tickets already sold remain on
// record; the event just stops selling.  Returns ErrForbidden when
// the caller does not own the event.
func (r *EventRepo) Deactivate(ctx context.Context, id, organizerID uint64) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE events SET is_active = 0 WHERE id = ? AND organizer_id = ?`, id, organizerID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // Either the event is missing or it belongs to someone else.
        if _, err := r.GetByID(ctx, id); err != nil {
            return err
        }
        return ErrForbidden
    }
    return nil
}

// ReserveTx claims qty seats on an event inside an existing
// transaction.  The increment is a single conditional UPDATE so the
// capacity check and the write cannot be separated by a concurrent
// purchase: when two buyers race for the last seats, at most one
// statement finds the guard satisfied.  Zero affected rows means
// the event is missing or inactive (ErrEventNotFound) or the
// remaining seats do not cover qty (CapacityError with the actual
// remainder).  On success the updated event row is returned for the
// price snapshot.
func (r *EventRepo) ReserveTx(ctx context.Context, tx *sql.Tx, eventID uint64, qty uint32) (model.Event, error) {
    const q = `UPDATE events
               SET current_attendees = current_attendees + ?
               WHERE id = ? AND is_active = 1 AND current_attendees + ? <= max_attendees`
    res, err := tx.ExecContext(ctx, q, qty, eventID, qty)
    if err != nil {
        return model.Event{}, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return model.Event{}, err
    }
    if n == 0 {
        e, err := scanEvent(tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, eventID))
        if err == sql.ErrNoRows {
            return model.Event{}, ErrEventNotFound
        }
        if err != nil {
            return model.Event{}, err
        }
        if !e.IsActive {
            return model.Event{}, ErrEventNotFound
        }
        return model.Event{}, &CapacityError{EventID: eventID, Requested: qty, Remaining: e.Remaining()}
    }
    return scanEvent(tx.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, eventID))
}

// ReleaseTx gives one seat back after a ticket cancellation.  The
// guard keeps current_attendees from ever going negative.
func (r *EventRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, eventID uint64) error {
    const q = `UPDATE events
               SET current_attendees = current_attendees - 1
               WHERE id = ? AND current_attendees > 0`
    _, err := tx.ExecContext(ctx, q, eventID)
    return err
}
