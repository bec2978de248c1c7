package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/event-venue-booking/internal/model"
)

// ErrBookingNotFound is returned when a booking request ID does not exist.
var ErrBookingNotFound = errors.New("booking request not found")

// BookingRequestRepo provides persistence for booking requests.  A
// request is created by an organizer in PENDING status and decided
// exactly once by an admin.  The decision is a compare-and-set on
// the PENDING precondition so that two concurrent admins cannot
// both "succeed" on the same request.
type BookingRequestRepo struct {
    db *sql.DB
}

// NewBookingRequestRepo returns a new BookingRequestRepo bound to the given database.
func NewBookingRequestRepo(db *sql.DB) *BookingRequestRepo { return &BookingRequestRepo{db: db} }

const bookingColumns = `id, organizer_id, venue_id, event_name, event_description, event_date,
        start_time, end_time, expected_attendees, status, admin_notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (model.BookingRequest, error) {
    var b model.BookingRequest
    var desc, notes sql.NullString
    err := row.Scan(&b.ID, &b.OrganizerID, &b.VenueID, &b.EventName, &desc, &b.EventDate,
        &b.StartTime, &b.EndTime, &b.ExpectedAttendees, &b.Status, &notes, &b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        return model.BookingRequest{}, err
    }
    if desc.Valid {
        d := desc.String
        b.EventDescription = &d
    }
    if notes.Valid {
        n := notes.String
        b.AdminNotes = &n
    }
    return b, nil
}

// Create inserts a new request in PENDING status and populates the
// generated ID and timestamps on the provided record.
func (r *BookingRequestRepo) Create(ctx context.Context, b *model.BookingRequest) error {
    const q = `INSERT INTO booking_requests
               (organizer_id, venue_id, event_name, event_description, event_date, start_time, end_time, expected_attendees, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'PENDING')`
    res, err := r.db.ExecContext(ctx, q, b.OrganizerID, b.VenueID, b.EventName, b.EventDescription,
        b.EventDate, b.StartTime, b.EndTime, b.ExpectedAttendees)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    stored, err := r.GetByID(ctx, b.ID)
    if err != nil {
        return err
    }
    *b = stored
    return nil
}

// GetByID returns a single request or ErrBookingNotFound.
func (r *BookingRequestRepo) GetByID(ctx context.Context, id uint64) (model.BookingRequest, error) {
    const q = `SELECT ` + bookingColumns + ` FROM booking_requests WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.BookingRequest{}, ErrBookingNotFound
    }
    return b, err
}

// ListByOrganizer returns all requests submitted by the given
// organizer, newest first.
func (r *BookingRequestRepo) ListByOrganizer(ctx context.Context, organizerID uint64) ([]model.BookingRequest, error) {
    const q = `SELECT ` + bookingColumns + ` FROM booking_requests WHERE organizer_id = ? ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, organizerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.BookingRequest, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    return out, rows.Err()
}

// BookingRequestDetail joins a request with the venue and organizer
// it references for the admin review screen.
type BookingRequestDetail struct {
    ID                uint64  `json:"id"`
    VenueID           uint64  `json:"venue_id"`
    VenueName         string  `json:"venue_name"`
    VenueCapacity     uint32  `json:"venue_capacity"`
    OrganizerID       uint64  `json:"organizer_id"`
    OrganizerName     string  `json:"organizer_name"`
    EventName         string  `json:"event_name"`
    EventDescription  *string `json:"event_description,omitempty"`
    EventDate         string  `json:"event_date"`
    StartTime         string  `json:"start_time"`
    EndTime           string  `json:"end_time"`
    ExpectedAttendees uint32  `json:"expected_attendees"`
    Status            string  `json:"status"`
    AdminNotes        *string `json:"admin_notes,omitempty"`
}

// ListDetailed returns requests joined with venue and organizer
// details for admins.  When status is non-empty only requests in
// that status are returned.  Results are ordered newest first.
func (r *BookingRequestRepo) ListDetailed(ctx context.Context, status string) ([]BookingRequestDetail, error) {
    q := `SELECT b.id, b.venue_id, v.name, v.capacity, b.organizer_id, u.full_name,
                 b.event_name, b.event_description, b.event_date, b.start_time, b.end_time,
                 b.expected_attendees, b.status, b.admin_notes
          FROM booking_requests b
          JOIN venues v ON v.id = b.venue_id
          JOIN users u ON u.id = b.organizer_id`
    args := []interface{}{}
    if status != "" {
        q += ` WHERE b.status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY b.created_at DESC, b.id DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]BookingRequestDetail, 0)
    for rows.Next() {
        var d BookingRequestDetail
        var desc, notes sql.NullString
        var date, start, end sql.NullTime
        if err := rows.Scan(&d.ID, &d.VenueID, &d.VenueName, &d.VenueCapacity, &d.OrganizerID, &d.OrganizerName,
            &d.EventName, &desc, &date, &start, &end, &d.ExpectedAttendees, &d.Status, &notes); err != nil {
            return nil, err
        }
        if desc.Valid {
            s := desc.String
            d.EventDescription = &s
        }
        if notes.Valid {
            s := notes.String
            d.AdminNotes = &s
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
        out = append(out, d)
    }
    return out, rows.Err()
}

// Decide moves a PENDING request to APPROVED or REJECTED.  The
// transition is a single conditional UPDATE keyed on the PENDING
// status: when zero rows are affected the request was either
// already decided (ErrConflict) or never existed
// (ErrBookingNotFound).  On success the updated row is returned.
func (r *BookingRequestRepo) Decide(ctx context.Context, id uint64, outcome string, notes string) (model.BookingRequest, error) {
    var notesArg interface{}
    if notes != "" {
        notesArg = notes
    }
    const q = `UPDATE booking_requests SET status = ?, admin_notes = ? WHERE id = ? AND status = 'PENDING'`
    res, err := r.db.ExecContext(ctx, q, outcome, notesArg, id)
    if err != nil {
        return model.BookingRequest{}, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return model.BookingRequest{}, err
    }
    if n == 0 {
        // Distinguish "already decided" from "no such request".
        if _, err := r.GetByID(ctx, id); err != nil {
            return model.BookingRequest{}, err
        }
        return model.BookingRequest{}, ErrConflict
    }
    return r.GetByID(ctx, id)
}

// GetApprovedForOrganizer loads a request and verifies it is
// APPROVED, belongs to the organizer and targets the given venue.
// Event creation uses this to validate a booking_request_id link.
func (r *BookingRequestRepo) GetApprovedForOrganizer(ctx context.Context, id, organizerID, venueID uint64) (model.BookingRequest, error) {
    b, err := r.GetByID(ctx, id)
    if err != nil {
        return model.BookingRequest{}, err
    }
    if b.OrganizerID != organizerID {
        return model.BookingRequest{}, ErrForbidden
    }
    if b.Status != model.BookingApproved || b.VenueID != venueID {
        return model.BookingRequest{}, ErrConflict
    }
    return b, nil
}
