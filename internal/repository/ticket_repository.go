package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/iliyamo/event-venue-booking/internal/model"
)

// ErrTicketNotFound is returned when a ticket ID does not exist.
var ErrTicketNotFound = errors.New("ticket not found")

// codeAttempts bounds the retry loop on ticket code collisions.
// Codes carry 60 bits of randomness, so a second attempt is already
// vanishingly rare; the unique index is the actual guarantee.
const codeAttempts = 5

// TicketRepo provides persistence for tickets.  Tickets are only
// created through CreateBatchTx as part of a purchase transaction
// and are never deleted; cancellation and check-in are status
// transitions guarded by a compare-and-set on ACTIVE.
type TicketRepo struct {
    db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// NewTicketCode produces a shareable code like TKT-9F3A60C2D81B47E1.
// The 16 hex characters come from the random halves of a v4 UUID.
// Uniqueness across all tickets ever issued is enforced by the
// unique index on tickets.ticket_code, with a retry on collision.
func NewTicketCode() string {
    raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
    return "TKT-" + raw[:16]
}

const ticketColumns = `id, event_id, attendee_id, ticket_code, purchase_date, price_paid_cents, status, created_at`

func scanTicket(row interface{ Scan(...interface{}) error }) (model.Ticket, error) {
    var t model.Ticket
    err := row.Scan(&t.ID, &t.EventID, &t.AttendeeID, &t.TicketCode, &t.PurchaseDate,
        &t.PricePaidCents, &t.Status, &t.CreatedAt)
    return t, err
}

// CreateBatchTx inserts qty tickets for one purchase inside the
// transaction that already claimed the seats via ReserveTx.  Each
// ticket gets its own code and snapshots the event's current price.
// A duplicate-code insert (MySQL error 1062) is retried with a
// fresh code.
func (r *TicketRepo) CreateBatchTx(ctx context.Context, tx *sql.Tx, eventID, attendeeID uint64, qty uint32, priceCents uint32, purchasedAt time.Time) ([]model.Ticket, error) {
    const q = `INSERT INTO tickets (event_id, attendee_id, ticket_code, purchase_date, price_paid_cents, status)
               VALUES (?, ?, ?, ?, ?, 'ACTIVE')`
    tickets := make([]model.Ticket, 0, qty)
    for i := uint32(0); i < qty; i++ {
        var id int64
        inserted := false
        for attempt := 0; attempt < codeAttempts; attempt++ {
            code := NewTicketCode()
            res, err := tx.ExecContext(ctx, q, eventID, attendeeID, code, purchasedAt, priceCents)
            if err != nil {
                if strings.Contains(strings.ToLower(err.Error()), "1062") {
                    continue
                }
                return nil, err
            }
            id, err = res.LastInsertId()
            if err != nil {
                return nil, err
            }
            inserted = true
            break
        }
        if !inserted {
            return nil, errors.New("ticket code generation exhausted retries")
        }
        t, err := scanTicket(tx.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id))
        if err != nil {
            return nil, err
        }
        tickets = append(tickets, t)
    }
    return tickets, nil
}

// GetByID returns a single ticket or ErrTicketNotFound.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
    const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ?`
    t, err := scanTicket(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Ticket{}, ErrTicketNotFound
    }
    return t, err
}

// GetForUpdateTx loads a ticket with a row lock inside a
// transaction.  Cancel uses this so the status check, the status
// write and the seat release see one consistent row.
func (r *TicketRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Ticket, error) {
    const q = `SELECT ` + ticketColumns + ` FROM tickets WHERE id = ? FOR UPDATE`
    t, err := scanTicket(tx.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Ticket{}, ErrTicketNotFound
    }
    return t, err
}

// SetStatusTx performs the ACTIVE→to transition inside a
// transaction.  Zero affected rows means the ticket was not ACTIVE
// anymore and the caller should report ErrConflict.
func (r *TicketRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, to string) (bool, error) {
    const q = `UPDATE tickets SET status = ? WHERE id = ? AND status = 'ACTIVE'`
    res, err := tx.ExecContext(ctx, q, to, id)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// TicketDetail is the attendee wallet projection: a ticket joined
// with the event and venue it admits to.
type TicketDetail struct {
    ID             uint64 `json:"id"`
    TicketCode     string `json:"ticket_code"`
    Status         string `json:"status"`
    PricePaidCents uint32 `json:"price_paid_cents"`
    PurchaseDate   string `json:"purchase_date"`
    EventID        uint64 `json:"event_id"`
    EventName      string `json:"event_name"`
    EventDate      string `json:"event_date"`
    StartTime      string `json:"start_time"`
    VenueName      string `json:"venue_name"`
    VenueLocation  string `json:"venue_location"`
}

// ListByAttendee returns the attendee's tickets with event and
// venue details, newest purchase first.
func (r *TicketRepo) ListByAttendee(ctx context.Context, attendeeID uint64) ([]TicketDetail, error) {
    const q = `SELECT t.id, t.ticket_code, t.status, t.price_paid_cents, t.purchase_date,
                      e.id, e.name, e.event_date, e.start_time, v.name, v.location
               FROM tickets t
               JOIN events e ON e.id = t.event_id
               JOIN venues v ON v.id = e.venue_id
               WHERE t.attendee_id = ?
               ORDER BY t.purchase_date DESC, t.id DESC`
    rows, err := r.db.QueryContext(ctx, q, attendeeID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]TicketDetail, 0)
    for rows.Next() {
        var d TicketDetail
        var purchased, date, start sql.NullTime
        if err := rows.Scan(&d.ID, &d.TicketCode, &d.Status, &d.PricePaidCents, &purchased,
            &d.EventID, &d.EventName, &date, &start, &d.VenueName, &d.VenueLocation); err != nil {
            return nil, err
        }
        if purchased.Valid {
            d.PurchaseDate = purchased.Time.UTC().Format(time.RFC3339)
        }
        if date.Valid {
            d.EventDate = date.Time.UTC().Format("2006-01-02")
        }
        if start.Valid {
            d.StartTime = start.Time.UTC().Format("15:04")
        }
        out = append(out, d)
    }
    return out, rows.Err()
}

// RosterEntry is one row of the organizer's attendee roster for an
// event: the ticket plus who holds it.
type RosterEntry struct {
    ID             uint64 `json:"id"`
    TicketCode     string `json:"ticket_code"`
    Status         string `json:"status"`
    PricePaidCents uint32 `json:"price_paid_cents"`
    PurchaseDate   string `json:"purchase_date"`
    AttendeeID     uint64 `json:"attendee_id"`
    AttendeeName   string `json:"attendee_name"`
    AttendeeEmail  string `json:"attendee_email"`
}

// ListByEventForOrganizer returns the roster for an event after
// verifying the caller owns it.  It returns ErrEventNotFound when
// the event does not exist and ErrForbidden when it belongs to a
// different organizer.
func (r *TicketRepo) ListByEventForOrganizer(ctx context.Context, eventID, organizerID uint64) ([]RosterEntry, error) {
    const checkQ = `SELECT organizer_id FROM events WHERE id = ?`
    var owner uint64
    if err := r.db.QueryRowContext(ctx, checkQ, eventID).Scan(&owner); err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrEventNotFound
        }
        return nil, err
    }
    if owner != organizerID {
        return nil, ErrForbidden
    }
    const q = `SELECT t.id, t.ticket_code, t.status, t.price_paid_cents, t.purchase_date,
                      u.id, u.full_name, u.email
               FROM tickets t
               JOIN users u ON u.id = t.attendee_id
               WHERE t.event_id = ?
               ORDER BY t.purchase_date ASC, t.id ASC`
    rows, err := r.db.QueryContext(ctx, q, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]RosterEntry, 0)
    for rows.Next() {
        var e RosterEntry
        var purchased sql.NullTime
        if err := rows.Scan(&e.ID, &e.TicketCode, &e.Status, &e.PricePaidCents, &purchased,
            &e.AttendeeID, &e.AttendeeName, &e.AttendeeEmail); err != nil {
            return nil, err
        }
        if purchased.Valid {
            e.PurchaseDate = purchased.Time.UTC().Format(time.RFC3339)
        }
        out = append(out, e)
    }
    return out, rows.Err()
}
