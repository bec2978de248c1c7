package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/event-venue-booking/internal/model"
)

// ErrVenueNotFound is returned when a venue ID does not exist.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo provides CRUD operations over the venues table.  Venues
// are managed exclusively by admins; organizers and attendees only
// read them.  Amenities are persisted as a comma separated string
// and split back into a slice when scanning.
type VenueRepo struct {
    db *sql.DB
}

// NewVenueRepo returns a new VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *VenueRepo) DB() *sql.DB { return r.db }

const venueColumns = `id, name, description, location, capacity, price_per_day_cents, amenities, is_active, created_by, created_at, updated_at`

func scanVenue(row interface{ Scan(...interface{}) error }) (model.Venue, error) {
    var v model.Venue
    var desc sql.NullString
    var amenities string
    err := row.Scan(&v.ID, &v.Name, &desc, &v.Location, &v.Capacity, &v.PricePerDayCents,
        &amenities, &v.IsActive, &v.CreatedBy, &v.CreatedAt, &v.UpdatedAt)
    if err != nil {
        return model.Venue{}, err
    }
    if desc.Valid {
        d := desc.String
        v.Description = &d
    }
    v.Amenities = splitAmenities(amenities)
    return v, nil
}

func splitAmenities(s string) []string {
    out := []string{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(p)
        if p != "" {
            out = append(out, p)
        }
    }
    return out
}

func joinAmenities(a []string) string {
    parts := make([]string, 0, len(a))
    for _, p := range a {
        p = strings.TrimSpace(p)
        if p != "" {
            parts = append(parts, p)
        }
    }
    return strings.Join(parts, ",")
}

// Create inserts a new venue and populates the generated ID and
// timestamps on the provided record.  Validation of capacity and
// price happens in the handler before this call.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
    const q = `INSERT INTO venues (name, description, location, capacity, price_per_day_cents, amenities, is_active, created_by)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, v.Name, v.Description, v.Location, v.Capacity,
        v.PricePerDayCents, joinAmenities(v.Amenities), v.IsActive, v.CreatedBy)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    v.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    stored, err := r.GetByID(ctx, v.ID)
    if err != nil {
        return err
    }
    *v = stored
    return nil
}

// GetByID returns a single venue or ErrVenueNotFound.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (model.Venue, error) {
    const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
    v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return model.Venue{}, ErrVenueNotFound
    }
    return v, err
}

// List returns venues ordered newest first.  When activeOnly is true
// only venues with is_active = 1 are returned; admins pass false to
// see the full registry.
func (r *VenueRepo) List(ctx context.Context, activeOnly bool) ([]model.Venue, error) {
    q := `SELECT ` + venueColumns + ` FROM venues`
    if activeOnly {
        q += ` WHERE is_active = 1`
    }
    q += ` ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    venues := make([]model.Venue, 0)
    for rows.Next() {
        v, err := scanVenue(rows)
        if err != nil {
            return nil, err
        }
        venues = append(venues, v)
    }
    return venues, rows.Err()
}

// VenueUpdate lists the venue fields an admin may change.  Nil
// pointers leave the stored value untouched.
type VenueUpdate struct {
    Name             *string
    Description      *string
    Location         *string
    Capacity         *uint32
    PricePerDayCents *uint32
    Amenities        []string
    IsActive         *bool
}

// Update applies a partial edit to a venue.  Lowering the capacity
// is refused with ErrConflict while any active event or pending
// booking request on the venue needs more seats than the new
// capacity would allow; otherwise already-sold events could exceed
// the venue.  The check and the write share one transaction so a
// concurrent event creation cannot slip between them.
func (r *VenueRepo) Update(ctx context.Context, id uint64, upd VenueUpdate) (model.Venue, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return model.Venue{}, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const cur = `SELECT capacity FROM venues WHERE id = ? FOR UPDATE`
    var capacity uint32
    if err := tx.QueryRowContext(ctx, cur, id).Scan(&capacity); err != nil {
        if err == sql.ErrNoRows {
            return model.Venue{}, ErrVenueNotFound
        }
        return model.Venue{}, err
    }

    if upd.Capacity != nil && *upd.Capacity < capacity {
        // Largest commitment already made against this venue.
        const needQ = `SELECT GREATEST(
                COALESCE((SELECT MAX(max_attendees) FROM events WHERE venue_id = ? AND is_active = 1), 0),
                COALESCE((SELECT MAX(expected_attendees) FROM booking_requests WHERE venue_id = ? AND status = 'PENDING'), 0))`
        var needed uint32
        if err := tx.QueryRowContext(ctx, needQ, id, id).Scan(&needed); err != nil {
            return model.Venue{}, err
        }
        if *upd.Capacity < needed {
            return model.Venue{}, ErrConflict
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
    if upd.Location != nil {
        set = append(set, "location = ?")
        args = append(args, *upd.Location)
    }
    if upd.Capacity != nil {
        set = append(set, "capacity = ?")
        args = append(args, *upd.Capacity)
    }
    if upd.PricePerDayCents != nil {
        set = append(set, "price_per_day_cents = ?")
        args = append(args, *upd.PricePerDayCents)
    }
    if upd.Amenities != nil {
        set = append(set, "amenities = ?")
        args = append(args, joinAmenities(upd.Amenities))
    }
    if upd.IsActive != nil {
        set = append(set, "is_active = ?")
        args = append(args, *upd.IsActive)
    }
    if len(set) > 0 {
        args = append(args, id)
        if _, err := tx.ExecContext(ctx, `UPDATE venues SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
            return model.Venue{}, err
        }
    }

    v, err := scanVenue(tx.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id))
    if err != nil {
        return model.Venue{}, err
    }
    if err := tx.Commit(); err != nil {
        return model.Venue{}, err
    }
    committed = true
    return v, nil
}

// Delete removes a venue permanently.  It refuses with ErrConflict
// while active events or pending booking requests still reference
// the venue, so ticketed history is never orphaned.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
    const refQ = `SELECT
            (SELECT COUNT(*) FROM events WHERE venue_id = ? AND is_active = 1) +
            (SELECT COUNT(*) FROM booking_requests WHERE venue_id = ? AND status = 'PENDING')`
    var refs int
    if err := r.db.QueryRowContext(ctx, refQ, id, id).Scan(&refs); err != nil {
        return err
    }
    if refs > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrVenueNotFound
    }
    return nil
}
