// Package testutil provides helpers for repository integration tests.
// Tests open a real MySQL database when one is reachable and skip
// otherwise, so the suite stays green on machines without a server.
package testutil

import (
    "context"
    "database/sql"
    "os"
    "testing"
    "time"

    _ "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/event-venue-booking/internal/database"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/event_venue_booking_test?parseTime=true&loc=UTC"

// OpenTestDB opens the test database, applies the schema and
// registers cleanup.  When MySQL is unreachable the calling test is
// skipped.  Set TEST_DATABASE_DSN to point at a different server.
func OpenTestDB(t *testing.T) *sql.DB {
    t.Helper()
    dsn := os.Getenv("TEST_DATABASE_DSN")
    if dsn == "" {
        dsn = defaultTestDSN
    }

    db, err := sql.Open("mysql", dsn)
    if err != nil {
        t.Fatalf("open test db: %v", err)
    }
    db.SetMaxOpenConns(8)

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        db.Close()
        t.Skipf("skipping MySQL integration tests: %v", err)
    }

    if err := database.Migrate(ctx, db); err != nil {
        db.Close()
        t.Fatalf("apply schema: %v", err)
    }

    t.Cleanup(func() { db.Close() })
    return db
}

// TruncateAll wipes every table in dependency order so each test
// starts from an empty database.
func TruncateAll(t *testing.T, ctx context.Context, db *sql.DB) {
    t.Helper()
    if _, err := db.ExecContext(ctx, `SET FOREIGN_KEY_CHECKS = 0`); err != nil {
        t.Fatalf("disable fk checks: %v", err)
    }
    for _, table := range []string{"tickets", "events", "booking_requests", "venues", "refresh_tokens", "users"} {
        if _, err := db.ExecContext(ctx, `TRUNCATE TABLE `+table); err != nil {
            t.Fatalf("truncate %s: %v", table, err)
        }
    }
    if _, err := db.ExecContext(ctx, `SET FOREIGN_KEY_CHECKS = 1`); err != nil {
        t.Fatalf("enable fk checks: %v", err)
    }
}

// InsertUser creates a user row and returns its id.
func InsertUser(t *testing.T, ctx context.Context, db *sql.DB, email, role string) uint64 {
    t.Helper()
    res, err := db.ExecContext(ctx,
        `INSERT INTO users (email, password_hash, full_name, role) VALUES (?, 'x', ?, ?)`,
        email, "Test "+role, role,
    )
    if err != nil {
        t.Fatalf("insert user: %v", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        t.Fatalf("last insert id: %v", err)
    }
    return uint64(id)
}

// InsertVenue creates an active venue row and returns its id.
func InsertVenue(t *testing.T, ctx context.Context, db *sql.DB, createdBy uint64, name string, capacity uint32) uint64 {
    t.Helper()
    res, err := db.ExecContext(ctx,
        `INSERT INTO venues (name, location, capacity, amenities, created_by) VALUES (?, 'Test Street 1', ?, '', ?)`,
        name, capacity, createdBy,
    )
    if err != nil {
        t.Fatalf("insert venue: %v", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        t.Fatalf("last insert id: %v", err)
    }
    return uint64(id)
}

// InsertEvent creates an active event row and returns its id.
func InsertEvent(t *testing.T, ctx context.Context, db *sql.DB, organizerID, venueID uint64, name string, priceCents, maxAttendees uint32) uint64 {
    t.Helper()
    day := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
    res, err := db.ExecContext(ctx,
        `INSERT INTO events (organizer_id, venue_id, name, event_date, start_time, end_time, ticket_price_cents, max_attendees)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
        organizerID, venueID, name, day, day+" 18:00:00", day+" 22:00:00", priceCents, maxAttendees,
    )
    if err != nil {
        t.Fatalf("insert event: %v", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        t.Fatalf("last insert id: %v", err)
    }
    return uint64(id)
}
