package repository_test

import (
    "context"
    "database/sql"
    "errors"
    "testing"
    "time"

    "github.com/iliyamo/event-venue-booking/internal/model"
    "github.com/iliyamo/event-venue-booking/internal/repository"
    "github.com/iliyamo/event-venue-booking/internal/testutil"
)

// buyTickets runs a full purchase transaction: claim seats, insert
// tickets, commit.  Mirrors what the purchase handler does.
func buyTickets(t *testing.T, ctx context.Context, db *sql.DB, events *repository.EventRepo, tickets *repository.TicketRepo, eventID, attendeeID uint64, qty uint32) []model.Ticket {
    t.Helper()
    tx, err := db.BeginTx(ctx, nil)
    if err != nil {
        t.Fatalf("begin: %v", err)
    }
    e, err := events.ReserveTx(ctx, tx, eventID, qty)
    if err != nil {
        _ = tx.Rollback()
        t.Fatalf("reserve: %v", err)
    }
    bought, err := tickets.CreateBatchTx(ctx, tx, eventID, attendeeID, qty, e.TicketPriceCents, time.Now().UTC())
    if err != nil {
        _ = tx.Rollback()
        t.Fatalf("create tickets: %v", err)
    }
    if err := tx.Commit(); err != nil {
        t.Fatalf("commit: %v", err)
    }
    return bought
}

func TestTicketPurchaseSnapshotsPrice(t *testing.T) {
    db := testutil.OpenTestDB(t)
    events := repository.NewEventRepo(db)
    tickets := repository.NewTicketRepo(db)
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
    att := testutil.InsertUser(t, ctx, db, "att@example.com", "ATTENDEE")
    venue := testutil.InsertVenue(t, ctx, db, org, "Hall A", 100)
    eventID := testutil.InsertEvent(t, ctx, db, org, venue, "Concert", 2500, 10)

    bought := buyTickets(t, ctx, db, events, tickets, eventID, att, 2)
    if len(bought) != 2 {
        t.Fatalf("bought %d tickets, want 2", len(bought))
    }
    for _, tk := range bought {
        if tk.PricePaidCents != 2500 {
            t.Fatalf("price snapshot = %d, want 2500", tk.PricePaidCents)
        }
        if tk.Status != model.TicketActive {
            t.Fatalf("status = %q, want ACTIVE", tk.Status)
        }
    }
    if bought[0].TicketCode == bought[1].TicketCode {
        t.Fatalf("two tickets share code %q", bought[0].TicketCode)
    }

    // Raise the price; tickets already sold keep the old one.
    newPrice := uint32(4000)
    if _, err := events.Update(ctx, eventID, org, repository.EventUpdate{TicketPriceCents: &newPrice}); err != nil {
        t.Fatalf("update price: %v", err)
    }
    old, err := tickets.GetByID(ctx, bought[0].ID)
    if err != nil {
        t.Fatalf("get ticket: %v", err)
    }
    if old.PricePaidCents != 2500 {
        t.Fatalf("snapshot changed after price edit: %d", old.PricePaidCents)
    }

    // A purchase after the edit pays the new price.
    later := buyTickets(t, ctx, db, events, tickets, eventID, att, 1)
    if later[0].PricePaidCents != 4000 {
        t.Fatalf("new purchase price = %d, want 4000", later[0].PricePaidCents)
    }
}

func TestTicketStatusTransitions(t *testing.T) {
    db := testutil.OpenTestDB(t)
    events := repository.NewEventRepo(db)
    tickets := repository.NewTicketRepo(db)
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
    att := testutil.InsertUser(t, ctx, db, "att@example.com", "ATTENDEE")
    venue := testutil.InsertVenue(t, ctx, db, org, "Hall A", 100)
    eventID := testutil.InsertEvent(t, ctx, db, org, venue, "Concert", 2500, 10)
    bought := buyTickets(t, ctx, db, events, tickets, eventID, att, 1)
    ticketID := bought[0].ID

    // Cancel: CAS to CANCELLED and give the seat back.
    tx, err := db.BeginTx(ctx, nil)
    if err != nil {
        t.Fatalf("begin: %v", err)
    }
    tk, err := tickets.GetForUpdateTx(ctx, tx, ticketID)
    if err != nil {
        t.Fatalf("lock ticket: %v", err)
    }
    if tk.Status != model.TicketActive {
        t.Fatalf("status = %q, want ACTIVE", tk.Status)
    }
    moved, err := tickets.SetStatusTx(ctx, tx, ticketID, model.TicketCancelled)
    if err != nil || !moved {
        t.Fatalf("cancel transition: moved=%v err=%v", moved, err)
    }
    if err := events.ReleaseTx(ctx, tx, eventID); err != nil {
        t.Fatalf("release: %v", err)
    }
    if err := tx.Commit(); err != nil {
        t.Fatalf("commit: %v", err)
    }

    e, err := events.GetByID(ctx, eventID)
    if err != nil {
        t.Fatalf("get event: %v", err)
    }
    if e.CurrentAttendees != 0 {
        t.Fatalf("seat not released: current_attendees = %d", e.CurrentAttendees)
    }

    // A cancelled ticket cannot move again, in either direction.
    tx, err = db.BeginTx(ctx, nil)
    if err != nil {
        t.Fatalf("begin: %v", err)
    }
    defer tx.Rollback()
    for _, to := range []string{model.TicketCancelled, model.TicketUsed} {
        moved, err := tickets.SetStatusTx(ctx, tx, ticketID, to)
        if err != nil {
            t.Fatalf("set status %s: %v", to, err)
        }
        if moved {
            t.Fatalf("cancelled ticket moved to %s", to)
        }
    }

    if _, err := tickets.GetForUpdateTx(ctx, tx, 987654); !errors.Is(err, repository.ErrTicketNotFound) {
        t.Fatalf("missing ticket: expected ErrTicketNotFound, got %v", err)
    }
}

func TestTicketLists(t *testing.T) {
    db := testutil.OpenTestDB(t)
    events := repository.NewEventRepo(db)
    tickets := repository.NewTicketRepo(db)
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
    other := testutil.InsertUser(t, ctx, db, "other@example.com", "ORGANIZER")
    att := testutil.InsertUser(t, ctx, db, "att@example.com", "ATTENDEE")
    venue := testutil.InsertVenue(t, ctx, db, org, "Hall A", 100)
    eventID := testutil.InsertEvent(t, ctx, db, org, venue, "Concert", 2500, 10)
    buyTickets(t, ctx, db, events, tickets, eventID, att, 3)

    wallet, err := tickets.ListByAttendee(ctx, att)
    if err != nil {
        t.Fatalf("wallet: %v", err)
    }
    if len(wallet) != 3 {
        t.Fatalf("wallet size = %d, want 3", len(wallet))
    }
    if wallet[0].EventName != "Concert" || wallet[0].VenueName != "Hall A" {
        t.Fatalf("wallet entry = %+v", wallet[0])
    }

    roster, err := tickets.ListByEventForOrganizer(ctx, eventID, org)
    if err != nil {
        t.Fatalf("roster: %v", err)
    }
    if len(roster) != 3 {
        t.Fatalf("roster size = %d, want 3", len(roster))
    }
    if roster[0].AttendeeEmail != "att@example.com" {
        t.Fatalf("roster entry = %+v", roster[0])
    }

    if _, err := tickets.ListByEventForOrganizer(ctx, eventID, other); !errors.Is(err, repository.ErrForbidden) {
        t.Fatalf("foreign roster: expected ErrForbidden, got %v", err)
    }
    if _, err := tickets.ListByEventForOrganizer(ctx, 424242, org); !errors.Is(err, repository.ErrEventNotFound) {
        t.Fatalf("missing event roster: expected ErrEventNotFound, got %v", err)
    }
}
