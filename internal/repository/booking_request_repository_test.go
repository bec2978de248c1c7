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

func submitRequest(t *testing.T, ctx context.Context, db *sql.DB, repo *repository.BookingRequestRepo, organizerID, venueID uint64) model.BookingRequest {
    t.Helper()
    day := time.Now().UTC().AddDate(0, 0, 14).Truncate(24 * time.Hour)
    b := model.BookingRequest{
        OrganizerID:       organizerID,
        VenueID:           venueID,
        EventName:         "Tech Meetup",
        EventDate:         day,
        StartTime:         day.Add(18 * time.Hour),
        EndTime:           day.Add(22 * time.Hour),
        ExpectedAttendees: 40,
    }
    if err := repo.Create(ctx, &b); err != nil {
        t.Fatalf("create booking request: %v", err)
    }
    if b.ID == 0 || b.Status != model.BookingPending {
        t.Fatalf("created request = %+v", b)
    }
    return b
}

func TestBookingRequestDecide(t *testing.T) {
    db := testutil.OpenTestDB(t)
    repo := repository.NewBookingRequestRepo(db)
    ctx := context.Background()

    t.Run("approve is one-shot", func(t *testing.T) {
        testutil.TruncateAll(t, ctx, db)
        admin := testutil.InsertUser(t, ctx, db, "admin@example.com", "ADMIN")
        org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
        venue := testutil.InsertVenue(t, ctx, db, admin, "Hall A", 100)
        b := submitRequest(t, ctx, db, repo, org, venue)

        decided, err := repo.Decide(ctx, b.ID, model.BookingApproved, "")
        if err != nil {
            t.Fatalf("decide: %v", err)
        }
        if decided.Status != model.BookingApproved {
            t.Fatalf("status = %q, want APPROVED", decided.Status)
        }

        // Neither repeating nor flipping the decision is allowed.
        if _, err := repo.Decide(ctx, b.ID, model.BookingApproved, ""); !errors.Is(err, repository.ErrConflict) {
            t.Fatalf("repeat approve: expected ErrConflict, got %v", err)
        }
        if _, err := repo.Decide(ctx, b.ID, model.BookingRejected, "changed my mind"); !errors.Is(err, repository.ErrConflict) {
            t.Fatalf("flip to reject: expected ErrConflict, got %v", err)
        }
    })

    t.Run("reject stores notes", func(t *testing.T) {
        testutil.TruncateAll(t, ctx, db)
        admin := testutil.InsertUser(t, ctx, db, "admin@example.com", "ADMIN")
        org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
        venue := testutil.InsertVenue(t, ctx, db, admin, "Hall A", 100)
        b := submitRequest(t, ctx, db, repo, org, venue)

        decided, err := repo.Decide(ctx, b.ID, model.BookingRejected, "venue closed for renovation")
        if err != nil {
            t.Fatalf("decide: %v", err)
        }
        if decided.Status != model.BookingRejected {
            t.Fatalf("status = %q, want REJECTED", decided.Status)
        }
        if decided.AdminNotes == nil || *decided.AdminNotes != "venue closed for renovation" {
            t.Fatalf("admin notes = %v", decided.AdminNotes)
        }
    })

    t.Run("missing request", func(t *testing.T) {
        testutil.TruncateAll(t, ctx, db)
        if _, err := repo.Decide(ctx, 424242, model.BookingApproved, ""); !errors.Is(err, repository.ErrBookingNotFound) {
            t.Fatalf("expected ErrBookingNotFound, got %v", err)
        }
    })
}

func TestGetApprovedForOrganizer(t *testing.T) {
    db := testutil.OpenTestDB(t)
    repo := repository.NewBookingRequestRepo(db)
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    admin := testutil.InsertUser(t, ctx, db, "admin@example.com", "ADMIN")
    org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
    other := testutil.InsertUser(t, ctx, db, "other@example.com", "ORGANIZER")
    venue := testutil.InsertVenue(t, ctx, db, admin, "Hall A", 100)
    otherVenue := testutil.InsertVenue(t, ctx, db, admin, "Hall B", 100)

    pending := submitRequest(t, ctx, db, repo, org, venue)
    if _, err := repo.GetApprovedForOrganizer(ctx, pending.ID, org, venue); !errors.Is(err, repository.ErrConflict) {
        t.Fatalf("pending request: expected ErrConflict, got %v", err)
    }

    if _, err := repo.Decide(ctx, pending.ID, model.BookingApproved, ""); err != nil {
        t.Fatalf("decide: %v", err)
    }

    if _, err := repo.GetApprovedForOrganizer(ctx, pending.ID, org, venue); err != nil {
        t.Fatalf("owner on right venue: %v", err)
    }
    if _, err := repo.GetApprovedForOrganizer(ctx, pending.ID, other, venue); !errors.Is(err, repository.ErrForbidden) {
        t.Fatalf("foreign organizer: expected ErrForbidden, got %v", err)
    }
    if _, err := repo.GetApprovedForOrganizer(ctx, pending.ID, org, otherVenue); !errors.Is(err, repository.ErrConflict) {
        t.Fatalf("wrong venue: expected ErrConflict, got %v", err)
    }
    if _, err := repo.GetApprovedForOrganizer(ctx, 424242, org, venue); !errors.Is(err, repository.ErrBookingNotFound) {
        t.Fatalf("missing request: expected ErrBookingNotFound, got %v", err)
    }
}
