package repository_test

import (
    "context"
    "errors"
    "reflect"
    "testing"

    "github.com/iliyamo/event-venue-booking/internal/model"
    "github.com/iliyamo/event-venue-booking/internal/repository"
    "github.com/iliyamo/event-venue-booking/internal/testutil"
)

func TestVenueRepoCRUD(t *testing.T) {
    db := testutil.OpenTestDB(t)
    repo := repository.NewVenueRepo(db)
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    admin := testutil.InsertUser(t, ctx, db, "admin@example.com", "ADMIN")

    desc := "Rooftop venue with skyline view"
    v := model.Venue{
        Name:             "Skyline Terrace",
        Description:      &desc,
        Location:         "12 High Street",
        Capacity:         250,
        PricePerDayCents: 150000,
        Amenities:        []string{"wifi", "stage", "bar"},
        IsActive:         true,
        CreatedBy:        admin,
    }
    if err := repo.Create(ctx, &v); err != nil {
        t.Fatalf("create: %v", err)
    }
    if v.ID == 0 {
        t.Fatal("create did not populate ID")
    }

    got, err := repo.GetByID(ctx, v.ID)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if got.Name != "Skyline Terrace" || got.Capacity != 250 {
        t.Fatalf("stored venue = %+v", got)
    }
    if got.Description == nil || *got.Description != desc {
        t.Fatalf("description = %v", got.Description)
    }
    if !reflect.DeepEqual(got.Amenities, []string{"wifi", "stage", "bar"}) {
        t.Fatalf("amenities = %v", got.Amenities)
    }

    if _, err := repo.GetByID(ctx, 424242); !errors.Is(err, repository.ErrVenueNotFound) {
        t.Fatalf("missing venue: expected ErrVenueNotFound, got %v", err)
    }

    inactive := false
    if _, err := repo.Update(ctx, v.ID, repository.VenueUpdate{IsActive: &inactive}); err != nil {
        t.Fatalf("deactivate: %v", err)
    }
    activeOnly, err := repo.List(ctx, true)
    if err != nil {
        t.Fatalf("list active: %v", err)
    }
    if len(activeOnly) != 0 {
        t.Fatalf("deactivated venue still in active list: %v", activeOnly)
    }
    all, err := repo.List(ctx, false)
    if err != nil {
        t.Fatalf("list all: %v", err)
    }
    if len(all) != 1 {
        t.Fatalf("full list size = %d, want 1", len(all))
    }

    if err := repo.Delete(ctx, v.ID); err != nil {
        t.Fatalf("delete unreferenced venue: %v", err)
    }
    if err := repo.Delete(ctx, v.ID); !errors.Is(err, repository.ErrVenueNotFound) {
        t.Fatalf("double delete: expected ErrVenueNotFound, got %v", err)
    }
}

func TestVenueRepoCapacityGuards(t *testing.T) {
    db := testutil.OpenTestDB(t)
    repo := repository.NewVenueRepo(db)
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    admin := testutil.InsertUser(t, ctx, db, "admin@example.com", "ADMIN")
    org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
    venueID := testutil.InsertVenue(t, ctx, db, admin, "Hall A", 200)
    testutil.InsertEvent(t, ctx, db, org, venueID, "Conference", 5000, 120)

    // Shrinking under the event's seat budget is refused.
    below := uint32(100)
    if _, err := repo.Update(ctx, venueID, repository.VenueUpdate{Capacity: &below}); !errors.Is(err, repository.ErrConflict) {
        t.Fatalf("shrink below commitments: expected ErrConflict, got %v", err)
    }

    // Shrinking down to the largest commitment is fine.
    exact := uint32(120)
    v, err := repo.Update(ctx, venueID, repository.VenueUpdate{Capacity: &exact})
    if err != nil {
        t.Fatalf("shrink to commitment: %v", err)
    }
    if v.Capacity != 120 {
        t.Fatalf("capacity = %d, want 120", v.Capacity)
    }

    // Deleting while an active event references the venue is refused.
    if err := repo.Delete(ctx, venueID); !errors.Is(err, repository.ErrConflict) {
        t.Fatalf("delete referenced venue: expected ErrConflict, got %v", err)
    }
}
