package handler

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/repository"
    "github.com/iliyamo/event-venue-booking/internal/testutil"
)

// These tests run the organizer handlers over a real database so the
// venue-capacity checks after the venue fetch are exercised, not just
// the field validation in front of them.

func TestSubmitBookingRequestVenueCapacity(t *testing.T) {
    db := testutil.OpenTestDB(t)
    h := NewOrganizerHandler(repository.NewVenueRepo(db), repository.NewBookingRequestRepo(db),
        repository.NewEventRepo(db), repository.NewTicketRepo(db))
    e := echo.New()
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
    venue := testutil.InsertVenue(t, ctx, db, org, "Small Hall", 40)

    body := func(attendees uint32) string {
        return fmt.Sprintf(`{"venue_id":%d,"event_name":"Workshop","event_date":"2030-06-01","start_time":"10:00","end_time":"12:00","expected_attendees":%d}`, venue, attendees)
    }

    t.Run("head count over capacity is rejected", func(t *testing.T) {
        c, rec := newJSONContext(e, http.MethodPost, "/v1/organizer/booking-requests", body(50), org)
        if err := h.SubmitBookingRequest(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusBadRequest {
            t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
        }
        var resp map[string]interface{}
        if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
            t.Fatalf("decode: %v", err)
        }
        if got, _ := resp["venue_capacity"].(float64); uint32(got) != 40 {
            t.Fatalf("venue_capacity = %v, want 40", resp["venue_capacity"])
        }
    })

    t.Run("head count at capacity is accepted", func(t *testing.T) {
        c, rec := newJSONContext(e, http.MethodPost, "/v1/organizer/booking-requests", body(40), org)
        if err := h.SubmitBookingRequest(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusCreated {
            t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
        }
    })

    t.Run("missing venue", func(t *testing.T) {
        c, rec := newJSONContext(e, http.MethodPost, "/v1/organizer/booking-requests",
            `{"venue_id":424242,"event_name":"Workshop","event_date":"2030-06-01","start_time":"10:00","end_time":"12:00","expected_attendees":10}`, org)
        if err := h.SubmitBookingRequest(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusNotFound {
            t.Fatalf("status = %d, want 404", rec.Code)
        }
    })
}

func TestCreateEventVenueCapacity(t *testing.T) {
    db := testutil.OpenTestDB(t)
    h := NewOrganizerHandler(repository.NewVenueRepo(db), repository.NewBookingRequestRepo(db),
        repository.NewEventRepo(db), repository.NewTicketRepo(db))
    e := echo.New()
    ctx := context.Background()

    testutil.TruncateAll(t, ctx, db)
    org := testutil.InsertUser(t, ctx, db, "org@example.com", "ORGANIZER")
    venue := testutil.InsertVenue(t, ctx, db, org, "Small Hall", 40)

    body := func(maxAttendees uint32) string {
        return fmt.Sprintf(`{"venue_id":%d,"name":"Concert","event_date":"2030-06-01","start_time":"19:00","end_time":"23:00","ticket_price_cents":2500,"max_attendees":%d}`, venue, maxAttendees)
    }

    t.Run("seat budget over capacity is rejected", func(t *testing.T) {
        c, rec := newJSONContext(e, http.MethodPost, "/v1/organizer/events", body(50), org)
        if err := h.CreateEvent(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusBadRequest {
            t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
        }
        var resp map[string]interface{}
        if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
            t.Fatalf("decode: %v", err)
        }
        if got, _ := resp["venue_capacity"].(float64); uint32(got) != 40 {
            t.Fatalf("venue_capacity = %v, want 40", resp["venue_capacity"])
        }
    })

    t.Run("seat budget at capacity is accepted", func(t *testing.T) {
        c, rec := newJSONContext(e, http.MethodPost, "/v1/organizer/events", body(40), org)
        if err := h.CreateEvent(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusCreated {
            t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
        }
    })

    t.Run("deactivated venue refuses new events", func(t *testing.T) {
        inactive := false
        if _, err := repository.NewVenueRepo(db).Update(ctx, venue, repository.VenueUpdate{IsActive: &inactive}); err != nil {
            t.Fatalf("deactivate venue: %v", err)
        }
        c, rec := newJSONContext(e, http.MethodPost, "/v1/organizer/events", body(10), org)
        if err := h.CreateEvent(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusBadRequest {
            t.Fatalf("status = %d, want 400 (%s)", rec.Code, rec.Body.String())
        }
    })
}
