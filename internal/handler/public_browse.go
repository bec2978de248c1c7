package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: active
// venues, upcoming events and single event detail.  These routes sit
// behind the response cache and rate limiter rather than JWT.
type PublicHandler struct {
    VenueRepo *repository.VenueRepo
    EventRepo *repository.EventRepo
}

// NewPublicHandler constructs a new PublicHandler and panics if any
// dependency is nil.
func NewPublicHandler(venueRepo *repository.VenueRepo, eventRepo *repository.EventRepo) *PublicHandler {
    if venueRepo == nil || eventRepo == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{VenueRepo: venueRepo, EventRepo: eventRepo}
}

// ListVenues handles GET /v1/venues.  Only active venues are shown
// to the public.
func (h *PublicHandler) ListVenues(c echo.Context) error {
    venues, err := h.VenueRepo.List(c.Request().Context(), true)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venues failed"})
    }
    out := make([]venueResp, 0, len(venues))
    for _, v := range venues {
        out = append(out, toVenueResp(v))
    }
    return c.JSON(http.StatusOK, out)
}

// ListEvents handles GET /v1/events.  Only active events are listed,
// with the remaining seat count so buyers can see availability before
// committing.
func (h *PublicHandler) ListEvents(c echo.Context) error {
    events, err := h.EventRepo.ListActive(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
    }
    out := make([]eventResp, 0, len(events))
    for _, e := range events {
        out = append(out, toEventResp(e))
    }
    return c.JSON(http.StatusOK, out)
}

// GetEvent handles GET /v1/events/:id.  Returns the joined detail
// view including venue and organizer names.  Deactivated events are
// hidden from the public.
func (h *PublicHandler) GetEvent(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    detail, err := h.EventRepo.GetWithVenue(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrEventNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !detail.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
    }
    return c.JSON(http.StatusOK, detail)
}
