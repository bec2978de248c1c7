package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/model"
    "github.com/iliyamo/event-venue-booking/internal/repository"
)

// OrganizerHandler bundles repositories for the organizer surface:
// submitting booking requests and managing events.  All methods
// assume JWT authentication and the ORGANIZER role check have
// already run in middleware.
type OrganizerHandler struct {
    VenueRepo   *repository.VenueRepo
    BookingRepo *repository.BookingRequestRepo
    EventRepo   *repository.EventRepo
    TicketRepo  *repository.TicketRepo
}

// NewOrganizerHandler constructs a new OrganizerHandler and panics
// if any dependency is nil.
func NewOrganizerHandler(venueRepo *repository.VenueRepo, bookingRepo *repository.BookingRequestRepo, eventRepo *repository.EventRepo, ticketRepo *repository.TicketRepo) *OrganizerHandler {
    if venueRepo == nil || bookingRepo == nil || eventRepo == nil || ticketRepo == nil {
        panic("nil repository passed to NewOrganizerHandler")
    }
    return &OrganizerHandler{VenueRepo: venueRepo, BookingRepo: bookingRepo, EventRepo: eventRepo, TicketRepo: ticketRepo}
}

type bookingReq struct {
    VenueID           uint64  `json:"venue_id"`
    EventName         string  `json:"event_name"`
    EventDescription  *string `json:"event_description"`
    EventDate         string  `json:"event_date"` // YYYY-MM-DD
    StartTime         string  `json:"start_time"` // HH:MM
    EndTime           string  `json:"end_time"`   // HH:MM
    ExpectedAttendees uint32  `json:"expected_attendees"`
}

// SubmitBookingRequest handles POST /v1/organizer/booking-requests.
// The venue must exist and be active, the head count must fit the
// venue, the times must be ordered and the date must not be in the
// past.  The request is created in PENDING status for an admin to
// decide.
func (h *OrganizerHandler) SubmitBookingRequest(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req bookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.EventName = strings.TrimSpace(req.EventName)
    if req.EventName == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_name is required"})
    }
    if req.VenueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id is required"})
    }
    if req.ExpectedAttendees == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "expected_attendees must be positive"})
    }
    date, ok := parseDate(req.EventDate)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be YYYY-MM-DD"})
    }
    start, ok := parseClock(date, req.StartTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be HH:MM"})
    }
    end, ok := parseClock(date, req.EndTime)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be HH:MM"})
    }
    if !start.Before(end) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be before end_time"})
    }
    today := time.Now().UTC().Truncate(24 * time.Hour)
    if date.Before(today) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date cannot be in the past"})
    }

    ctx := c.Request().Context()
    venue, err := h.VenueRepo.GetByID(ctx, req.VenueID)
    if err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !venue.IsActive {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue is not accepting bookings"})
    }
    if req.ExpectedAttendees > venue.Capacity {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":          "expected_attendees exceeds venue capacity",
            "venue_capacity": venue.Capacity,
        })
    }

    b := model.BookingRequest{
        OrganizerID:       organizerID,
        VenueID:           req.VenueID,
        EventName:         req.EventName,
        EventDescription:  req.EventDescription,
        EventDate:         date,
        StartTime:         start,
        EndTime:           end,
        ExpectedAttendees: req.ExpectedAttendees,
    }
    if err := h.BookingRepo.Create(ctx, &b); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking request failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":     b.ID,
        "status": b.Status,
    })
}

// ListBookingRequests handles GET /v1/organizer/booking-requests.
// Organizers see their own submission history, newest first.
func (h *OrganizerHandler) ListBookingRequests(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    list, err := h.BookingRepo.ListByOrganizer(c.Request().Context(), organizerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list booking requests failed"})
    }
    out := make([]echo.Map, 0, len(list))
    for _, b := range list {
        out = append(out, echo.Map{
            "id":                 b.ID,
            "venue_id":           b.VenueID,
            "event_name":         b.EventName,
            "event_date":         b.EventDate.UTC().Format("2006-01-02"),
            "start_time":         b.StartTime.UTC().Format("15:04"),
            "end_time":           b.EndTime.UTC().Format("15:04"),
            "expected_attendees": b.ExpectedAttendees,
            "status":             b.Status,
            "admin_notes":        b.AdminNotes,
        })
    }
    return c.JSON(http.StatusOK, out)
}
