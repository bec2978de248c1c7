package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/model"
    "github.com/iliyamo/event-venue-booking/internal/repository"
)

type eventCreateReq struct {
    VenueID          uint64  `json:"venue_id"`
    BookingRequestID *uint64 `json:"booking_request_id"`
    Name             string  `json:"name"`
    Description      *string `json:"description"`
    EventDate        string  `json:"event_date"` // YYYY-MM-DD
    StartTime        string  `json:"start_time"` // HH:MM
    EndTime          string  `json:"end_time"`   // HH:MM
    TicketPriceCents uint32  `json:"ticket_price_cents"`
    MaxAttendees     uint32  `json:"max_attendees"`
}

type eventResp struct {
    ID               uint64  `json:"id"`
    BookingRequestID *uint64 `json:"booking_request_id,omitempty"`
    VenueID          uint64  `json:"venue_id"`
    Name             string  `json:"name"`
    Description      *string `json:"description,omitempty"`
    EventDate        string  `json:"event_date"`
    StartTime        string  `json:"start_time"`
    EndTime          string  `json:"end_time"`
    TicketPriceCents uint32  `json:"ticket_price_cents"`
    MaxAttendees     uint32  `json:"max_attendees"`
    CurrentAttendees uint32  `json:"current_attendees"`
    Remaining        uint32  `json:"remaining"`
    IsActive         bool    `json:"is_active"`
}

func toEventResp(e model.Event) eventResp {
    return eventResp{
        ID:               e.ID,
        BookingRequestID: e.BookingRequestID,
        VenueID:          e.VenueID,
        Name:             e.Name,
        Description:      e.Description,
        EventDate:        e.EventDate.UTC().Format("2006-01-02"),
        StartTime:        e.StartTime.UTC().Format("15:04"),
        EndTime:          e.EndTime.UTC().Format("15:04"),
        TicketPriceCents: e.TicketPriceCents,
        MaxAttendees:     e.MaxAttendees,
        CurrentAttendees: e.CurrentAttendees,
        Remaining:        e.Remaining(),
        IsActive:         e.IsActive,
    }
}

// CreateEvent handles POST /v1/organizer/events.  Creating an event
// does not require an approved booking request, but when
// booking_request_id is supplied it must reference the caller's own
// APPROVED request for the same venue.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req eventCreateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    if req.Name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if req.VenueID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id is required"})
    }
    if req.MaxAttendees == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_attendees must be positive"})
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

    ctx := c.Request().Context()
    venue, err := h.VenueRepo.GetByID(ctx, req.VenueID)
    if err != nil {
        if errors.Is(err, repository.ErrVenueNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !venue.IsActive {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue is not accepting events"})
    }
    if req.MaxAttendees > venue.Capacity {
        return c.JSON(http.StatusBadRequest, echo.Map{
            "error":          "max_attendees exceeds venue capacity",
            "venue_capacity": venue.Capacity,
        })
    }
    if req.BookingRequestID != nil {
        if _, err := h.BookingRepo.GetApprovedForOrganizer(ctx, *req.BookingRequestID, organizerID, req.VenueID); err != nil {
            switch {
            case errors.Is(err, repository.ErrBookingNotFound):
                return c.JSON(http.StatusNotFound, echo.Map{"error": "booking request not found"})
            case errors.Is(err, repository.ErrForbidden):
                return c.JSON(http.StatusForbidden, echo.Map{"error": "booking request belongs to another organizer"})
            case errors.Is(err, repository.ErrConflict):
                return c.JSON(http.StatusConflict, echo.Map{"error": "booking request is not approved for this venue"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
    }

    e := model.Event{
        BookingRequestID: req.BookingRequestID,
        OrganizerID:      organizerID,
        VenueID:          req.VenueID,
        Name:             req.Name,
        Description:      req.Description,
        EventDate:        date,
        StartTime:        start,
        EndTime:          end,
        TicketPriceCents: req.TicketPriceCents,
        MaxAttendees:     req.MaxAttendees,
        IsActive:         true,
    }
    if err := h.EventRepo.Create(ctx, &e); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
    }
    return c.JSON(http.StatusCreated, toEventResp(e))
}

type eventUpdateReq struct {
    Name             *string `json:"name"`
    Description      *string `json:"description"`
    EventDate        *string `json:"event_date"`
    StartTime        *string `json:"start_time"`
    EndTime          *string `json:"end_time"`
    TicketPriceCents *uint32 `json:"ticket_price_cents"`
    MaxAttendees     *uint32 `json:"max_attendees"`
    CurrentAttendees *uint32 `json:"current_attendees"` // rejected if present
}

// UpdateEvent handles PATCH /v1/organizer/events/:id.  The sold
// counter is owned by ticketing: any attempt to write
// current_attendees directly is rejected outright.  Shrinking
// max_attendees below the seats already sold returns 409.
func (h *OrganizerHandler) UpdateEvent(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    var req eventUpdateReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.CurrentAttendees != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "current_attendees cannot be edited"})
    }
    if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
    }
    if req.MaxAttendees != nil && *req.MaxAttendees == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_attendees must be positive"})
    }
    upd := repository.EventUpdate{
        Name:             req.Name,
        Description:      req.Description,
        TicketPriceCents: req.TicketPriceCents,
        MaxAttendees:     req.MaxAttendees,
    }
    // Date and time edits are re-validated together against the
    // stored row when only one side changes.
    if req.EventDate != nil || req.StartTime != nil || req.EndTime != nil {
        cur, err := h.EventRepo.GetByID(c.Request().Context(), id)
        if err != nil {
            if errors.Is(err, repository.ErrEventNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        dateStr := cur.EventDate.UTC().Format("2006-01-02")
        if req.EventDate != nil {
            dateStr = *req.EventDate
        }
        date, ok := parseDate(dateStr)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be YYYY-MM-DD"})
        }
        startStr := cur.StartTime.UTC().Format("15:04")
        if req.StartTime != nil {
            startStr = *req.StartTime
        }
        endStr := cur.EndTime.UTC().Format("15:04")
        if req.EndTime != nil {
            endStr = *req.EndTime
        }
        start, ok := parseClock(date, startStr)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be HH:MM"})
        }
        end, ok := parseClock(date, endStr)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be HH:MM"})
        }
        if !start.Before(end) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be before end_time"})
        }
        ds := date.Format("2006-01-02")
        ss := start.Format("2006-01-02 15:04:05")
        es := end.Format("2006-01-02 15:04:05")
        upd.EventDate = &ds
        upd.StartTime = &ss
        upd.EndTime = &es
    }

    e, err := h.EventRepo.Update(c.Request().Context(), id, organizerID, upd)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrEventNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "max_attendees conflicts with sold tickets or venue capacity"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
    }
    return c.JSON(http.StatusOK, toEventResp(e))
}

// DeactivateEvent handles DELETE /v1/organizer/events/:id.  Events
// are never hard-deleted; ticket history survives deactivation.
func (h *OrganizerHandler) DeactivateEvent(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    if err := h.EventRepo.Deactivate(c.Request().Context(), id, organizerID); err != nil {
        switch {
        case errors.Is(err, repository.ErrEventNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate event failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// ListEvents handles GET /v1/organizer/events.  Organizers see all
// their events including deactivated ones.
func (h *OrganizerHandler) ListEvents(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    events, err := h.EventRepo.ListByOrganizer(c.Request().Context(), organizerID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
    }
    out := make([]eventResp, 0, len(events))
    for _, e := range events {
        out = append(out, toEventResp(e))
    }
    return c.JSON(http.StatusOK, out)
}

// ListEventTickets handles GET /v1/organizer/events/:id/tickets.
// Returns the attendee roster for an owned event.
func (h *OrganizerHandler) ListEventTickets(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    roster, err := h.TicketRepo.ListByEventForOrganizer(c.Request().Context(), id, organizerID)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrEventNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tickets failed"})
    }
    return c.JSON(http.StatusOK, roster)
}

// CheckInTicket handles POST /v1/organizer/tickets/:id/check-in.
// Marks an ACTIVE ticket USED at the door.  Only the organizer of
// the ticket's event may check it in, and a ticket that is already
// used or cancelled returns 409.
func (h *OrganizerHandler) CheckInTicket(c echo.Context) error {
    organizerID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
    }

    ctx := c.Request().Context()
    tx, err := h.EventRepo.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    ticket, err := h.TicketRepo.GetForUpdateTx(ctx, tx, id)
    if err != nil {
        if errors.Is(err, repository.ErrTicketNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    event, err := h.EventRepo.GetByID(ctx, ticket.EventID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if event.OrganizerID != organizerID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    moved, err := h.TicketRepo.SetStatusTx(ctx, tx, id, model.TicketUsed)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check-in failed"})
    }
    if !moved {
        return c.JSON(http.StatusConflict, echo.Map{"error": "ticket is not active", "status": ticket.Status})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.TicketUsed})
}
