package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/model"
    "github.com/iliyamo/event-venue-booking/internal/repository"
)

// ListBookingRequests handles GET /v1/admin/booking-requests.  The
// optional ?status= query narrows to PENDING, APPROVED or REJECTED;
// any other value is rejected rather than silently ignored.
func (h *AdminHandler) ListBookingRequests(c echo.Context) error {
    status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
    switch status {
    case "", model.BookingPending, model.BookingApproved, model.BookingRejected:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
    }
    list, err := h.BookingRepo.ListDetailed(c.Request().Context(), status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list booking requests failed"})
    }
    return c.JSON(http.StatusOK, list)
}

type decisionReq struct {
    Outcome string `json:"outcome"` // APPROVED | REJECTED
    Notes   string `json:"notes"`
}

// DecideBookingRequest handles POST /v1/admin/booking-requests/:id/decision.
// The transition is one-shot: a request that has already been
// decided returns 409 no matter which outcome is retried.  A
// rejection must carry notes so the organizer learns why.
func (h *AdminHandler) DecideBookingRequest(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking request id"})
    }
    var req decisionReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    outcome := strings.ToUpper(strings.TrimSpace(req.Outcome))
    notes := strings.TrimSpace(req.Notes)
    if !model.ValidDecision(outcome, notes) {
        if outcome == model.BookingRejected {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "rejection requires notes"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "outcome must be APPROVED or REJECTED"})
    }

    b, err := h.BookingRepo.Decide(c.Request().Context(), id, outcome, notes)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking request not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "booking request already decided"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "decide booking request failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "id":          b.ID,
        "status":      b.Status,
        "admin_notes": b.AdminNotes,
    })
}
