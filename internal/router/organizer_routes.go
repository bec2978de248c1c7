package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/handler"
    "github.com/iliyamo/event-venue-booking/internal/middleware"
    "github.com/iliyamo/event-venue-booking/internal/model"
)

// RegisterOrganizer registers ORGANIZER-scoped endpoints under
// /v1/organizer.  All routes require a valid JWT and ORGANIZER role.
func RegisterOrganizer(e *echo.Echo, o *handler.OrganizerHandler, jwtSecret string) {
    g := e.Group(
        "/v1/organizer",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleOrganizer),
    )

    // ---- Booking requests ----
    g.POST("/booking-requests", o.SubmitBookingRequest)
    g.GET("/booking-requests", o.ListBookingRequests)

    // ---- Events ----
    g.POST("/events", o.CreateEvent)
    g.GET("/events", o.ListEvents)
    g.PATCH("/events/:id", o.UpdateEvent)
    g.PUT("/events/:id", o.UpdateEvent) // alias for clients that use PUT
    g.DELETE("/events/:id", o.DeactivateEvent)

    // ---- Attendee roster and door check-in ----
    g.GET("/events/:id/tickets", o.ListEventTickets)
    g.POST("/tickets/:id/check-in", o.CheckInTicket)
}
