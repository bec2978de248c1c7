package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/handler"
    "github.com/iliyamo/event-venue-booking/internal/middleware"
    "github.com/iliyamo/event-venue-booking/internal/model"
)

// RegisterAttendee registers ATTENDEE-scoped endpoints under /v1.
// All routes require a valid JWT and ATTENDEE role.
func RegisterAttendee(e *echo.Echo, a *handler.AttendeeHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAttendee),
    )

    g.POST("/events/:id/tickets", a.PurchaseTickets)
    g.GET("/tickets", a.ListMyTickets)
    g.POST("/tickets/:id/cancel", a.CancelTicket)
}
