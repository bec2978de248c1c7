package router // router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/handler"
    "github.com/iliyamo/event-venue-booking/internal/middleware"
    "github.com/iliyamo/event-venue-booking/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    )

    // ---- Venue registry ----
    g.POST("/venues", a.CreateVenue)
    g.GET("/venues", a.ListVenues) // includes deactivated venues
    g.PATCH("/venues/:id", a.UpdateVenue)
    g.PUT("/venues/:id", a.UpdateVenue) // alias for clients that use PUT
    g.DELETE("/venues/:id", a.DeleteVenue)

    // ---- Booking request review ----
    g.GET("/booking-requests", a.ListBookingRequests) // optional ?status= filter
    g.POST("/booking-requests/:id/decision", a.DecideBookingRequest)
}
