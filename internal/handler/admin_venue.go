package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/model"
    "github.com/iliyamo/event-venue-booking/internal/repository"
)

// AdminHandler bundles repositories for the admin surface: the
// venue registry and booking request decisions.  All methods assume
// JWT authentication and the ADMIN role check have already run in
// middleware.
type AdminHandler struct {
    VenueRepo   *repository.VenueRepo
    BookingRepo *repository.BookingRequestRepo
}

// NewAdminHandler constructs a new AdminHandler and panics if any
// dependency is nil.
func NewAdminHandler(venueRepo *repository.VenueRepo, bookingRepo *repository.BookingRequestRepo) *AdminHandler {
    if venueRepo == nil || bookingRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{VenueRepo: venueRepo, BookingRepo: bookingRepo}
}

type venueReq struct {
    Name             *string  `json:"name"`
    Description      *string  `json:"description"`
    Location         *string  `json:"location"`
    Capacity         *uint32  `json:"capacity"`
    PricePerDayCents *uint32  `json:"price_per_day_cents"`
    Amenities        []string `json:"amenities"`
    IsActive         *bool    `json:"is_active"`
}

type venueResp struct {
    ID               uint64   `json:"id"`
    Name             string   `json:"name"`
    Description      *string  `json:"description,omitempty"`
    Location         string   `json:"location"`
    Capacity         uint32   `json:"capacity"`
    PricePerDayCents uint32   `json:"price_per_day_cents"`
    Amenities        []string `json:"amenities"`
    IsActive         bool     `json:"is_active"`
}

func toVenueResp(v model.Venue) venueResp {
    return venueResp{
        ID:               v.ID,
        Name:             v.Name,
        Description:      v.Description,
        Location:         v.Location,
        Capacity:         v.Capacity,
        PricePerDayCents: v.PricePerDayCents,
        Amenities:        v.Amenities,
        IsActive:         v.IsActive,
    }
}

// CreateVenue handles POST /v1/admin/venues.  Name and location are
// required, capacity must be positive.  The new venue starts active
// unless the body says otherwise.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
    adminID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req venueReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if req.Location == nil || strings.TrimSpace(*req.Location) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "location is required"})
    }
    if req.Capacity == nil || *req.Capacity == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be a positive integer"})
    }

    v := model.Venue{
        Name:      strings.TrimSpace(*req.Name),
        Location:  strings.TrimSpace(*req.Location),
        Capacity:  *req.Capacity,
        Amenities: req.Amenities,
        IsActive:  true,
        CreatedBy: adminID,
    }
    if req.Description != nil {
        v.Description = req.Description
    }
    if req.PricePerDayCents != nil {
        v.PricePerDayCents = *req.PricePerDayCents
    }
    if req.IsActive != nil {
        v.IsActive = *req.IsActive
    }

    if err := h.VenueRepo.Create(c.Request().Context(), &v); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
    }
    return c.JSON(http.StatusCreated, toVenueResp(v))
}

// UpdateVenue handles PATCH /v1/admin/venues/:id.  Partial edits;
// lowering capacity below existing commitments returns 409.
func (h *AdminHandler) UpdateVenue(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    var req venueReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Capacity != nil && *req.Capacity == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be a positive integer"})
    }
    if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
    }

    upd := repository.VenueUpdate{
        Name:             req.Name,
        Description:      req.Description,
        Location:         req.Location,
        Capacity:         req.Capacity,
        PricePerDayCents: req.PricePerDayCents,
        Amenities:        req.Amenities,
        IsActive:         req.IsActive,
    }
    v, err := h.VenueRepo.Update(c.Request().Context(), id, upd)
    if err != nil {
        switch {
        case errors.Is(err, repository.ErrVenueNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "capacity below existing commitments"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update venue failed"})
    }
    return c.JSON(http.StatusOK, toVenueResp(v))
}

// DeleteVenue handles DELETE /v1/admin/venues/:id.  Venues with
// active events or pending booking requests cannot be removed.
func (h *AdminHandler) DeleteVenue(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
    }
    if err := h.VenueRepo.Delete(c.Request().Context(), id); err != nil {
        switch {
        case errors.Is(err, repository.ErrVenueNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "venue has active events or pending requests"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete venue failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// ListVenues handles GET /v1/admin/venues.  Admins see the whole
// registry including deactivated venues.
func (h *AdminHandler) ListVenues(c echo.Context) error {
    venues, err := h.VenueRepo.List(c.Request().Context(), false)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list venues failed"})
    }
    out := make([]venueResp, 0, len(venues))
    for _, v := range venues {
        out = append(out, toVenueResp(v))
    }
    return c.JSON(http.StatusOK, out)
}
