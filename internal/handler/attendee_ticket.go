package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-venue-booking/internal/model"
    "github.com/iliyamo/event-venue-booking/internal/queue"
    "github.com/iliyamo/event-venue-booking/internal/repository"
    queue_publisher "github.com/iliyamo/event-venue-booking/internal/service"
)

// AttendeeHandler bundles repositories for ticket purchase,
// cancellation and the attendee's wallet.  All methods assume JWT
// authentication and the ATTENDEE role check have already run in
// middleware.  Purchase and cancel run their critical section
// inside a transaction to keep the sold counter and the ticket rows
// consistent.
type AttendeeHandler struct {
    EventRepo  *repository.EventRepo
    TicketRepo *repository.TicketRepo
}

// NewAttendeeHandler constructs a new AttendeeHandler and panics if
// any dependency is nil.
func NewAttendeeHandler(eventRepo *repository.EventRepo, ticketRepo *repository.TicketRepo) *AttendeeHandler {
    if eventRepo == nil || ticketRepo == nil {
        panic("nil repository passed to NewAttendeeHandler")
    }
    return &AttendeeHandler{EventRepo: eventRepo, TicketRepo: ticketRepo}
}

type purchaseReq struct {
    Quantity uint32 `json:"quantity"`
}

// totalPriceCents widens before multiplying so a large price times a
// large quantity cannot wrap around uint32.
func totalPriceCents(price, qty uint32) uint64 {
    return uint64(price) * uint64(qty)
}

type purchasedTicket struct {
    ID             uint64 `json:"id"`
    TicketCode     string `json:"ticket_code"`
    PricePaidCents uint32 `json:"price_paid_cents"`
    Status         string `json:"status"`
}

// PurchaseTickets handles POST /v1/events/:id/tickets.  The seat
// claim is a conditional UPDATE inside the same transaction as the
// ticket inserts, so two buyers racing for the last seats can never
// both succeed: the loser gets a 409 carrying the seats actually
// remaining.
func (h *AttendeeHandler) PurchaseTickets(c echo.Context) error {
    attendeeID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    eventID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
    }
    var req purchaseReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Quantity == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
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

    event, err := h.EventRepo.ReserveTx(ctx, tx, eventID, req.Quantity)
    if err != nil {
        if errors.Is(err, repository.ErrEventNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        if ce, ok := repository.IsCapacity(err); ok {
            return c.JSON(http.StatusConflict, echo.Map{
                "error":     "not enough tickets remaining",
                "requested": ce.Requested,
                "remaining": ce.Remaining,
            })
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve failed"})
    }

    now := time.Now().UTC()
    tickets, err := h.TicketRepo.CreateBatchTx(ctx, tx, eventID, attendeeID, req.Quantity, event.TicketPriceCents, now)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create tickets failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    // Notify downstream consumers after the commit; a broker outage
    // must not fail a purchase that is already durable.
    codes := make([]string, 0, len(tickets))
    for _, t := range tickets {
        codes = append(codes, t.TicketCode)
    }
    go func() {
        pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        _ = queue_publisher.PublishTicketPurchased(pubCtx, queue.TicketPurchasedEvent{
            EventID:         eventID,
            EventName:       event.Name,
            AttendeeID:      attendeeID,
            Quantity:        req.Quantity,
            TicketCodes:     codes,
            TotalPriceCents: totalPriceCents(event.TicketPriceCents, req.Quantity),
            PurchasedAt:     now.Format(time.RFC3339),
        })
    }()

    out := make([]purchasedTicket, 0, len(tickets))
    for _, t := range tickets {
        out = append(out, purchasedTicket{
            ID:             t.ID,
            TicketCode:     t.TicketCode,
            PricePaidCents: t.PricePaidCents,
            Status:         t.Status,
        })
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "event_id":  eventID,
        "tickets":   out,
        "remaining": event.Remaining(),
    })
}

// CancelTicket handles POST /v1/tickets/:id/cancel.  Only the
// ticket's holder may cancel, only from ACTIVE, and the freed seat
// goes back to the event inside the same transaction.  A second
// cancel of the same ticket returns 409.
func (h *AttendeeHandler) CancelTicket(c echo.Context) error {
    attendeeID, err := getUserID(c)
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
    if ticket.AttendeeID != attendeeID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    moved, err := h.TicketRepo.SetStatusTx(ctx, tx, id, model.TicketCancelled)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
    }
    if !moved {
        return c.JSON(http.StatusConflict, echo.Map{"error": "ticket is not active", "status": ticket.Status})
    }
    if err := h.EventRepo.ReleaseTx(ctx, tx, ticket.EventID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release seat failed"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.TicketCancelled})
}

// ListMyTickets handles GET /v1/tickets.  Returns the caller's
// wallet with event and venue details, newest purchase first.
func (h *AttendeeHandler) ListMyTickets(c echo.Context) error {
    attendeeID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    tickets, err := h.TicketRepo.ListByAttendee(c.Request().Context(), attendeeID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tickets failed"})
    }
    return c.JSON(http.StatusOK, tickets)
}
