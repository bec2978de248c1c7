// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// violates a state precondition (e.g. deciding an already-decided
// booking request, or deleting a venue that still has events).
package repository

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update or delete cannot be
// performed because of conflicting state, such as deciding a
// booking request a second time or cancelling a ticket that was
// already used. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")

// CapacityError is returned by EventRepo.ReserveTx when a purchase
// would push an event past its seat budget. It carries the number
// of seats actually remaining so callers can offer the buyer a
// reduced quantity.
type CapacityError struct {
	EventID   uint64
	Requested uint32
	Remaining uint32
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("event %d: requested %d tickets, %d remaining", e.EventID, e.Requested, e.Remaining)
}

// IsCapacity reports whether err is a CapacityError and returns it.
func IsCapacity(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
