package workflow

import (
	"fmt"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

// validTransitions is the authoritative booking-status state machine.
// Pending is the initial state, Delivered and Cancelled are terminal.
var validTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:  {models.StatusOnTheWay, models.StatusCancelled},
	models.StatusOnTheWay: {models.StatusDelivered},
}

// CanTransition reports whether a booking may move between the two
// statuses, with an apperr.Invalid error naming the rejected pair.
func CanTransition(from, to models.BookingStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: booking status %q cannot move to %q", apperr.Invalid, from, to)
}

// NextStatuses returns the valid next states from a given status, empty
// for terminal states.
func NextStatuses(from models.BookingStatus) []models.BookingStatus {
	return validTransitions[from]
}
