package workflow

import (
	"errors"
	"testing"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

func TestCanTransitionAllowed(t *testing.T) {
	allowed := []struct {
		from, to models.BookingStatus
	}{
		{models.StatusPending, models.StatusOnTheWay},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusOnTheWay, models.StatusDelivered},
	}
	for _, tc := range allowed {
		if err := CanTransition(tc.from, tc.to); err != nil {
			t.Fatalf("expected %q -> %q to be allowed, got %v", tc.from, tc.to, err)
		}
	}
}

func TestCanTransitionRejected(t *testing.T) {
	rejected := []struct {
		from, to models.BookingStatus
	}{
		{models.StatusPending, models.StatusDelivered},
		{models.StatusOnTheWay, models.StatusPending},
		{models.StatusOnTheWay, models.StatusCancelled},
		{models.StatusDelivered, models.StatusOnTheWay},
		{models.StatusDelivered, models.StatusPending},
		{models.StatusCancelled, models.StatusOnTheWay},
	}
	for _, tc := range rejected {
		err := CanTransition(tc.from, tc.to)
		if !errors.Is(err, apperr.Invalid) {
			t.Fatalf("expected %q -> %q to be rejected with Invalid, got %v", tc.from, tc.to, err)
		}
	}
}

func TestNextStatusesTerminal(t *testing.T) {
	if next := NextStatuses(models.StatusDelivered); len(next) != 0 {
		t.Fatalf("expected Delivered to be terminal, got %v", next)
	}
	if next := NextStatuses(models.StatusCancelled); len(next) != 0 {
		t.Fatalf("expected Cancelled to be terminal, got %v", next)
	}
}
