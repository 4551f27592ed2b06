// Package workflow implements the parcel booking lifecycle: creation,
// assignment, status transitions, payment marking, edits and deletion.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

// Booking drives parcel state through the transition table.
type Booking struct {
	parcels ParcelStore
	users   UserStore
}

func NewBooking(parcels ParcelStore, users UserStore) *Booking {
	return &Booking{parcels: parcels, users: users}
}

// Book creates a new parcel in the Pending state for the sender.
func (b *Booking) Book(ctx context.Context, parcel *models.Parcel) (primitive.ObjectID, error) {
	if strings.TrimSpace(parcel.SenderEmail) == "" {
		return primitive.NilObjectID, fmt.Errorf("%w: senderEmail is required", apperr.Invalid)
	}
	if parcel.Price < 0 {
		return primitive.NilObjectID, fmt.Errorf("%w: price must not be negative", apperr.Invalid)
	}

	parcel.BookingStatus = models.StatusPending
	parcel.IsPaid = false
	parcel.DeliveryManID = nil
	return b.parcels.Insert(ctx, parcel)
}

// Assign binds a delivery man to a pending parcel and moves it to
// On The Way. The assignee must hold the delivery man role.
func (b *Booking) Assign(ctx context.Context, parcelID, deliveryManID primitive.ObjectID, approxDate string) error {
	parcel, err := b.parcels.FindByID(ctx, parcelID)
	if err != nil {
		return err
	}
	if err := CanTransition(parcel.BookingStatus, models.StatusOnTheWay); err != nil {
		return err
	}
	if strings.TrimSpace(approxDate) == "" {
		return fmt.Errorf("%w: approxDeliveryDate is required", apperr.Invalid)
	}

	assignee, err := b.users.FindByID(ctx, deliveryManID)
	if errors.Is(err, apperr.NotFound) {
		return fmt.Errorf("%w: delivery man not found", apperr.Invalid)
	}
	if err != nil {
		return err
	}
	if assignee.Role != models.RoleDeliveryMen {
		return fmt.Errorf("%w: assignee is not a delivery man", apperr.Invalid)
	}

	return b.parcels.Assign(ctx, parcelID, deliveryManID, approxDate)
}

// UpdateStatus moves a parcel to a new booking status. The Delivered
// transition swaps the status with a compare-and-swap and only then
// increments the assignee's delivered counter, so a retried call
// cannot double-count.
func (b *Booking) UpdateStatus(ctx context.Context, parcelID primitive.ObjectID, status models.BookingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown booking status %q", apperr.Invalid, status)
	}

	parcel, err := b.parcels.FindByID(ctx, parcelID)
	if err != nil {
		return err
	}
	if err := CanTransition(parcel.BookingStatus, status); err != nil {
		return err
	}

	swapped, err := b.parcels.CompareAndSwapStatus(ctx, parcelID, parcel.BookingStatus, status)
	if err != nil {
		return err
	}
	if !swapped {
		return fmt.Errorf("%w: booking status changed concurrently", apperr.Conflict)
	}

	if status == models.StatusDelivered && parcel.DeliveryManID != nil {
		if err := b.users.IncrementDelivered(ctx, *parcel.DeliveryManID); err != nil {
			return err
		}
	}
	return nil
}

// MarkPaid flips the parcel's isPaid flag. There is no compensating
// transition.
func (b *Booking) MarkPaid(ctx context.Context, parcelID primitive.ObjectID) error {
	return b.parcels.SetPaid(ctx, parcelID)
}

// Update edits a booking. Only the owning sender may edit, and only
// while the parcel is still Pending.
func (b *Booking) Update(ctx context.Context, parcelID primitive.ObjectID, callerEmail string, patch bson.M) error {
	if _, err := b.ownedPending(ctx, parcelID, callerEmail); err != nil {
		return err
	}
	return b.parcels.UpdateFields(ctx, parcelID, patch)
}

// Delete removes a booking. Only the owning sender may delete, and only
// while the parcel is still Pending (unassigned).
func (b *Booking) Delete(ctx context.Context, parcelID primitive.ObjectID, callerEmail string) error {
	if _, err := b.ownedPending(ctx, parcelID, callerEmail); err != nil {
		return err
	}
	return b.parcels.Delete(ctx, parcelID)
}

func (b *Booking) ownedPending(ctx context.Context, parcelID primitive.ObjectID, callerEmail string) (*models.Parcel, error) {
	parcel, err := b.parcels.FindByID(ctx, parcelID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(parcel.SenderEmail, strings.TrimSpace(callerEmail)) {
		return nil, apperr.Forbidden
	}
	if parcel.BookingStatus != models.StatusPending {
		return nil, fmt.Errorf("%w: parcel is no longer pending", apperr.Invalid)
	}
	return parcel, nil
}
