package workflow

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

type fakeParcels struct {
	parcels map[primitive.ObjectID]*models.Parcel
	deleted int
}

func newFakeParcels(parcels ...*models.Parcel) *fakeParcels {
	f := &fakeParcels{parcels: make(map[primitive.ObjectID]*models.Parcel)}
	for _, p := range parcels {
		f.parcels[p.ID] = p
	}
	return f
}

func (f *fakeParcels) Insert(_ context.Context, parcel *models.Parcel) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	parcel.ID = id
	f.parcels[id] = parcel
	return id, nil
}

func (f *fakeParcels) FindByID(_ context.Context, id primitive.ObjectID) (*models.Parcel, error) {
	parcel, ok := f.parcels[id]
	if !ok {
		return nil, apperr.NotFound
	}
	copied := *parcel
	return &copied, nil
}

func (f *fakeParcels) UpdateFields(_ context.Context, id primitive.ObjectID, patch bson.M) error {
	if _, ok := f.parcels[id]; !ok {
		return apperr.NotFound
	}
	return nil
}

func (f *fakeParcels) Assign(_ context.Context, id, deliveryManID primitive.ObjectID, approxDate string) error {
	parcel, ok := f.parcels[id]
	if !ok {
		return apperr.NotFound
	}
	parcel.DeliveryManID = &deliveryManID
	parcel.ApproxDeliveryDate = approxDate
	parcel.BookingStatus = models.StatusOnTheWay
	return nil
}

func (f *fakeParcels) CompareAndSwapStatus(_ context.Context, id primitive.ObjectID, from, to models.BookingStatus) (bool, error) {
	parcel, ok := f.parcels[id]
	if !ok || parcel.BookingStatus != from {
		return false, nil
	}
	parcel.BookingStatus = to
	return true, nil
}

func (f *fakeParcels) SetPaid(_ context.Context, id primitive.ObjectID) error {
	parcel, ok := f.parcels[id]
	if !ok {
		return apperr.NotFound
	}
	parcel.IsPaid = true
	return nil
}

func (f *fakeParcels) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.parcels[id]; !ok {
		return apperr.NotFound
	}
	delete(f.parcels, id)
	f.deleted++
	return nil
}

type fakeUsers struct {
	users      map[primitive.ObjectID]*models.User
	increments map[primitive.ObjectID]int
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{
		users:      make(map[primitive.ObjectID]*models.User),
		increments: make(map[primitive.ObjectID]int),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound
	}
	return user, nil
}

func (f *fakeUsers) IncrementDelivered(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return apperr.NotFound
	}
	f.increments[id]++
	return nil
}

func TestBookSetsPendingDefaults(t *testing.T) {
	parcels := newFakeParcels()
	booking := NewBooking(parcels, newFakeUsers())

	manID := primitive.NewObjectID()
	parcel := &models.Parcel{
		SenderEmail:   "sender@example.com",
		Price:         1000,
		BookingStatus: models.StatusDelivered,
		IsPaid:        true,
		DeliveryManID: &manID,
	}

	id, err := booking.Book(context.Background(), parcel)
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}

	stored := parcels.parcels[id]
	if stored.BookingStatus != models.StatusPending {
		t.Fatalf("expected Pending, got %q", stored.BookingStatus)
	}
	if stored.IsPaid {
		t.Fatal("expected isPaid=false on a new booking")
	}
	if stored.DeliveryManID != nil {
		t.Fatal("expected no delivery man on a new booking")
	}
}

func TestBookRequiresSenderEmail(t *testing.T) {
	booking := NewBooking(newFakeParcels(), newFakeUsers())

	_, err := booking.Book(context.Background(), &models.Parcel{Price: 100})
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid, got %v", err)
	}
}

func TestAssignSetsDeliveryManAndStatus(t *testing.T) {
	parcelID := primitive.NewObjectID()
	manID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{ID: parcelID, SenderEmail: "a@x.com", BookingStatus: models.StatusPending})
	users := newFakeUsers(&models.User{ID: manID, Role: models.RoleDeliveryMen})
	booking := NewBooking(parcels, users)

	if err := booking.Assign(context.Background(), parcelID, manID, "2026-09-01"); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}

	stored := parcels.parcels[parcelID]
	if stored.BookingStatus != models.StatusOnTheWay {
		t.Fatalf("expected On The Way, got %q", stored.BookingStatus)
	}
	if stored.DeliveryManID == nil || *stored.DeliveryManID != manID {
		t.Fatal("expected deliveryManId to be set")
	}
	if stored.ApproxDeliveryDate != "2026-09-01" {
		t.Fatalf("expected approxDeliveryDate, got %q", stored.ApproxDeliveryDate)
	}
}

func TestAssignRejectsNonDeliveryMan(t *testing.T) {
	parcelID := primitive.NewObjectID()
	senderID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{ID: parcelID, SenderEmail: "a@x.com", BookingStatus: models.StatusPending})
	users := newFakeUsers(&models.User{ID: senderID, Role: models.RoleSender})
	booking := NewBooking(parcels, users)

	err := booking.Assign(context.Background(), parcelID, senderID, "2026-09-01")
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid for sender assignee, got %v", err)
	}
}

func TestAssignRejectsNonPendingParcel(t *testing.T) {
	parcelID := primitive.NewObjectID()
	manID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{ID: parcelID, SenderEmail: "a@x.com", BookingStatus: models.StatusDelivered})
	users := newFakeUsers(&models.User{ID: manID, Role: models.RoleDeliveryMen})
	booking := NewBooking(parcels, users)

	err := booking.Assign(context.Background(), parcelID, manID, "2026-09-01")
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid for delivered parcel, got %v", err)
	}
}

func TestDeliveredIncrementsCounterExactlyOnce(t *testing.T) {
	parcelID := primitive.NewObjectID()
	manID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{
		ID:            parcelID,
		SenderEmail:   "a@x.com",
		BookingStatus: models.StatusOnTheWay,
		DeliveryManID: &manID,
	})
	users := newFakeUsers(&models.User{ID: manID, Role: models.RoleDeliveryMen})
	booking := NewBooking(parcels, users)

	if err := booking.UpdateStatus(context.Background(), parcelID, models.StatusDelivered); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if users.increments[manID] != 1 {
		t.Fatalf("expected exactly one increment, got %d", users.increments[manID])
	}

	// A retried Delivered no longer matches the transition table.
	err := booking.UpdateStatus(context.Background(), parcelID, models.StatusDelivered)
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid on retry, got %v", err)
	}
	if users.increments[manID] != 1 {
		t.Fatalf("retry must not double-count, got %d increments", users.increments[manID])
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	parcelID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{ID: parcelID, SenderEmail: "a@x.com", BookingStatus: models.StatusPending})
	booking := NewBooking(parcels, newFakeUsers())

	err := booking.UpdateStatus(context.Background(), parcelID, models.BookingStatus("Lost"))
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid for unknown status, got %v", err)
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	parcelID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{ID: parcelID, SenderEmail: "owner@x.com", BookingStatus: models.StatusPending})
	booking := NewBooking(parcels, newFakeUsers())

	err := booking.Delete(context.Background(), parcelID, "intruder@x.com")
	if !errors.Is(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for non-owner, got %v", err)
	}
	if parcels.deleted != 0 {
		t.Fatal("delete must not run for a non-owner")
	}

	if err := booking.Delete(context.Background(), parcelID, "owner@x.com"); err != nil {
		t.Fatalf("owner delete returned error: %v", err)
	}
	if parcels.deleted != 1 {
		t.Fatal("expected the parcel to be deleted")
	}
}

func TestDeleteRejectsAssignedParcel(t *testing.T) {
	parcelID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{ID: parcelID, SenderEmail: "owner@x.com", BookingStatus: models.StatusOnTheWay})
	booking := NewBooking(parcels, newFakeUsers())

	err := booking.Delete(context.Background(), parcelID, "owner@x.com")
	if !errors.Is(err, apperr.Invalid) {
		t.Fatalf("expected Invalid for assigned parcel, got %v", err)
	}
}

func TestMarkPaidFlipsFlag(t *testing.T) {
	parcelID := primitive.NewObjectID()
	parcels := newFakeParcels(&models.Parcel{ID: parcelID, SenderEmail: "a@x.com", BookingStatus: models.StatusDelivered})
	booking := NewBooking(parcels, newFakeUsers())

	if err := booking.MarkPaid(context.Background(), parcelID); err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	if !parcels.parcels[parcelID].IsPaid {
		t.Fatal("expected isPaid=true")
	}

	// Marking an already paid parcel is a no-op, never a reversal.
	if err := booking.MarkPaid(context.Background(), parcelID); err != nil {
		t.Fatalf("second MarkPaid returned error: %v", err)
	}
	if !parcels.parcels[parcelID].IsPaid {
		t.Fatal("isPaid must never transition back to false")
	}
}
