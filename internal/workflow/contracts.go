package workflow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/models"
)

// ParcelStore is the slice of the parcel repository the booking
// workflow drives.
type ParcelStore interface {
	Insert(ctx context.Context, parcel *models.Parcel) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Parcel, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, patch bson.M) error
	Assign(ctx context.Context, id, deliveryManID primitive.ObjectID, approxDate string) error
	CompareAndSwapStatus(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus) (bool, error)
	SetPaid(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the slice of the user repository the workflow needs:
// verifying an assignee's role and maintaining the delivered counter.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	IncrementDelivered(ctx context.Context, id primitive.ObjectID) error
}
