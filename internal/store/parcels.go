package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

// Parcels is the repository for the parcels collection.
type Parcels struct {
	col *mongo.Collection
}

func (p *Parcels) Insert(ctx context.Context, parcel *models.Parcel) (primitive.ObjectID, error) {
	if parcel.CreatedAt.IsZero() {
		parcel.CreatedAt = time.Now()
	}
	if parcel.BookingStatus == "" {
		parcel.BookingStatus = models.StatusPending
	}
	result, err := p.col.InsertOne(ctx, parcel)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (p *Parcels) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Parcel, error) {
	var parcel models.Parcel
	err := p.col.FindOne(ctx, bson.M{"_id": id}).Decode(&parcel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound
	}
	if err != nil {
		return nil, err
	}
	return &parcel, nil
}

// FindBySender lists a sender's parcels newest first, optionally
// narrowed to a booking status.
func (p *Parcels) FindBySender(ctx context.Context, email string, status models.BookingStatus) ([]models.Parcel, error) {
	filter := bson.M{"senderEmail": email}
	if status != "" {
		filter["bookingStatus"] = status
	}
	return p.findAll(ctx, filter)
}

// FindByDeliveryMan lists the parcels assigned to a delivery man.
func (p *Parcels) FindByDeliveryMan(ctx context.Context, id primitive.ObjectID) ([]models.Parcel, error) {
	return p.findAll(ctx, bson.M{"deliveryManId": id})
}

// FindByDateRange lists all parcels, optionally narrowed to a requested
// delivery date window. Dates are the YYYY-MM-DD strings the booking
// form submits, so a lexicographic range matches a date range.
func (p *Parcels) FindByDateRange(ctx context.Context, fromDate, toDate string) ([]models.Parcel, error) {
	filter := bson.M{}
	dateRange := bson.M{}
	if fromDate != "" {
		dateRange["$gte"] = fromDate
	}
	if toDate != "" {
		dateRange["$lte"] = toDate
	}
	if len(dateRange) > 0 {
		filter["requestedDeliveryDate"] = dateRange
	}
	return p.findAll(ctx, filter)
}

func (p *Parcels) findAll(ctx context.Context, filter bson.M) ([]models.Parcel, error) {
	cursor, err := p.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	parcels := make([]models.Parcel, 0)
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// UpdateFields applies a partial patch to an existing parcel document.
func (p *Parcels) UpdateFields(ctx context.Context, id primitive.ObjectID, patch bson.M) error {
	if len(patch) == 0 {
		return apperr.Invalid
	}
	result, err := p.col.UpdateByID(ctx, id, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound
	}
	return nil
}

// Assign binds a delivery man and approximate date to the parcel and
// forces the booking status to On The Way.
func (p *Parcels) Assign(ctx context.Context, id, deliveryManID primitive.ObjectID, approxDate string) error {
	result, err := p.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"deliveryManId":      deliveryManID,
		"approxDeliveryDate": approxDate,
		"bookingStatus":      models.StatusOnTheWay,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound
	}
	return nil
}

// CompareAndSwapStatus moves the parcel from one status to another only
// if it is still in the expected status, reporting whether this call
// performed the swap. Retries of a Delivered transition therefore match
// nothing and cannot double-apply side effects.
func (p *Parcels) CompareAndSwapStatus(ctx context.Context, id primitive.ObjectID, from, to models.BookingStatus) (bool, error) {
	patch := bson.M{"bookingStatus": to}
	if to == models.StatusDelivered {
		patch["deliveryDate"] = time.Now()
	}

	result, err := p.col.UpdateOne(ctx, bson.M{"_id": id, "bookingStatus": from}, bson.M{"$set": patch})
	if err != nil {
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// SetPaid flips isPaid to true. The transition is one way; calling it
// on an already paid parcel is a no-op.
func (p *Parcels) SetPaid(ctx context.Context, id primitive.ObjectID) error {
	result, err := p.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"isPaid": true}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound
	}
	return nil
}

func (p *Parcels) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := p.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound
	}
	return nil
}

func (p *Parcels) Count(ctx context.Context) (int64, error) {
	return p.col.CountDocuments(ctx, bson.M{})
}

func (p *Parcels) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	return p.col.CountDocuments(ctx, bson.M{"bookingStatus": status})
}
