package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcelpro/internal/models"
)

// Reviews is the repository for the reviews collection. Reviews are
// append-only; no update or delete path exists.
type Reviews struct {
	col *mongo.Collection
}

func (r *Reviews) Insert(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	result, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByDeliveryMen lists the reviews left for a delivery man, newest
// first. The id is the hex form stored on the review document.
func (r *Reviews) FindByDeliveryMen(ctx context.Context, deliveryMenID string) ([]models.Review, error) {
	cursor, err := r.col.Find(ctx,
		bson.M{"deliveryMenId": deliveryMenID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]models.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
