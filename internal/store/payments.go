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

// Payments is the repository for the payments collection. Payments are
// append-only.
type Payments struct {
	col *mongo.Collection
}

func (p *Payments) Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error) {
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now()
	}
	result, err := p.col.InsertOne(ctx, payment)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// FindByEmail lists a user's payments, most recent first.
func (p *Payments) FindByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	cursor, err := p.col.Find(ctx,
		bson.M{"email": email},
		options.Find().SetSort(bson.D{{Key: "paidAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
