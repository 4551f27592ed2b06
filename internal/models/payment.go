package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an append-only record of a confirmed charge for a parcel.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ParcelID      primitive.ObjectID `bson:"parcelId" json:"parcelId"`
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}
