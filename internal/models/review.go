package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is an append-only rating left for a delivery man after a
// delivery. DeliveryMenID holds the hex form of the delivery man's
// user id so review lookups can join on the stringified _id.
type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeliveryMenID string             `bson:"deliveryMenId" json:"deliveryMenId"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	UserName      string             `bson:"userName" json:"userName"`
	UserImage     string             `bson:"userImage,omitempty" json:"userImage,omitempty"`
	Rating        float64            `bson:"rating" json:"rating"`
	Feedback      string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
