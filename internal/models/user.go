package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the account type stored on a user document.
type Role string

const (
	RoleSender      Role = "sender"
	RoleAdmin       Role = "admin"
	RoleDeliveryMen Role = "deliveryMen"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSender, RoleAdmin, RoleDeliveryMen:
		return true
	}
	return false
}

// User represents the application user account. Email is unique across
// the collection; DeliveredCount is only maintained for delivery men.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Name           string             `bson:"name" json:"name"`
	Role           Role               `bson:"role" json:"role"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image          string             `bson:"image,omitempty" json:"image,omitempty"`
	DeliveredCount int64              `bson:"deliveredCount" json:"deliveredCount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
