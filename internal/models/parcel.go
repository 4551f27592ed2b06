package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a parcel booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusOnTheWay  BookingStatus = "On The Way"
	StatusDelivered BookingStatus = "Delivered"
	StatusCancelled BookingStatus = "Cancelled"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOnTheWay, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Parcel defines the persisted parcel booking document.
type Parcel struct {
	ID                    primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SenderEmail           string              `bson:"senderEmail" json:"senderEmail"`
	SenderName            string              `bson:"senderName" json:"senderName"`
	SenderPhone           string              `bson:"senderPhone,omitempty" json:"senderPhone,omitempty"`
	ParcelType            string              `bson:"parcelType" json:"parcelType"`
	ParcelWeight          float64             `bson:"parcelWeight" json:"parcelWeight"`
	ReceiverName          string              `bson:"receiverName" json:"receiverName"`
	ReceiverPhone         string              `bson:"receiverPhone" json:"receiverPhone"`
	DeliveryAddress       string              `bson:"deliveryAddress" json:"deliveryAddress"`
	RequestedDeliveryDate string              `bson:"requestedDeliveryDate" json:"requestedDeliveryDate"`
	Price                 float64             `bson:"price" json:"price"`
	BookingStatus         BookingStatus       `bson:"bookingStatus" json:"bookingStatus"`
	DeliveryManID         *primitive.ObjectID `bson:"deliveryManId,omitempty" json:"deliveryManId,omitempty"`
	ApproxDeliveryDate    string              `bson:"approxDeliveryDate,omitempty" json:"approxDeliveryDate,omitempty"`
	DeliveryDate          *time.Time          `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	IsPaid                bool                `bson:"isPaid" json:"isPaid"`
	CreatedAt             time.Time           `bson:"createdAt" json:"createdAt"`
}
