package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/auth"
	"parcelpro/internal/models"
	"parcelpro/internal/store"
	"parcelpro/internal/workflow"
)

type bookParcelRequest struct {
	SenderName            string  `json:"senderName" binding:"required"`
	SenderPhone           string  `json:"senderPhone"`
	ParcelType            string  `json:"parcelType" binding:"required"`
	ParcelWeight          float64 `json:"parcelWeight"`
	ReceiverName          string  `json:"receiverName" binding:"required"`
	ReceiverPhone         string  `json:"receiverPhone" binding:"required"`
	DeliveryAddress       string  `json:"deliveryAddress" binding:"required"`
	RequestedDeliveryDate string  `json:"requestedDeliveryDate" binding:"required"`
	Price                 float64 `json:"price" binding:"required"`
}

type updateParcelRequest struct {
	SenderName            string   `json:"senderName"`
	SenderPhone           string   `json:"senderPhone"`
	ParcelType            string   `json:"parcelType"`
	ParcelWeight          *float64 `json:"parcelWeight"`
	ReceiverName          string   `json:"receiverName"`
	ReceiverPhone         string   `json:"receiverPhone"`
	DeliveryAddress       string   `json:"deliveryAddress"`
	RequestedDeliveryDate string   `json:"requestedDeliveryDate"`
	Price                 *float64 `json:"price"`
}

type assignRequest struct {
	ParcelID           string `json:"parcelId" binding:"required"`
	DeliveryManID      string `json:"deliveryManId" binding:"required"`
	ApproxDeliveryDate string `json:"approxDeliveryDate" binding:"required"`
}

// BookParcel handles POST /parcels: a sender books a new parcel in the
// Pending state. The sender identity comes from the token, never the
// body.
func BookParcel(booking *workflow.Booking) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /parcels"
		defer handlePanic(c, route)

		var req bookParcelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		parcel := models.Parcel{
			SenderEmail:           c.GetString("email"),
			SenderName:            strings.TrimSpace(req.SenderName),
			SenderPhone:           strings.TrimSpace(req.SenderPhone),
			ParcelType:            strings.TrimSpace(req.ParcelType),
			ParcelWeight:          req.ParcelWeight,
			ReceiverName:          strings.TrimSpace(req.ReceiverName),
			ReceiverPhone:         strings.TrimSpace(req.ReceiverPhone),
			DeliveryAddress:       strings.TrimSpace(req.DeliveryAddress),
			RequestedDeliveryDate: strings.TrimSpace(req.RequestedDeliveryDate),
			Price:                 req.Price,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := booking.Book(ctx, &parcel)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[PARCEL] [INFO] parcel booked:", id.Hex())
		parcel.ID = id
		c.JSON(http.StatusCreated, gin.H{"parcel": parcel})
	}
}

// ListParcels handles GET /parcels?email&status. A caller may only list
// their own parcels; the email query must match the token identity.
func ListParcels(parcels *store.Parcels, policy *auth.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /parcels"
		defer handlePanic(c, route)

		identity := c.GetString("email")
		email := strings.ToLower(strings.TrimSpace(c.Query("email")))
		if email == "" {
			email = identity
		}
		if err := policy.RequireSelf(identity, email); err != nil {
			respondServiceError(c, route, err)
			return
		}

		status := models.BookingStatus(strings.TrimSpace(c.Query("status")))
		if status != "" && !status.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := parcels.FindBySender(ctx, email, status)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

// GetParcel handles GET /parcels/:id.
func GetParcel(parcels *store.Parcels) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /parcels/:id"
		defer handlePanic(c, route)

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		parcel, err := parcels.FindByID(ctx, parcelID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"parcel": parcel})
	}
}

// UpdateParcel handles PUT /parcels/:id: the owning sender edits a
// still-pending booking.
func UpdateParcel(booking *workflow.Booking) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /parcels/:id"
		defer handlePanic(c, route)

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateParcelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		patch := parcelPatch(req)
		if len(patch) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := booking.Update(ctx, parcelID, c.GetString("email"), patch); err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "parcel updated"})
	}
}

func parcelPatch(req updateParcelRequest) bson.M {
	patch := bson.M{}
	setIfPresent := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			patch[key] = strings.TrimSpace(value)
		}
	}
	setIfPresent("senderName", req.SenderName)
	setIfPresent("senderPhone", req.SenderPhone)
	setIfPresent("parcelType", req.ParcelType)
	setIfPresent("receiverName", req.ReceiverName)
	setIfPresent("receiverPhone", req.ReceiverPhone)
	setIfPresent("deliveryAddress", req.DeliveryAddress)
	setIfPresent("requestedDeliveryDate", req.RequestedDeliveryDate)
	if req.ParcelWeight != nil {
		patch["parcelWeight"] = *req.ParcelWeight
	}
	if req.Price != nil {
		patch["price"] = *req.Price
	}
	return patch
}

// DeleteParcel handles DELETE /parcels/:id: the owning sender cancels a
// still-pending booking by removing it.
func DeleteParcel(booking *workflow.Booking) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /parcels/:id"
		defer handlePanic(c, route)

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := booking.Delete(ctx, parcelID, c.GetString("email")); err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[PARCEL] [INFO] parcel deleted:", parcelID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "parcel deleted"})
	}
}

// ListAllParcels handles GET /parcels/admin?fromDate&toDate (admin
// only): every booking, optionally narrowed to a requested delivery
// date window.
func ListAllParcels(parcels *store.Parcels) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /parcels/admin"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		result, err := parcels.FindByDateRange(ctx,
			strings.TrimSpace(c.Query("fromDate")),
			strings.TrimSpace(c.Query("toDate")),
		)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

// AssignParcel handles PATCH /parcels/assign (admin only): binds a
// delivery man and approximate date, forcing status to On The Way.
func AssignParcel(booking *workflow.Booking) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /parcels/assign"
		defer handlePanic(c, route)

		var req assignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ParcelID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid parcelId")
			return
		}
		deliveryManID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.DeliveryManID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid deliveryManId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := booking.Assign(ctx, parcelID, deliveryManID, strings.TrimSpace(req.ApproxDeliveryDate)); err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[PARCEL] [INFO] parcel assigned:", req.ParcelID, "->", req.DeliveryManID)
		c.JSON(http.StatusOK, gin.H{"message": "parcel assigned"})
	}
}

// MarkParcelPaid handles PATCH /parcels-paid/:id after a payment has
// been recorded. The flag never transitions back.
func MarkParcelPaid(booking *workflow.Booking) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /parcels-paid/:id"
		defer handlePanic(c, route)

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := booking.MarkPaid(ctx, parcelID); err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "parcel marked paid"})
	}
}
