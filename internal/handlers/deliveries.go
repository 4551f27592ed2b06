package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/models"
	"parcelpro/internal/store"
	"parcelpro/internal/workflow"
)

type deliveryStatusRequest struct {
	ParcelID      string `json:"parcelId" binding:"required"`
	Status        string `json:"status" binding:"required"`
	DeliveryMenID string `json:"deliveryMenId"`
}

// ListDeliveries handles GET /deliveries/:id (delivery men only): the
// parcels assigned to that delivery man.
func ListDeliveries(parcels *store.Parcels) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /deliveries/:id"
		defer handlePanic(c, route)

		deliveryManID, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := parcels.FindByDeliveryMan(ctx, deliveryManID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}

// UpdateDeliveryStatus handles PATCH /deliveries (delivery men only).
// Moving to Delivered also bumps the assignee's delivered counter,
// exactly once per parcel.
func UpdateDeliveryStatus(booking *workflow.Booking) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /deliveries"
		defer handlePanic(c, route)

		var req deliveryStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ParcelID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid parcelId")
			return
		}

		status := models.BookingStatus(strings.TrimSpace(req.Status))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := booking.UpdateStatus(ctx, parcelID, status); err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[DELIVERY] [INFO] status updated:", req.ParcelID, "->", status)
		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	}
}
