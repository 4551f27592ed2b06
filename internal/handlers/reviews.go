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
)

type reviewRequest struct {
	DeliveryMenID string  `json:"deliveryMenId" binding:"required"`
	Rating        float64 `json:"rating" binding:"required,min=1,max=5"`
	Feedback      string  `json:"feedback"`
	UserName      string  `json:"userName"`
	UserImage     string  `json:"userImage"`
}

// CreateReview handles POST /reviews. Reviews are append-only; the
// authoring email comes from the token.
func CreateReview(reviews *store.Reviews) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /reviews"
		defer handlePanic(c, route)

		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		deliveryMenID := strings.TrimSpace(req.DeliveryMenID)
		if _, err := primitive.ObjectIDFromHex(deliveryMenID); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid deliveryMenId")
			return
		}

		review := models.Review{
			DeliveryMenID: deliveryMenID,
			UserEmail:     c.GetString("email"),
			UserName:      strings.TrimSpace(req.UserName),
			UserImage:     strings.TrimSpace(req.UserImage),
			Rating:        req.Rating,
			Feedback:      strings.TrimSpace(req.Feedback),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := reviews.Insert(ctx, &review)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[REVIEW] [INFO] review created:", id.Hex())
		review.ID = id
		c.JSON(http.StatusCreated, gin.H{"review": review})
	}
}

// ListReviews handles GET /reviews/:id (delivery men only): the reviews
// left for a delivery man, newest first.
func ListReviews(reviews *store.Reviews) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /reviews/:id"
		defer handlePanic(c, route)

		deliveryMenID := strings.TrimSpace(c.Param("id"))
		if _, err := primitive.ObjectIDFromHex(deliveryMenID); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := reviews.FindByDeliveryMen(ctx, deliveryMenID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}
