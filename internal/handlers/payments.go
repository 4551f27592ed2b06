package handlers

import (
	"context"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/auth"
	"parcelpro/internal/gateway"
	"parcelpro/internal/models"
	"parcelpro/internal/store"
)

type paymentIntentRequest struct {
	ParcelID string `json:"parcelId" binding:"required"`
}

type paymentRequest struct {
	ParcelID      string  `json:"parcelId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	TransactionID string  `json:"transactionId"`
}

// CreatePaymentIntent handles POST /payment-Intent: looks up the parcel
// price and asks the gateway for a client secret to confirm the charge
// client side.
func CreatePaymentIntent(parcels *store.Parcels, intents *gateway.PaymentIntents) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payment-Intent"
		defer handlePanic(c, route)

		var req paymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ParcelID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid parcelId")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		parcel, err := parcels.FindByID(ctx, parcelID)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		amountCents := int64(math.Round(parcel.Price * 100))
		clientSecret, err := intents.CreateIntent(ctx, amountCents, "")
		if err != nil {
			log.Println("[PAYMENT] [ERROR] intent creation failed:", err)
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
	}
}

// RecordPayment handles POST /payments: appends a payment record for
// the authenticated email.
func RecordPayment(payments *store.Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payments"
		defer handlePanic(c, route)

		var req paymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		parcelID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ParcelID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid parcelId")
			return
		}
		if req.Amount <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "amount must be positive")
			return
		}

		payment := models.Payment{
			ParcelID:      parcelID,
			Email:         c.GetString("email"),
			Amount:        req.Amount,
			TransactionID: strings.TrimSpace(req.TransactionID),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		id, err := payments.Insert(ctx, &payment)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[PAYMENT] [INFO] payment recorded:", id.Hex())
		payment.ID = id
		c.JSON(http.StatusCreated, gin.H{"payment": payment})
	}
}

// ListPayments handles GET /payments/:email: a user's own payment
// history, most recent first.
func ListPayments(payments *store.Payments, policy *auth.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /payments/:email"
		defer handlePanic(c, route)

		email := strings.ToLower(strings.TrimSpace(c.Param("email")))
		if err := policy.RequireSelf(c.GetString("email"), email); err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := payments.FindByEmail(ctx, email)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": result})
	}
}
