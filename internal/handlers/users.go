package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
	"parcelpro/internal/reports"
	"parcelpro/internal/store"
)

type signupRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Image string `json:"image"`
}

type roleUpdateRequest struct {
	ID   string `json:"id" binding:"required"`
	Role string `json:"role" binding:"required"`
}

type deliveryManUpdateRequest struct {
	ID    string `json:"id" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Image string `json:"image"`
}

// CreateUser handles POST /users. Signup is idempotent on email: a
// second signup returns the "already exists" signal instead of a
// duplicate record.
func CreateUser(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /users"
		defer handlePanic(c, route)

		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		role := models.Role(req.Role)
		if role == "" {
			role = models.RoleSender
		}
		if !role.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "invalid role")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if _, err := users.FindByEmail(ctx, email); err == nil {
			c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
			return
		} else if !errors.Is(err, apperr.NotFound) {
			respondServiceError(c, route, err)
			return
		}

		user := models.User{
			Email: email,
			Name:  strings.TrimSpace(req.Name),
			Role:  role,
			Phone: strings.TrimSpace(req.Phone),
			Image: strings.TrimSpace(req.Image),
		}

		id, err := users.Insert(ctx, &user)
		if errors.Is(err, apperr.Conflict) {
			c.JSON(http.StatusOK, gin.H{"message": "User already exists"})
			return
		}
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[USER] [INFO] user registered:", email)
		user.ID = id
		c.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// GetUserRole handles GET /users/role/:email. Verified reports whether
// the account has completed its profile (delivery men must add a phone
// number before taking deliveries).
func GetUserRole(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/role/:email"
		defer handlePanic(c, route)

		email := strings.ToLower(strings.TrimSpace(c.Param("email")))
		if email == "" {
			respondWithError(c, http.StatusBadRequest, route, "email is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.FindByEmail(ctx, email)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		verified := user.Role != models.RoleDeliveryMen || user.Phone != ""
		c.JSON(http.StatusOK, gin.H{
			"role":     user.Role,
			"verified": verified,
			"id":       user.ID.Hex(),
		})
	}
}

// ListUserSummaries handles GET /users/admin?currentPage&limit with the
// per-user parcel count and total spend.
func ListUserSummaries(engine *reports.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/admin"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("currentPage"), c.Query("limit"))
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		summaries, err := engine.UserSummaries(ctx, page, limit)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": summaries, "currentPage": page, "limit": limit})
	}
}

// UpdateUserRole handles PATCH /users/role (admin only).
func UpdateUserRole(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /users/role"
		defer handlePanic(c, route)

		var req roleUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		role := models.Role(req.Role)
		if !role.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "invalid role")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := users.UpdateRole(ctx, userID, role); err != nil {
			respondServiceError(c, route, err)
			return
		}

		log.Println("[USER] [INFO] role updated:", req.ID, "->", role)
		c.JSON(http.StatusOK, gin.H{"message": "role updated"})
	}
}

// ListDeliveryMen handles GET /users/deliveryMen (admin only): every
// delivery man with delivered count and average rating.
func ListDeliveryMen(engine *reports.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /users/deliveryMen"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		profiles, err := engine.DeliveryMenProfiles(ctx)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": profiles})
	}
}

// UpdateDeliveryMan handles PATCH /deliveryman: a delivery man
// completing his own profile. The id in the body must be the caller's.
func UpdateDeliveryMan(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /deliveryman"
		defer handlePanic(c, route)

		var req deliveryManUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		targetID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		callerID, ok := c.Get("userId")
		if !ok || callerID.(primitive.ObjectID) != targetID {
			respondWithError(c, http.StatusForbidden, route, "forbidden")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := users.UpdateProfile(ctx, targetID, strings.TrimSpace(req.Phone), strings.TrimSpace(req.Image)); err != nil {
			respondServiceError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}
