package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"parcelpro/internal/token"
)

type jwtRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken handles POST /jwt: it signs the supplied email into a
// bearer token. Identity is asserted by the client; the account check
// happens later in the access policy.
func IssueToken(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /jwt"
		defer handlePanic(c, route)

		var req jwtRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		signed, err := tokens.Issue(strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			log.Println("[AUTH] [ERROR] token generation failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed})
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			field := lowerCamel(fieldError.Field())
			switch fieldError.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "details": err.Error()})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
