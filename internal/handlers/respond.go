package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"parcelpro/internal/apperr"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondServiceError translates the error taxonomy into HTTP statuses
// uniformly across every handler.
func respondServiceError(c *gin.Context, route string, err error) {
	switch {
	case errors.Is(err, apperr.Invalid):
		respondWithError(c, http.StatusBadRequest, route, err.Error())
	case errors.Is(err, apperr.Unauthorized):
		respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
	case errors.Is(err, apperr.Forbidden):
		respondWithError(c, http.StatusForbidden, route, "forbidden")
	case errors.Is(err, apperr.NotFound):
		respondWithError(c, http.StatusNotFound, route, "not found")
	case errors.Is(err, apperr.Conflict):
		respondWithError(c, http.StatusConflict, route, err.Error())
	default:
		log.Printf("[%s] unexpected error: %v", route, err)
		respondWithError(c, http.StatusInternalServerError, route, "db error")
	}
}
