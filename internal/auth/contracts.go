package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/models"
)

// RoleLookup resolves the stored role for an authenticated email. A
// missing account must surface apperr.NotFound, never a panic.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (models.Role, primitive.ObjectID, error)
}
