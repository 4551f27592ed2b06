// Package auth centralizes authorization decisions: every role and
// ownership check goes through the Policy instead of ad-hoc lookups in
// individual handlers.
package auth

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

// Policy decides whether a verified identity may perform an operation.
type Policy struct {
	users RoleLookup
}

func NewPolicy(users RoleLookup) *Policy {
	return &Policy{users: users}
}

// RequireRole loads the caller's account and checks it against the
// allowed roles. An absent account denies access rather than erroring:
// a token alone proves an email, not an account.
func (p *Policy) RequireRole(ctx context.Context, email string, roles ...models.Role) (primitive.ObjectID, error) {
	role, id, err := p.users.RoleByEmail(ctx, email)
	if errors.Is(err, apperr.NotFound) {
		return primitive.NilObjectID, apperr.Forbidden
	}
	if err != nil {
		return primitive.NilObjectID, err
	}

	for _, allowed := range roles {
		if role == allowed {
			return id, nil
		}
	}
	return primitive.NilObjectID, apperr.Forbidden
}

// RequireSelf denies callers reading or writing another user's data.
func (p *Policy) RequireSelf(identityEmail, targetEmail string) error {
	if !strings.EqualFold(strings.TrimSpace(identityEmail), strings.TrimSpace(targetEmail)) {
		return apperr.Forbidden
	}
	return nil
}
