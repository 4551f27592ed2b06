package auth

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

type fakeLookup struct {
	roles map[string]models.Role
	ids   map[string]primitive.ObjectID
}

func (f *fakeLookup) RoleByEmail(_ context.Context, email string) (models.Role, primitive.ObjectID, error) {
	role, ok := f.roles[email]
	if !ok {
		return "", primitive.NilObjectID, apperr.NotFound
	}
	return role, f.ids[email], nil
}

func TestRequireRoleMatch(t *testing.T) {
	adminID := primitive.NewObjectID()
	policy := NewPolicy(&fakeLookup{
		roles: map[string]models.Role{"admin@x.com": models.RoleAdmin},
		ids:   map[string]primitive.ObjectID{"admin@x.com": adminID},
	})

	id, err := policy.RequireRole(context.Background(), "admin@x.com", models.RoleAdmin)
	if err != nil {
		t.Fatalf("RequireRole returned error: %v", err)
	}
	if id != adminID {
		t.Fatal("expected the account id back")
	}
}

func TestRequireRoleMismatch(t *testing.T) {
	policy := NewPolicy(&fakeLookup{
		roles: map[string]models.Role{"sender@x.com": models.RoleSender},
		ids:   map[string]primitive.ObjectID{"sender@x.com": primitive.NewObjectID()},
	})

	_, err := policy.RequireRole(context.Background(), "sender@x.com", models.RoleAdmin)
	if !errors.Is(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for role mismatch, got %v", err)
	}
}

func TestRequireRoleMissingAccountDenies(t *testing.T) {
	policy := NewPolicy(&fakeLookup{roles: map[string]models.Role{}})

	_, err := policy.RequireRole(context.Background(), "ghost@x.com", models.RoleAdmin)
	if !errors.Is(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for missing account, got %v", err)
	}
}

func TestRequireSelf(t *testing.T) {
	policy := NewPolicy(&fakeLookup{})

	if err := policy.RequireSelf("a@x.com", "A@X.com"); err != nil {
		t.Fatalf("expected case-insensitive self match, got %v", err)
	}
	if err := policy.RequireSelf("a@x.com", "b@x.com"); !errors.Is(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for other email, got %v", err)
	}
}
