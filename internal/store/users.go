package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"parcelpro/internal/apperr"
	"parcelpro/internal/models"
)

// Users is the repository for the users collection.
type Users struct {
	col *mongo.Collection
}

func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := u.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := u.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Insert stores a new user. Callers must check FindByEmail first; the
// unique email index backstops races with apperr.Conflict.
func (u *Users) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	result, err := u.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, apperr.Conflict
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (u *Users) UpdateRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	result, err := u.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound
	}
	return nil
}

// UpdateProfile applies a partial patch to profile fields; empty values
// are left untouched.
func (u *Users) UpdateProfile(ctx context.Context, id primitive.ObjectID, phone, image string) error {
	patch := bson.M{}
	if phone != "" {
		patch["phone"] = phone
	}
	if image != "" {
		patch["image"] = image
	}
	if len(patch) == 0 {
		return apperr.Invalid
	}

	result, err := u.col.UpdateByID(ctx, id, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound
	}
	return nil
}

// IncrementDelivered bumps the denormalized delivered counter by one.
func (u *Users) IncrementDelivered(ctx context.Context, id primitive.ObjectID) error {
	result, err := u.col.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"deliveredCount": 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound
	}
	return nil
}

func (u *Users) Count(ctx context.Context) (int64, error) {
	return u.col.CountDocuments(ctx, bson.M{})
}

// RoleByEmail satisfies the access-policy lookup: the user's role and
// id, or apperr.NotFound when no account exists for the email.
func (u *Users) RoleByEmail(ctx context.Context, email string) (models.Role, primitive.ObjectID, error) {
	user, err := u.FindByEmail(ctx, email)
	if err != nil {
		return "", primitive.NilObjectID, err
	}
	return user.Role, user.ID, nil
}
