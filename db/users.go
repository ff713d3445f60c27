package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"slidecraft/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateUser inserts a user and fills in its ID. A taken email yields ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt, user.UpdatedAt = now, now

	result, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

func (s *Store) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
