package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/incredible-trails/trips-service/internal/domain"
)

var ErrEmailExists = errors.New("email already registered")

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CreateUser inserts u. The duplicate check happens inside Mongo via the
// unique email index, so a racing insert for the same address loses with
// ErrEmailExists rather than creating a second user.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.Email = NormalizeEmail(u.Email)
	u.CreatedAt = time.Now().UTC()

	res, err := s.colUsers.InsertOne(ctx, u)
	if IsDup(err) {
		return ErrEmailExists
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
