// Package store declares the persistence contract shared by the MongoDB and
// SQLite backends.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/isdelr/mesto-api/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidDocument is returned when a document fails its shape check
	// before being written.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidID is returned when an identifier cannot be cast to an
	// object id.
	ErrInvalidID = errors.New("invalid object id")
)

// UserStore persists user profiles and credentials.
type UserStore interface {
	// CreateUser assigns u.ID and inserts the record.
	CreateUser(ctx context.Context, u *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// FindUsersByIDs returns the users that exist among ids, in no order.
	FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// FindUserByEmail is the only lookup that returns PasswordHash.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id string, upd models.ProfileUpdate) (models.User, error)
}

// CardStore persists photo cards and their likes.
type CardStore interface {
	// CreateCard assigns c.ID and c.CreatedAt and inserts the record.
	CreateCard(ctx context.Context, c *models.Card) error
	ListCards(ctx context.Context) ([]models.Card, error)
	FindCardByID(ctx context.Context, id string) (models.Card, error)
	DeleteCard(ctx context.Context, id string) error
	// AddLike and RemoveLike mutate the likes set atomically in the store
	// and return the card after the change.
	AddLike(ctx context.Context, cardID, userID string) (models.Card, error)
	RemoveLike(ctx context.Context, cardID, userID string) (models.Card, error)
}

// Store is a complete backend.
type Store interface {
	UserStore
	CardStore
	Close(ctx context.Context) error
}

// NewID returns a fresh 24-character hex object id.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether id is a well-formed object id.
func ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
