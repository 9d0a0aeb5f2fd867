package mongo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/isdelr/mesto-api/internal/store"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), store.ErrNotFound)

	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	assert.ErrorIs(t, translate(dup), store.ErrDuplicateKey)

	other := errors.New("socket closed")
	assert.Equal(t, other, translate(other))
}

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := objectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = objectID("5d8b8592978f8bd833ca813z")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	_, err = objectIDs([]string{oid.Hex(), "short"})
	assert.ErrorIs(t, err, store.ErrInvalidID)
}

func TestDocsToModels(t *testing.T) {
	owner := primitive.NewObjectID()
	fan := primitive.NewObjectID()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	card := cardDoc{
		ID:        primitive.NewObjectID(),
		Name:      "Park",
		Link:      "http://a.com/img.png",
		Owner:     owner,
		Likes:     []primitive.ObjectID{fan},
		CreatedAt: created,
	}.model()

	assert.Equal(t, owner.Hex(), card.Owner)
	assert.Equal(t, []string{fan.Hex()}, card.Likes)
	assert.Equal(t, created, card.CreatedAt)

	empty := cardDoc{ID: primitive.NewObjectID(), Owner: owner}.model()
	assert.NotNil(t, empty.Likes)

	user := userDoc{ID: owner, Email: "a@b.com", Password: "hash"}.model()
	assert.Equal(t, owner.Hex(), user.ID)
	assert.Equal(t, "hash", user.PasswordHash)
}
