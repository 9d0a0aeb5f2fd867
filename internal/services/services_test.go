package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/isdelr/mesto-api/internal/apperr"
	"github.com/isdelr/mesto-api/internal/auth"
	"github.com/isdelr/mesto-api/internal/database"
	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/services"
	"github.com/isdelr/mesto-api/internal/store"
	"github.com/isdelr/mesto-api/internal/store/sqlite"
)

type fixture struct {
	store  *sqlite.Store
	tokens *auth.Tokens
	users  *services.UserService
	cards  *services.CardService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "mesto.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	st := sqlite.New(db)
	t.Cleanup(func() { st.Close(context.Background()) })

	tokens := auth.NewTokens("test-secret", time.Hour)
	return fixture{
		store:  st,
		tokens: tokens,
		users:  services.NewUserService(st, auth.NewHasher(bcrypt.MinCost), tokens),
		cards:  services.NewCardService(st, st),
	}
}

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	var aerr *apperr.Error
	require.True(t, errors.As(err, &aerr), "expected *apperr.Error, got %v", err)
	assert.Equal(t, kind, aerr.Kind)
	return aerr
}

func signup(t *testing.T, f fixture, email string) models.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), services.SignupInput{Email: email, Password: "secret123"})
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.users.CreateUser(ctx, services.SignupInput{Email: " A@B.com ", Password: "secret123"})
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, models.DefaultUserName, u.Name)

	stored, err := f.store.FindUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestCreateUserDuplicate(t *testing.T) {
	f := newFixture(t)
	signup(t, f, "a@b.com")

	_, err := f.users.CreateUser(context.Background(), services.SignupInput{Email: "a@b.com", Password: "other123"})
	aerr := requireKind(t, err, apperr.KindConflict)
	assert.Equal(t, apperr.MsgEmailExists, aerr.Message)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := signup(t, f, "a@b.com")

	token, err := f.users.Login(ctx, "a@b.com", "secret123")
	require.NoError(t, err)

	subject, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, subject)

	_, wrongPassword := f.users.Login(ctx, "a@b.com", "nope-nope")
	_, unknownEmail := f.users.Login(ctx, "who@b.com", "secret123")

	a := requireKind(t, wrongPassword, apperr.KindAuth)
	b := requireKind(t, unknownEmail, apperr.KindAuth)
	assert.Equal(t, a.Message, b.Message)
	assert.Equal(t, apperr.MsgInvalidCredentials, a.Message)
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := signup(t, f, "a@b.com")

	got, err := f.users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = f.users.GetUserByID(ctx, store.NewID())
	requireKind(t, err, apperr.KindNotFound)

	_, err = f.users.GetUserByID(ctx, "bad")
	assert.ErrorIs(t, err, store.ErrInvalidID)

	all, err := f.users.GetUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.User{u}, all)
}

func TestUpdateProfileAndAvatar(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := signup(t, f, "a@b.com")

	got, err := f.users.UpdateProfile(ctx, u.ID, "Ivan", "Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Ivan", got.Name)
	assert.Equal(t, "Engineer", got.About)

	got, err = f.users.UpdateAvatar(ctx, u.ID, "https://a.com/me.png")
	require.NoError(t, err)
	assert.Equal(t, "https://a.com/me.png", got.Avatar)
	assert.Equal(t, "Ivan", got.Name)

	_, err = f.users.UpdateAvatar(ctx, store.NewID(), "https://a.com/me.png")
	requireKind(t, err, apperr.KindNotFound)
}

func TestCardOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := signup(t, f, "owner@b.com")
	other := signup(t, f, "other@b.com")

	card, err := f.cards.CreateCard(ctx, owner.ID, "Park", "http://a.com/img.png")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, card.Owner)

	_, err = f.cards.DeleteCard(ctx, other.ID, card.ID)
	requireKind(t, err, apperr.KindForbidden)

	_, err = f.store.FindCardByID(ctx, card.ID)
	require.NoError(t, err, "card survives a forbidden delete")

	deleted, err := f.cards.DeleteCard(ctx, owner.ID, card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, deleted.ID)

	_, err = f.cards.DeleteCard(ctx, owner.ID, card.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestLikes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := signup(t, f, "owner@b.com")
	fan := signup(t, f, "fan@b.com")

	card, err := f.cards.CreateCard(ctx, owner.ID, "Park", "http://a.com/img.png")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		view, err := f.cards.LikeCard(ctx, fan.ID, card.ID)
		require.NoError(t, err)
		require.Len(t, view.Likes, 1)
		assert.Equal(t, fan.ID, view.Likes[0].ID)
		require.NotNil(t, view.Owner)
		assert.Equal(t, owner.ID, view.Owner.ID)
	}

	for i := 0; i < 2; i++ {
		view, err := f.cards.DislikeCard(ctx, fan.ID, card.ID)
		require.NoError(t, err)
		assert.Empty(t, view.Likes)
	}

	_, err = f.cards.LikeCard(ctx, fan.ID, store.NewID())
	requireKind(t, err, apperr.KindNotFound)

	_, err = f.cards.DislikeCard(ctx, fan.ID, store.NewID())
	requireKind(t, err, apperr.KindNotFound)
}

func TestGetCardsResolvesUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := signup(t, f, "owner@b.com")
	fan := signup(t, f, "fan@b.com")

	first, err := f.cards.CreateCard(ctx, owner.ID, "First", "http://a.com/1.png")
	require.NoError(t, err)
	_, err = f.cards.CreateCard(ctx, fan.ID, "Second", "http://a.com/2.png")
	require.NoError(t, err)
	_, err = f.cards.LikeCard(ctx, fan.ID, first.ID)
	require.NoError(t, err)

	views, err := f.cards.GetCards(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "First", views[0].Name)
	assert.Equal(t, owner.Email, views[0].Owner.Email)
	require.Len(t, views[0].Likes, 1)
	assert.Equal(t, fan.Email, views[0].Likes[0].Email)

	assert.Equal(t, fan.ID, views[1].Owner.ID)
	assert.Empty(t, views[1].Likes)
}
