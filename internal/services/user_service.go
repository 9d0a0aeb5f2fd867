package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/mesto-api/internal/apperr"
	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/store"
)

const (
	msgUserNotFound       = "Пользователь по указанному _id не найден"
	msgUpdateUserNotFound = "Пользователь с указанным _id не найден"
)

// PasswordHasher hashes and checks credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	VerifyDummy(password string) bool
}

// TokenIssuer mints bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// SignupInput is the data accepted on registration.
type SignupInput struct {
	Email    string
	Password string
	Name     string
	About    string
	Avatar   string
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	CreateUser(ctx context.Context, in SignupInput) (models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, callerID, name, about string) (models.User, error)
	UpdateAvatar(ctx context.Context, callerID, avatar string) (models.User, error)
}

// UserService provides business logic for user management.
type UserService struct {
	users  store.UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewUserService creates a new UserService.
func NewUserService(users store.UserStore, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

// NormalizeEmail is applied to every email before it reaches the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser hashes the password and persists a new user. The returned
// record never carries the hash.
func (s *UserService) CreateUser(ctx context.Context, in SignupInput) (models.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := models.User{
		Name:         in.Name,
		About:        in.About,
		Avatar:       in.Avatar,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
	}
	user.ApplyDefaults()

	if err := s.users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return models.User{}, apperr.Conflict(apperr.MsgEmailExists).Wrap(err)
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password fail identically.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.VerifyDummy(password)
			return "", apperr.Unauthorized(apperr.MsgInvalidCredentials)
		}
		return "", fmt.Errorf("find user by email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", apperr.Unauthorized(apperr.MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("issue token: %w", err))
	}
	return token, nil
}

// GetUsers returns every user.
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, apperr.NotFound(msgUserNotFound).Wrap(err)
		}
		return models.User{}, fmt.Errorf("find user %s: %w", id, err)
	}
	return user, nil
}

// UpdateProfile sets the caller's name and about.
func (s *UserService) UpdateProfile(ctx context.Context, callerID, name, about string) (models.User, error) {
	return s.update(ctx, callerID, models.ProfileUpdate{Name: &name, About: &about})
}

// UpdateAvatar sets the caller's avatar.
func (s *UserService) UpdateAvatar(ctx context.Context, callerID, avatar string) (models.User, error) {
	return s.update(ctx, callerID, models.ProfileUpdate{Avatar: &avatar})
}

func (s *UserService) update(ctx context.Context, callerID string, upd models.ProfileUpdate) (models.User, error) {
	user, err := s.users.UpdateUser(ctx, callerID, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, apperr.NotFound(msgUpdateUserNotFound).Wrap(err)
		}
		return models.User{}, fmt.Errorf("update user %s: %w", callerID, err)
	}
	return user, nil
}
