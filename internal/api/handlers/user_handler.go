package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/isdelr/mesto-api/internal/api/render"
	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/services"
	"github.com/isdelr/mesto-api/internal/validate"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
}

// Validate checks the payload. Profile fields are optional.
func (p SignupPayload) Validate() error {
	return validate.Check(
		validate.F("email", p.Email, validate.Required(models.EmailRules...)...),
		validate.F("password", p.Password, validate.Required(models.PasswordRules...)...),
		validate.F("name", p.Name, models.NameRules...),
		validate.F("about", p.About, models.AboutRules...),
		validate.F("avatar", p.Avatar, models.URLRules...),
	)
}

// SigninPayload defines the structure for login requests.
type SigninPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload.
func (p SigninPayload) Validate() error {
	return validate.Check(
		validate.F("email", p.Email, validate.Required(models.EmailRules...)...),
		validate.F("password", p.Password, validate.Required()...),
	)
}

// ProfilePayload defines the structure for profile updates.
type ProfilePayload struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

// Validate checks the payload.
func (p ProfilePayload) Validate() error {
	return validate.Check(
		validate.F("name", p.Name, validate.Required(models.NameRules...)...),
		validate.F("about", p.About, validate.Required(models.AboutRules...)...),
	)
}

// AvatarPayload defines the structure for avatar updates.
type AvatarPayload struct {
	Avatar string `json:"avatar"`
}

// Validate checks the payload.
func (p AvatarPayload) Validate() error {
	return validate.Check(
		validate.F("avatar", p.Avatar, validate.Required(models.URLRules...)...),
	)
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		render.Error(w, r, err)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.About = strings.TrimSpace(payload.About)
	if err := payload.Validate(); err != nil {
		render.Error(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), services.SignupInput{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
		About:    payload.About,
		Avatar:   payload.Avatar,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, user)
}

// Login handles user authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload SigninPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		render.Error(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetAll handles the request to list all users.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetUsers(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userId")
	if err := pathID("userId", id); err != nil {
		render.Error(w, r, err)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, user)
}

// GetMe retrieves the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, err := callerID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, user)
}

// UpdateProfile handles updating the caller's name and about.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := callerID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var payload ProfilePayload
	if err := decodeJSON(w, r, &payload); err != nil {
		render.Error(w, r, err)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.About = strings.TrimSpace(payload.About)
	if err := payload.Validate(); err != nil {
		render.Error(w, r, err)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), id, payload.Name, payload.About)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, user)
}

// UpdateAvatar handles updating the caller's avatar.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	id, err := callerID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var payload AvatarPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		render.Error(w, r, err)
		return
	}
	if err := payload.Validate(); err != nil {
		render.Error(w, r, err)
		return
	}

	user, err := h.service.UpdateAvatar(r.Context(), id, payload.Avatar)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, user)
}
