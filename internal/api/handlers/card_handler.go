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

// CardHandler handles HTTP requests related to cards.
type CardHandler struct {
	service services.CardServiceProvider
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(service services.CardServiceProvider) *CardHandler {
	return &CardHandler{service: service}
}

// CardPayload defines the structure for card creation. Any owner sent by the
// client is dropped during decoding.
type CardPayload struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Validate checks the payload.
func (p CardPayload) Validate() error {
	return validate.Check(
		validate.F("name", p.Name, validate.Required(models.NameRules...)...),
		validate.F("link", p.Link, validate.Required(models.URLRules...)...),
	)
}

// GetAll handles the request to get all cards.
func (h *CardHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.GetCards(r.Context())
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, cards)
}

// Create handles the request to create a new card owned by the caller.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, err := callerID(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	var payload CardPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		render.Error(w, r, err)
		return
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := payload.Validate(); err != nil {
		render.Error(w, r, err)
		return
	}

	card, err := h.service.CreateCard(r.Context(), owner, payload.Name, payload.Link)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusCreated, card)
}

// Delete handles the request to delete a card.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, cardID, err := h.target(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	card, err := h.service.DeleteCard(r.Context(), caller, cardID)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, card)
}

// Like handles adding the caller's like to a card.
func (h *CardHandler) Like(w http.ResponseWriter, r *http.Request) {
	caller, cardID, err := h.target(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	card, err := h.service.LikeCard(r.Context(), caller, cardID)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, card)
}

// Dislike handles removing the caller's like from a card.
func (h *CardHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	caller, cardID, err := h.target(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	card, err := h.service.DislikeCard(r.Context(), caller, cardID)
	if err != nil {
		render.Error(w, r, err)
		return
	}
	render.JSON(w, http.StatusOK, card)
}

// target resolves the caller and the validated card id from the path.
func (h *CardHandler) target(r *http.Request) (string, string, error) {
	caller, err := callerID(r)
	if err != nil {
		return "", "", err
	}
	cardID := chi.URLParam(r, "cardId")
	if err := pathID("cardId", cardID); err != nil {
		return "", "", err
	}
	return caller, cardID, nil
}
