package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/mesto-api/internal/apperr"
	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/store"
)

const (
	msgCardNotFound = "Карточка с указанным _id не найдена"
	msgNotCardOwner = "Нет прав на удаление этой карточки"
)

// CardServiceProvider defines the interface for card services.
type CardServiceProvider interface {
	GetCards(ctx context.Context) ([]models.CardView, error)
	CreateCard(ctx context.Context, callerID, name, link string) (models.Card, error)
	DeleteCard(ctx context.Context, callerID, cardID string) (models.Card, error)
	LikeCard(ctx context.Context, callerID, cardID string) (models.CardView, error)
	DislikeCard(ctx context.Context, callerID, cardID string) (models.CardView, error)
}

// CardService provides business logic for card management.
type CardService struct {
	cards store.CardStore
	users store.UserStore
}

// NewCardService creates a new CardService.
func NewCardService(cards store.CardStore, users store.UserStore) *CardService {
	return &CardService{cards: cards, users: users}
}

// GetCards returns every card with owner and likes resolved.
func (s *CardService) GetCards(ctx context.Context) ([]models.CardView, error) {
	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return s.resolve(ctx, cards...)
}

// CreateCard creates a card owned by the caller.
func (s *CardService) CreateCard(ctx context.Context, callerID, name, link string) (models.Card, error) {
	card := models.Card{Name: name, Link: link, Owner: callerID}
	if err := s.cards.CreateCard(ctx, &card); err != nil {
		return models.Card{}, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

// DeleteCard deletes a card if the caller owns it and returns what was deleted.
func (s *CardService) DeleteCard(ctx context.Context, callerID, cardID string) (models.Card, error) {
	card, err := s.cards.FindCardByID(ctx, cardID)
	if err != nil {
		return models.Card{}, s.cardErr(err, cardID)
	}
	// Owner is immutable, so the check cannot go stale before the delete.
	if card.Owner != callerID {
		return models.Card{}, apperr.Forbidden(msgNotCardOwner)
	}
	if err := s.cards.DeleteCard(ctx, cardID); err != nil {
		return models.Card{}, s.cardErr(err, cardID)
	}
	return card, nil
}

// LikeCard adds the caller to the card's likes.
func (s *CardService) LikeCard(ctx context.Context, callerID, cardID string) (models.CardView, error) {
	card, err := s.cards.AddLike(ctx, cardID, callerID)
	if err != nil {
		return models.CardView{}, s.cardErr(err, cardID)
	}
	return s.resolveOne(ctx, card)
}

// DislikeCard removes the caller from the card's likes.
func (s *CardService) DislikeCard(ctx context.Context, callerID, cardID string) (models.CardView, error) {
	card, err := s.cards.RemoveLike(ctx, cardID, callerID)
	if err != nil {
		return models.CardView{}, s.cardErr(err, cardID)
	}
	return s.resolveOne(ctx, card)
}

func (s *CardService) cardErr(err error, cardID string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(msgCardNotFound).Wrap(err)
	}
	return fmt.Errorf("card %s: %w", cardID, err)
}

func (s *CardService) resolveOne(ctx context.Context, card models.Card) (models.CardView, error) {
	views, err := s.resolve(ctx, card)
	if err != nil {
		return models.CardView{}, err
	}
	return views[0], nil
}

// resolve loads every user referenced by cards in one query.
func (s *CardService) resolve(ctx context.Context, cards ...models.Card) ([]models.CardView, error) {
	seen := map[string]bool{}
	var ids []string
	for _, c := range cards {
		for _, id := range append([]string{c.Owner}, c.Likes...) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	users, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve card users: %w", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	views := make([]models.CardView, 0, len(cards))
	for _, c := range cards {
		views = append(views, c.Resolve(byID))
	}
	return views, nil
}
