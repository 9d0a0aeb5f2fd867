package sqlite

import (
	"context"
	"time"

	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/store"
)

const cardColumns = "id, name, link, owner_id, created_at"

func scanCard(scanner interface{ Scan(...interface{}) error }) (models.Card, error) {
	var (
		c       models.Card
		created int64
	)
	if err := scanner.Scan(&c.ID, &c.Name, &c.Link, &c.Owner, &created); err != nil {
		return models.Card{}, err
	}
	c.CreatedAt = time.UnixMilli(created).UTC()
	c.Likes = []string{}
	return c, nil
}

// CreateCard inserts c with a fresh id and creation time.
func (s *Store) CreateCard(ctx context.Context, c *models.Card) error {
	if err := c.Validate(); err != nil {
		return invalidDocument(err)
	}
	id := store.NewID()
	created := time.Now().UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO cards (id, name, link, owner_id, created_at) VALUES (?, ?, ?, ?, ?)",
		id, c.Name, c.Link, c.Owner, created.UnixMilli(),
	)
	if err != nil {
		return translate(err)
	}
	c.ID = id
	c.CreatedAt = created
	c.Likes = []string{}
	return nil
}

// ListCards returns every card with its likes.
func (s *Store) ListCards(ctx context.Context) ([]models.Card, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+cardColumns+" FROM cards ORDER BY created_at, rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.Card{}
	index := map[string]int{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		index[c.ID] = len(cards)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	likes, err := s.db.QueryContext(ctx, "SELECT card_id, user_id FROM card_likes ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer likes.Close()

	for likes.Next() {
		var cardID, userID string
		if err := likes.Scan(&cardID, &userID); err != nil {
			return nil, err
		}
		if i, ok := index[cardID]; ok {
			cards[i].Likes = append(cards[i].Likes, userID)
		}
	}
	return cards, likes.Err()
}

// FindCardByID retrieves a single card with its likes.
func (s *Store) FindCardByID(ctx context.Context, id string) (models.Card, error) {
	if err := checkID(id); err != nil {
		return models.Card{}, err
	}
	c, err := scanCard(s.db.QueryRowContext(ctx, "SELECT "+cardColumns+" FROM cards WHERE id = ?", id))
	if err != nil {
		return models.Card{}, translate(err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT user_id FROM card_likes WHERE card_id = ? ORDER BY rowid", id)
	if err != nil {
		return models.Card{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return models.Card{}, err
		}
		c.Likes = append(c.Likes, userID)
	}
	return c, rows.Err()
}

// DeleteCard removes a card; its likes go with it.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM cards WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddLike inserts userID into the card's likes set. The insert only happens
// when the card exists and is a no-op when the like is already there.
func (s *Store) AddLike(ctx context.Context, cardID, userID string) (models.Card, error) {
	if err := checkID(cardID); err != nil {
		return models.Card{}, err
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO card_likes (card_id, user_id) SELECT id, ? FROM cards WHERE id = ?",
		userID, cardID,
	)
	if err != nil {
		return models.Card{}, translate(err)
	}
	return s.FindCardByID(ctx, cardID)
}

// RemoveLike deletes userID from the card's likes set, if present.
func (s *Store) RemoveLike(ctx context.Context, cardID, userID string) (models.Card, error) {
	if err := checkID(cardID); err != nil {
		return models.Card{}, err
	}
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM card_likes WHERE card_id = ? AND user_id = ?", cardID, userID)
	if err != nil {
		return models.Card{}, err
	}
	return s.FindCardByID(ctx, cardID)
}
