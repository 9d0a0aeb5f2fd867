package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/store"
)

type cardDoc struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Name      string               `bson:"name"`
	Link      string               `bson:"link"`
	Owner     primitive.ObjectID   `bson:"owner"`
	Likes     []primitive.ObjectID `bson:"likes"`
	CreatedAt time.Time            `bson:"createdAt"`
}

func (d cardDoc) model() models.Card {
	return models.Card{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Link:      d.Link,
		Owner:     d.Owner.Hex(),
		Likes:     hexIDs(d.Likes),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// CreateCard inserts c with a fresh id and creation time.
func (s *Store) CreateCard(ctx context.Context, c *models.Card) error {
	if err := c.Validate(); err != nil {
		return invalidDocument(err)
	}
	owner, err := objectID(c.Owner)
	if err != nil {
		return err
	}
	doc := cardDoc{
		ID:        primitive.NewObjectID(),
		Name:      c.Name,
		Link:      c.Link,
		Owner:     owner,
		Likes:     []primitive.ObjectID{},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := s.cards.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	*c = doc.model()
	return nil
}

// ListCards returns every card in creation order.
func (s *Store) ListCards(ctx context.Context) ([]models.Card, error) {
	cur, err := s.cards.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []cardDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	cards := make([]models.Card, 0, len(docs))
	for _, d := range docs {
		cards = append(cards, d.model())
	}
	return cards, nil
}

// FindCardByID retrieves a single card.
func (s *Store) FindCardByID(ctx context.Context, id string) (models.Card, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Card{}, err
	}
	var doc cardDoc
	if err := s.cards.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return models.Card{}, translate(err)
	}
	return doc.model(), nil
}

// DeleteCard removes a card.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.cards.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddLike adds userID to the likes set with $addToSet.
func (s *Store) AddLike(ctx context.Context, cardID, userID string) (models.Card, error) {
	return s.updateLikes(ctx, cardID, userID, "$addToSet")
}

// RemoveLike removes userID from the likes set with $pull.
func (s *Store) RemoveLike(ctx context.Context, cardID, userID string) (models.Card, error) {
	return s.updateLikes(ctx, cardID, userID, "$pull")
}

func (s *Store) updateLikes(ctx context.Context, cardID, userID, op string) (models.Card, error) {
	cid, err := objectID(cardID)
	if err != nil {
		return models.Card{}, err
	}
	uid, err := objectID(userID)
	if err != nil {
		return models.Card{}, err
	}

	var doc cardDoc
	err = s.cards.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: cid}},
		bson.D{{Key: op, Value: bson.D{{Key: "likes", Value: uid}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return models.Card{}, translate(err)
	}
	return doc.model(), nil
}
