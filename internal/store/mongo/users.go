package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/isdelr/mesto-api/internal/models"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	About    string             `bson:"about"`
	Avatar   string             `bson:"avatar"`
	Email    string             `bson:"email"`
	Password string             `bson:"password,omitempty"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		About:        d.About,
		Avatar:       d.Avatar,
		Email:        d.Email,
		PasswordHash: d.Password,
	}
}

// The password hash is only ever read by FindUserByEmail.
var withoutPassword = bson.D{{Key: "password", Value: 0}}

// CreateUser inserts u, relying on the unique email index.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return invalidDocument(err)
	}
	doc := userDoc{
		ID:       primitive.NewObjectID(),
		Name:     u.Name,
		About:    u.About,
		Avatar:   u.Avatar,
		Email:    u.Email,
		Password: u.PasswordHash,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return translate(err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

// ListUsers returns every user.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.findUsers(ctx, bson.D{})
}

// FindUserByID retrieves a single user by their ID.
func (s *Store) FindUserByID(ctx context.Context, id string) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	var doc userDoc
	err = s.users.FindOne(ctx, bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(withoutPassword)).Decode(&doc)
	if err != nil {
		return models.User{}, translate(err)
	}
	return doc.model(), nil
}

// FindUsersByIDs retrieves the users that exist among ids.
func (s *Store) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	oids, err := objectIDs(ids)
	if err != nil {
		return nil, err
	}
	return s.findUsers(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
}

func (s *Store) findUsers(ctx context.Context, filter bson.D) ([]models.User, error) {
	cur, err := s.users.Find(ctx, filter, options.Find().SetProjection(withoutPassword))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.model())
	}
	return users, nil
}

// FindUserByEmail retrieves a single user by email, including the password hash.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		return models.User{}, translate(err)
	}
	return doc.model(), nil
}

// UpdateUser applies upd and returns the document after the update.
func (s *Store) UpdateUser(ctx context.Context, id string, upd models.ProfileUpdate) (models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.User{}, err
	}
	if err := upd.Validate(); err != nil {
		return models.User{}, invalidDocument(err)
	}

	set := bson.D{}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.About != nil {
		set = append(set, bson.E{Key: "about", Value: *upd.About})
	}
	if upd.Avatar != nil {
		set = append(set, bson.E{Key: "avatar", Value: *upd.Avatar})
	}
	if len(set) == 0 {
		return s.FindUserByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var doc userDoc
	err = s.users.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		opts,
	).Decode(&doc)
	if err != nil {
		return models.User{}, translate(err)
	}
	return doc.model(), nil
}
