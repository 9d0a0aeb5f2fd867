package models

import (
	"time"

	"github.com/isdelr/mesto-api/internal/validate"
)

// Card is a photo card as stored, with owner and likes as user ids.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the document shape before it is written.
func (c Card) Validate() error {
	return validate.Check(
		validate.F("name", c.Name, validate.Required(NameRules...)...),
		validate.F("link", c.Link, validate.Required(URLRules...)...),
		validate.F("owner", c.Owner, validate.Required(ObjectIDRules...)...),
	)
}

// HasLike reports whether userID is in the likes set.
func (c Card) HasLike(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CardView is a card with owner and likes resolved to user profiles.
type CardView struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     *User     `json:"owner"`
	Likes     []User    `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Resolve builds a CardView using users keyed by id. References to users
// that no longer resolve are dropped from likes and leave owner nil.
func (c Card) Resolve(users map[string]User) CardView {
	view := CardView{
		ID:        c.ID,
		Name:      c.Name,
		Link:      c.Link,
		Likes:     make([]User, 0, len(c.Likes)),
		CreatedAt: c.CreatedAt,
	}
	if owner, ok := users[c.Owner]; ok {
		view.Owner = &owner
	}
	for _, id := range c.Likes {
		if u, ok := users[id]; ok {
			view.Likes = append(view.Likes, u)
		}
	}
	return view
}
