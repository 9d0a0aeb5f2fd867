package models_test

import (
	"encoding/json"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/mesto-api/internal/models"
)

func TestURLPattern(t *testing.T) {
	valid := []string{
		"http://a.com/img.png",
		"https://www.example.org",
		"https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png",
		"http://sub.domain.io/path?q=1&x=y#frag",
	}
	invalid := []string{
		"ftp://a.com/img.png",
		"a.com/img.png",
		"http://localhost",
		"http://a.c",
		"not a url",
	}

	for _, v := range valid {
		assert.True(t, models.URLPattern.MatchString(v), v)
	}
	for _, v := range invalid {
		assert.False(t, models.URLPattern.MatchString(v), v)
	}
}

func TestEmailRules(t *testing.T) {
	for _, v := range []string{"a@b.co", "jacques.cousteau+dive@ocean.org", "UPPER@Example.COM", ""} {
		assert.NoError(t, validation.Validate(v, models.EmailRules...), v)
	}
	for _, v := range []string{"broken", "a@", "@b.co", "a b@c.com"} {
		assert.EqualError(t, validation.Validate(v, models.EmailRules...), "must be a valid email", v)
	}
}

func TestUserApplyDefaults(t *testing.T) {
	u := models.User{Email: "a@b.com", Name: "Custom"}
	u.ApplyDefaults()

	assert.Equal(t, "Custom", u.Name)
	assert.Equal(t, models.DefaultUserAbout, u.About)
	assert.Equal(t, models.DefaultUserAvatar, u.Avatar)
}

func TestUserValidate(t *testing.T) {
	u := models.User{Email: "a@b.com", PasswordHash: "hash"}
	u.ApplyDefaults()
	assert.NoError(t, u.Validate())

	u.Email = "broken"
	assert.EqualError(t, u.Validate(), `"email" must be a valid email`)

	u.Email = "a@b.com"
	u.Name = "x"
	assert.EqualError(t, u.Validate(), `"name" must be between 2 and 30 characters long`)
}

func TestUserJSONOmitsPassword(t *testing.T) {
	u := models.User{ID: "1", Email: "a@b.com", PasswordHash: "secret-hash"}

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.NotContains(t, out, "password")
	assert.NotContains(t, out, "PasswordHash")
	assert.NotContains(t, string(data), "secret-hash")
}

func TestProfileUpdateValidate(t *testing.T) {
	name, about := "Ivan", "A"
	err := models.ProfileUpdate{Name: &name, About: &about}.Validate()
	assert.EqualError(t, err, `"about" must be between 2 and 200 characters long`)

	avatar := "http://a.com/x.png"
	assert.NoError(t, models.ProfileUpdate{Avatar: &avatar}.Validate())
}

func TestCardResolve(t *testing.T) {
	owner := models.User{ID: "u1", Name: "Owner"}
	fan := models.User{ID: "u2", Name: "Fan"}
	card := models.Card{
		ID:        "c1",
		Name:      "Park",
		Link:      "http://a.com/img.png",
		Owner:     "u1",
		Likes:     []string{"u2", "gone"},
		CreatedAt: time.Now(),
	}

	view := card.Resolve(map[string]models.User{"u1": owner, "u2": fan})

	require.NotNil(t, view.Owner)
	assert.Equal(t, "Owner", view.Owner.Name)
	assert.Equal(t, []models.User{fan}, view.Likes)
	assert.True(t, card.HasLike("u2"))
	assert.False(t, card.HasLike("u3"))
}
