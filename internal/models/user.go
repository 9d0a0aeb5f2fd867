package models

import "github.com/isdelr/mesto-api/internal/validate"

// Profile defaults applied on signup when the caller omits a field.
const (
	DefaultUserName   = "Жак-Ив Кусто"
	DefaultUserAbout  = "Исследователь"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a user profile in the system.
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	About        string `json:"about"`
	Avatar       string `json:"avatar"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose this to the client
}

// ApplyDefaults fills empty profile fields with the signup placeholders.
func (u *User) ApplyDefaults() {
	if u.Name == "" {
		u.Name = DefaultUserName
	}
	if u.About == "" {
		u.About = DefaultUserAbout
	}
	if u.Avatar == "" {
		u.Avatar = DefaultUserAvatar
	}
}

// Validate checks the document shape before it is written.
func (u User) Validate() error {
	return validate.Check(
		validate.F("name", u.Name, validate.Required(NameRules...)...),
		validate.F("about", u.About, validate.Required(AboutRules...)...),
		validate.F("avatar", u.Avatar, validate.Required(URLRules...)...),
		validate.F("email", u.Email, validate.Required(EmailRules...)...),
		validate.F("password", u.PasswordHash, validate.Required()...),
	)
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	Name   *string
	About  *string
	Avatar *string
}

// Validate checks every field that is being set.
func (p ProfileUpdate) Validate() error {
	var fields []validate.Field
	if p.Name != nil {
		fields = append(fields, validate.F("name", *p.Name, validate.Required(NameRules...)...))
	}
	if p.About != nil {
		fields = append(fields, validate.F("about", *p.About, validate.Required(AboutRules...)...))
	}
	if p.Avatar != nil {
		fields = append(fields, validate.F("avatar", *p.Avatar, validate.Required(URLRules...)...))
	}
	return validate.Check(fields...)
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.About != nil {
		u.About = *p.About
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}
