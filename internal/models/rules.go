package models

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// URLPattern is the accepted shape for avatar and card links.
var URLPattern = regexp.MustCompile(`^(https?:\/\/)(www\.)?([\w-]+\.)+[a-zA-Z]{2,}(\/[-\w._~:/?#[\]@!$&'()*+,;=]*)?#?$`)

// Rule sets shared by request validation and store-level document checks.
var (
	NameRules = []validation.Rule{
		validation.RuneLength(2, 30).Error("must be between 2 and 30 characters long"),
	}
	AboutRules = []validation.Rule{
		validation.RuneLength(2, 200).Error("must be between 2 and 200 characters long"),
	}
	URLRules = []validation.Rule{
		validation.Match(URLPattern).Error("must be a valid URL"),
	}
	EmailRules = []validation.Rule{
		is.Email.Error("must be a valid email"),
	}
	// bcrypt ignores input past 72 bytes, so the bound is in bytes.
	PasswordRules = []validation.Rule{
		validation.Length(6, 72).Error("must be between 6 and 72 bytes long"),
	}
	ObjectIDRules = []validation.Rule{
		validation.Length(24, 24).Error("must be a 24-character hex string"),
		is.Hexadecimal.Error("must be a 24-character hex string"),
	}
)
