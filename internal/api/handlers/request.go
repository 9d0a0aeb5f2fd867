package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/isdelr/mesto-api/internal/apperr"
	"github.com/isdelr/mesto-api/internal/auth"
	"github.com/isdelr/mesto-api/internal/models"
	"github.com/isdelr/mesto-api/internal/validate"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into v. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation(apperr.MsgInvalidData).Wrap(err)
	}
	return nil
}

// pathID validates an object id taken from the URL before any store access.
func pathID(name, value string) error {
	return validate.Check(validate.F(name, value, validate.Required(models.ObjectIDRules...)...))
}

// callerID returns the id attached by the auth middleware.
func callerID(r *http.Request) (string, error) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return "", apperr.Unauthorized(apperr.MsgAuthRequired)
	}
	return id, nil
}
