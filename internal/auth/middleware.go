package auth

import (
	"net/http"
	"strings"

	"github.com/isdelr/mesto-api/internal/apperr"
)

const bearerPrefix = "Bearer "

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ErrorWriter writes a rejected request's response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// JWTMiddleware creates a middleware for protecting routes. It trusts the
// token's embedded id and never consults the user store. Rejections are an
// *apperr.Error of kind Auth handed to fail; a nil fail falls back to
// http.Error.
func JWTMiddleware(verifier TokenVerifier, fail ErrorWriter) func(http.Handler) http.Handler {
	if fail == nil {
		fail = plainError
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				fail(w, r, apperr.Unauthorized(apperr.MsgAuthRequired))
				return
			}

			userID, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				fail(w, r, apperr.Unauthorized(apperr.MsgAuthRequired).Wrap(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func plainError(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, apperr.MsgAuthRequired, http.StatusUnauthorized)
}
