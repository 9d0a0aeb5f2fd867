package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/isdelr/mesto-api/internal/apperr"
	"github.com/isdelr/mesto-api/internal/store"
	"github.com/isdelr/mesto-api/internal/validate"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validator error keeps rule message",
			err:        &validate.Error{Field: "name", Message: `"name" is required`},
			wantStatus: http.StatusBadRequest,
			wantMsg:    `"name" is required`,
		},
		{
			name:       "wrapped validator error",
			err:        fmt.Errorf("decode: %w", &validate.Error{Message: "bad"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "bad",
		},
		{
			name:       "forbidden domain error",
			err:        apperr.Forbidden("nope"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "nope",
		},
		{
			name:       "not found domain error",
			err:        apperr.NotFound("missing"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "missing",
		},
		{
			name:       "conflict domain error",
			err:        apperr.Conflict("taken"),
			wantStatus: http.StatusConflict,
			wantMsg:    "taken",
		},
		{
			name:       "auth domain error",
			err:        apperr.Unauthorized(apperr.MsgInvalidCredentials),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    apperr.MsgInvalidCredentials,
		},
		{
			name:       "domain error wins over wrapped store cause",
			err:        apperr.NotFound("missing").Wrap(store.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantMsg:    "missing",
		},
		{
			name:       "internal error hides cause",
			err:        apperr.Internal(errors.New("driver exploded at 0xdeadbeef")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    apperr.MsgDefault,
		},
		{
			name:       "duplicate key",
			err:        fmt.Errorf("insert user: %w", store.ErrDuplicateKey),
			wantStatus: http.StatusConflict,
			wantMsg:    apperr.MsgEmailExists,
		},
		{
			name:       "invalid token sentinel",
			err:        fmt.Errorf("%w: %w", apperr.ErrInvalidToken, jwt.ErrTokenExpired),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    apperr.MsgAuthRequired,
		},
		{
			name:       "raw jwt error",
			err:        jwt.ErrTokenSignatureInvalid,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    apperr.MsgAuthRequired,
		},
		{
			name:       "store document validation",
			err:        fmt.Errorf("%w: name too short", store.ErrInvalidDocument),
			wantStatus: http.StatusBadRequest,
			wantMsg:    apperr.MsgInvalidData,
		},
		{
			name:       "cast failure",
			err:        fmt.Errorf("find card: %w", store.ErrInvalidID),
			wantStatus: http.StatusBadRequest,
			wantMsg:    apperr.MsgInvalidID,
		},
		{
			name:       "unknown",
			err:        errors.New("connection reset by peer"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    apperr.MsgDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := apperr.Classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := apperr.Internal(store.ErrNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "document not found")
}
