// Package apperr holds the application error taxonomy and the classifier
// that turns any failure into a status code and a client-safe message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/isdelr/mesto-api/internal/store"
	"github.com/isdelr/mesto-api/internal/validate"
)

// Client-facing messages.
const (
	MsgAuthRequired       = "Необходима авторизация"
	MsgInvalidCredentials = "Неправильные почта или пароль"
	MsgEmailExists        = "Пользователь с таким email уже существует"
	MsgInvalidData        = "Переданы некорректные данные"
	MsgInvalidID          = "Передан некорректный id"
	MsgDefault            = "Ошибка по умолчанию"
	MsgNotFound           = "Not Found"
)

// ErrInvalidToken marks any failure to verify a bearer token.
var ErrInvalidToken = errors.New("invalid token")

// Kind is the closed set of domain failure categories.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a domain failure raised by handlers and services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindAuth, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }

// Internal wraps an unexpected failure. Its message is never the cause's text.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: MsgDefault, Err: err}
}

// Wrap attaches a cause to a domain error for logging.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}

var tokenErrors = []error{
	ErrInvalidToken,
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenExpired,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenInvalidClaims,
	jwt.ErrTokenRequiredClaimMissing,
}

// Classify maps any failure to a status code and a client-safe message.
// The order of checks is significant.
func Classify(err error) (int, string) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}

	var aerr *Error
	if errors.As(err, &aerr) {
		if aerr.Kind == KindInternal {
			return http.StatusInternalServerError, MsgDefault
		}
		return aerr.Kind.Status(), aerr.Message
	}

	if errors.Is(err, store.ErrDuplicateKey) {
		return http.StatusConflict, MsgEmailExists
	}

	for _, target := range tokenErrors {
		if errors.Is(err, target) {
			return http.StatusUnauthorized, MsgAuthRequired
		}
	}

	if errors.Is(err, store.ErrInvalidDocument) {
		return http.StatusBadRequest, MsgInvalidData
	}

	if errors.Is(err, store.ErrInvalidID) {
		return http.StatusBadRequest, MsgInvalidID
	}

	return http.StatusInternalServerError, MsgDefault
}
