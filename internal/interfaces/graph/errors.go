package graph

import (
	"errors"

	"github.com/jhoicas/storefront-api/internal/domain"
)

// Códigos de extensions.code.
const (
	CodeNotAuthenticated      = "NOT_AUTHENTICATED"
	CodePermissionDenied      = "PERMISSION_DENIED"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeInvalidPassword       = "INVALID_PASSWORD"
	CodePasswordMismatch      = "PASSWORD_MISMATCH"
	CodeInvalidOrExpiredToken = "INVALID_OR_EXPIRED_TOKEN"
	CodeItemNotFound          = "ITEM_NOT_FOUND"
	CodeCartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CodeEmailExists           = "EMAIL_EXISTS"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeInternal              = "INTERNAL"
)

var codes = []struct {
	target error
	code   string
}{
	{domain.ErrNotAuthenticated, CodeNotAuthenticated},
	{domain.ErrPermissionDenied, CodePermissionDenied},
	{domain.ErrUserNotFound, CodeUserNotFound},
	{domain.ErrInvalidPassword, CodeInvalidPassword},
	{domain.ErrPasswordMismatch, CodePasswordMismatch},
	{domain.ErrInvalidOrExpiredToken, CodeInvalidOrExpiredToken},
	{domain.ErrItemNotFound, CodeItemNotFound},
	{domain.ErrCartItemNotFound, CodeCartItemNotFound},
	{domain.ErrEmailAlreadyExists, CodeEmailExists},
	{domain.ErrInvalidInput, CodeInvalidInput},
}

// Error error de resolver con extensions.code; graphql-go lo serializa tal cual.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// toError traduce errores de dominio; el resto se oculta como "internal error".
func (r *Resolver) toError(op string, err error) error {
	for _, c := range codes {
		if errors.Is(err, c.target) {
			return &Error{Code: c.code, Message: err.Error()}
		}
	}
	r.log.Error().Err(err).Str("op", op).Msg("error interno en resolver")
	return &Error{Code: CodeInternal, Message: "internal error"}
}
