package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes llegan tal cual al cliente: nunca incluyen hashes, tokens ni secretos.
var (
	ErrNotAuthenticated      = errors.New("You must be logged in to do that!")
	ErrPermissionDenied      = errors.New("You don't have permission to do that!")
	ErrUserNotFound          = errors.New("No user found for that email")
	ErrInvalidPassword       = errors.New("Invalid password!")
	ErrPasswordMismatch      = errors.New("Your passwords don't match!")
	ErrInvalidOrExpiredToken = errors.New("This token is either invalid or expired!")
	ErrItemNotFound          = errors.New("Item not found")
	ErrCartItemNotFound      = errors.New("No cart item found")
	ErrEmailAlreadyExists    = errors.New("An account with that email already exists")
	ErrInvalidInput          = errors.New("invalid input")
)
