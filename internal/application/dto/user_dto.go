package dto

import "github.com/jhoicas/storefront-api/internal/domain/entity"

// SignupRequest entrada de signup (password en texto, se hashea en el use case).
type SignupRequest struct {
	Email    string
	Password string
	Name     string
}

// SigninRequest entrada de signin.
type SigninRequest struct {
	Email    string
	Password string
}

// ResetPasswordRequest entrada de resetPassword.
type ResetPasswordRequest struct {
	ResetToken      string
	Password        string
	ConfirmPassword string
}

// UpdatePermissionsRequest reemplaza el conjunto de permisos de UserID.
type UpdatePermissionsRequest struct {
	UserID      string
	Permissions []string
}

// SessionResult usuario autenticado más el token que la capa HTTP pone en la cookie.
type SessionResult struct {
	User  *entity.User
	Token string
}
