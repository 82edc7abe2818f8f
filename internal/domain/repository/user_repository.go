package repository

import (
	"context"
	"time"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdatePermissions(ctx context.Context, userID string, permissions []entity.Permission) error
	// SetResetToken guarda token y expiración juntos.
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	// GetByResetToken devuelve el usuario solo si el token coincide y expiry > now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*entity.User, error)
	// ConsumeResetToken reemplaza el password y limpia token/expiración en una sola
	// sentencia condicionada a que el token siga vigente. false = ya no lo estaba.
	ConsumeResetToken(ctx context.Context, userID, token string, now time.Time, passwordHash string) (bool, error)
}
