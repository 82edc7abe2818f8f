package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// CartRepository define el puerto de persistencia para CartItem.
type CartRepository interface {
	// AddOrIncrement inserta (id, userID, itemID, 1) o, si ya existe la fila para
	// (userID, itemID), incrementa su cantidad en 1. Atómico.
	AddOrIncrement(ctx context.Context, id, userID, itemID string) (*entity.CartItem, error)
	GetByID(ctx context.Context, id string) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error)
	Delete(ctx context.Context, id string) error
}
