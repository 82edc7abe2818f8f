package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// CartUseCase carrito del usuario de la sesión.
type CartUseCase struct {
	cart  repository.CartRepository
	items repository.ItemRepository
	users repository.UserRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cart repository.CartRepository, items repository.ItemRepository, users repository.UserRepository) *CartUseCase {
	return &CartUseCase{cart: cart, items: items, users: users}
}

// AddToCart suma 1 a la línea (usuario, item) o la crea con cantidad 1.
func (uc *CartUseCase) AddToCart(ctx context.Context, viewerID, itemID string) (*entity.CartItem, error) {
	viewer, err := viewerOrFail(ctx, uc.users, viewerID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, domain.ErrItemNotFound
	}
	item, err := uc.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return uc.cart.AddOrIncrement(ctx, uuid.New().String(), viewer.ID, item.ID)
}

// RemoveFromCart borra una línea propia.
func (uc *CartUseCase) RemoveFromCart(ctx context.Context, viewerID, cartItemID string) (*entity.CartItem, error) {
	viewer, err := viewerOrFail(ctx, uc.users, viewerID)
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(cartItemID); err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	ci, err := uc.cart.GetByID(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	if ci == nil {
		return nil, domain.ErrCartItemNotFound
	}
	if ci.UserID != viewer.ID {
		return nil, domain.ErrPermissionDenied
	}
	if err := uc.cart.Delete(ctx, ci.ID); err != nil {
		return nil, err
	}
	return ci, nil
}

// ListByUser carrito de userID.
func (uc *CartUseCase) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	return uc.cart.ListByUser(ctx, userID)
}
