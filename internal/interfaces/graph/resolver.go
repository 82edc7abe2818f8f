package graph

import (
	"github.com/jhoicas/storefront-api/internal/application/auth"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// Resolver raíz para Query y Mutation.
type Resolver struct {
	auth  *auth.AuthUseCase
	items *usecase.ItemUseCase
	cart  *usecase.CartUseCase
	log   *logger.Logger
}

// NewResolver construye el resolver raíz.
func NewResolver(authUC *auth.AuthUseCase, items *usecase.ItemUseCase, cart *usecase.CartUseCase, log *logger.Logger) *Resolver {
	return &Resolver{auth: authUC, items: items, cart: cart, log: log}
}
