package repository

import (
	"context"

	"github.com/jhoicas/storefront-api/internal/domain/entity"
)

// ItemOrder orden de listado permitido.
type ItemOrder string

const (
	ItemOrderCreatedAtAsc  ItemOrder = "createdAt_ASC"
	ItemOrderCreatedAtDesc ItemOrder = "createdAt_DESC"
	ItemOrderPriceAsc      ItemOrder = "price_ASC"
	ItemOrderPriceDesc     ItemOrder = "price_DESC"
	ItemOrderTitleAsc      ItemOrder = "title_ASC"
	ItemOrderTitleDesc     ItemOrder = "title_DESC"
)

// ItemFilter filtros combinados con AND; nil = sin filtro.
type ItemFilter struct {
	TitleContains       *string
	DescriptionContains *string
}

// ItemListParams filtro, orden y paginación para List. Limit 0 = sin límite.
type ItemListParams struct {
	Filter  ItemFilter
	OrderBy ItemOrder
	Offset  int
	Limit   int
}

// ItemRepository define el puerto de persistencia para Item.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ItemListParams) ([]*entity.Item, error)
	Count(ctx context.Context, filter ItemFilter) (int, error)
}
