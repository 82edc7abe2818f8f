package dto

// CreateItemRequest entrada de createItem. Price en centavos.
type CreateItemRequest struct {
	Title       string
	Description string
	Image       string
	LargeImage  string
	Price       int64
}

// UpdateItemRequest campos opcionales; nil = no tocar.
type UpdateItemRequest struct {
	ID          string
	Title       *string
	Description *string
	Image       *string
	LargeImage  *string
	Price       *int64
}

// ItemWhere filtros de items/itemsConnection.
type ItemWhere struct {
	TitleContains       *string
	DescriptionContains *string
}

// ListItemsRequest filtro, orden y página de items.
type ListItemsRequest struct {
	Where   ItemWhere
	OrderBy string
	Page    PageRequest
}
