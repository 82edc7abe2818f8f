package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

// ItemUseCase casos de uso del catálogo.
type ItemUseCase struct {
	items repository.ItemRepository
	users repository.UserRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(items repository.ItemRepository, users repository.UserRepository) *ItemUseCase {
	return &ItemUseCase{items: items, users: users}
}

// Create crea un item cuyo dueño es el usuario de la sesión.
func (uc *ItemUseCase) Create(ctx context.Context, viewerID string, in dto.CreateItemRequest) (*entity.Item, error) {
	viewer, err := viewerOrFail(ctx, uc.users, viewerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		UserID:      viewer.ID,
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		LargeImage:  in.LargeImage,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update aplica los campos presentes. No exige sesión ni dueño.
// TODO: exigir dueño o ITEMUPDATE cuando el frontend envíe la cookie en la edición.
func (uc *ItemUseCase) Update(ctx context.Context, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	entity.ItemPatch{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		LargeImage:  in.LargeImage,
		Price:       in.Price,
	}.Apply(item)
	item.UpdatedAt = time.Now()
	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete borra el item si el llamador es el dueño o tiene ADMIN/ITEMDELETE.
func (uc *ItemUseCase) Delete(ctx context.Context, viewerID, id string) (*entity.Item, error) {
	viewer, err := viewerOrFail(ctx, uc.users, viewerID)
	if err != nil {
		return nil, err
	}
	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.UserID != viewer.ID {
		if err := entity.CheckPermission(viewer, entity.PermissionAdmin, entity.PermissionItemDelete); err != nil {
			return nil, err
		}
	}
	if err := uc.items.Delete(ctx, item.ID); err != nil {
		return nil, err
	}
	return item, nil
}

// Get devuelve nil si no existe. Un ID que no es UUID nunca existe.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*entity.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	return uc.items.GetByID(ctx, id)
}

// List lectura pública con filtro, orden y página.
func (uc *ItemUseCase) List(ctx context.Context, in dto.ListItemsRequest) ([]*entity.Item, error) {
	offset, limit, empty := in.Page.Normalize()
	if empty {
		return []*entity.Item{}, nil
	}
	order, err := parseItemOrder(in.OrderBy)
	if err != nil {
		return nil, err
	}
	return uc.items.List(ctx, repository.ItemListParams{
		Filter:  toItemFilter(in.Where),
		OrderBy: order,
		Offset:  offset,
		Limit:   limit,
	})
}

// Count total de items que cumplen el filtro (itemsConnection.aggregate.count).
func (uc *ItemUseCase) Count(ctx context.Context, where dto.ItemWhere) (int, error) {
	return uc.items.Count(ctx, toItemFilter(where))
}

func toItemFilter(w dto.ItemWhere) repository.ItemFilter {
	return repository.ItemFilter{TitleContains: w.TitleContains, DescriptionContains: w.DescriptionContains}
}

func parseItemOrder(s string) (repository.ItemOrder, error) {
	switch o := repository.ItemOrder(s); o {
	case "":
		return repository.ItemOrderCreatedAtDesc, nil
	case repository.ItemOrderCreatedAtAsc, repository.ItemOrderCreatedAtDesc,
		repository.ItemOrderPriceAsc, repository.ItemOrderPriceDesc,
		repository.ItemOrderTitleAsc, repository.ItemOrderTitleDesc:
		return o, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// viewerOrFail carga el usuario de la sesión; sin sesión o con un ID que ya no existe => ErrNotAuthenticated.
func viewerOrFail(ctx context.Context, users repository.UserRepository, viewerID string) (*entity.User, error) {
	if viewerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	u, err := users.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return u, nil
}
