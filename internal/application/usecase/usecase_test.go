package usecase_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/infrastructure/sqlite"
)

type env struct {
	db    *sqlite.DB
	items *usecase.ItemUseCase
	cart  *usecase.CartUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return &env{
		db:    db,
		items: usecase.NewItemUseCase(db.Items(), db.Users()),
		cart:  usecase.NewCartUseCase(db.Cart(), db.Items(), db.Users()),
	}
}

func (e *env) user(t *testing.T, email string, perms ...entity.Permission) *entity.User {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID: uuid.NewString(), Name: email, Email: email, PasswordHash: "h",
		Permissions: append([]entity.Permission{entity.PermissionUser}, perms...),
		CreatedAt:   now, UpdatedAt: now,
	}
	require.NoError(t, e.db.Users().Create(context.Background(), u))
	return u
}

func (e *env) item(t *testing.T, owner *entity.User, title string, price int64) *entity.Item {
	t.Helper()
	it, err := e.items.Create(context.Background(), owner.ID, dto.CreateItemRequest{
		Title: title, Description: "d", Price: price,
	})
	require.NoError(t, err)
	return it
}

func TestItemUseCase_CreateRequiereSesion(t *testing.T) {
	e := newEnv(t)
	_, err := e.items.Create(context.Background(), "", dto.CreateItemRequest{Title: "x", Price: 1})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = e.items.Create(context.Background(), uuid.NewString(), dto.CreateItemRequest{Title: "x", Price: 1})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated, "token de un usuario que ya no existe")
}

func TestItemUseCase_CreateYGet(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "o@b.com")
	it := e.item(t, u, "Shoes", 1250)

	assert.Equal(t, u.ID, it.UserID)
	got, err := e.items.Get(context.Background(), it.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Shoes", got.Title)

	got, err = e.items.Get(context.Background(), "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestItemUseCase_CreateValida(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "v@b.com")
	_, err := e.items.Create(context.Background(), u.ID, dto.CreateItemRequest{Title: " ", Price: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.items.Create(context.Background(), u.ID, dto.CreateItemRequest{Title: "ok", Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUseCase_UpdateParcial(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "u@b.com")
	it := e.item(t, u, "Old", 100)

	title := "New"
	got, err := e.items.Update(context.Background(), dto.UpdateItemRequest{ID: it.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, int64(100), got.Price)
	assert.Equal(t, it.ID, got.ID)

	_, err = e.items.Update(context.Background(), dto.UpdateItemRequest{ID: uuid.NewString(), Title: &title})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemUseCase_DeletePermisos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner@b.com")
	other := e.user(t, "other@b.com")
	deleter := e.user(t, "del@b.com", entity.PermissionItemDelete)

	it := e.item(t, owner, "A", 1)
	_, err := e.items.Delete(ctx, "", it.ID)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = e.items.Delete(ctx, other.ID, it.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	deleted, err := e.items.Delete(ctx, owner.ID, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, deleted.ID)
	_, err = e.items.Delete(ctx, owner.ID, it.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	it2 := e.item(t, owner, "B", 1)
	_, err = e.items.Delete(ctx, deleter.ID, it2.ID)
	assert.NoError(t, err)
}

func TestItemUseCase_ListYCount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "l@b.com")
	e.item(t, u, "Red Hat", 500)
	e.item(t, u, "Blue Hat", 300)
	e.item(t, u, "Green Sock", 100)

	hat := "hat"
	list, err := e.items.List(ctx, dto.ListItemsRequest{
		Where:   dto.ItemWhere{TitleContains: &hat},
		OrderBy: "price_DESC",
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Red Hat", list[0].Title)

	first := 1
	page, err := e.items.List(ctx, dto.ListItemsRequest{OrderBy: "price_ASC", Page: dto.PageRequest{Skip: 1, First: &first}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Blue Hat", page[0].Title)

	zero := 0
	empty, err := e.items.List(ctx, dto.ListItemsRequest{Page: dto.PageRequest{First: &zero}})
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = e.items.List(ctx, dto.ListItemsRequest{OrderBy: "id; DROP TABLE items"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	n, err := e.items.Count(ctx, dto.ItemWhere{TitleContains: &hat})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCartUseCase_AddToCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "c@b.com")
	it := e.item(t, u, "Mug", 800)

	_, err := e.cart.AddToCart(ctx, "", it.ID)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	_, err = e.cart.AddToCart(ctx, u.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	first, err := e.cart.AddToCart(ctx, u.ID, it.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)
	second, err := e.cart.AddToCart(ctx, u.ID, it.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Quantity)
}

func TestCartUseCase_AddToCartConcurrente(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "cc@b.com")
	it := e.item(t, u, "Pen", 50)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.cart.AddToCart(ctx, u.ID, it.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	lines, err := e.cart.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1, "una sola línea por (usuario, item)")
	assert.Equal(t, n, lines[0].Quantity)
}

func TestCartUseCase_RemoveFromCart(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.user(t, "rm@b.com")
	other := e.user(t, "x@b.com")
	it := e.item(t, u, "Cap", 10)
	ci, err := e.cart.AddToCart(ctx, u.ID, it.ID)
	require.NoError(t, err)

	_, err = e.cart.RemoveFromCart(ctx, other.ID, ci.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	removed, err := e.cart.RemoveFromCart(ctx, u.ID, ci.ID)
	require.NoError(t, err)
	assert.Equal(t, ci.ID, removed.ID)

	_, err = e.cart.RemoveFromCart(ctx, u.ID, ci.ID)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
}
