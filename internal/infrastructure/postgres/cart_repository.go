package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

const cartColumns = `id, user_id, item_id, quantity, created_at, updated_at`

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia para el carrito.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// AddOrIncrement se apoya en UNIQUE (user_id, item_id): dos llamadas concurrentes
// terminan en una sola fila con quantity 2.
func (r *CartRepo) AddOrIncrement(ctx context.Context, id, userID, itemID string) (*entity.CartItem, error) {
	query := `
		INSERT INTO cart_items (id, user_id, item_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, 1, now(), now())
		ON CONFLICT (user_id, item_id)
		DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = EXCLUDED.updated_at
		RETURNING ` + cartColumns
	ci, err := scanCartItem(r.q.QueryRow(ctx, query, id, userID, itemID))
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}
	return ci, nil
}

// GetByID obtiene una línea del carrito por ID.
func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	ci, err := scanCartItem(r.q.QueryRow(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return ci, nil
}

// ListByUser devuelve el carrito del usuario en orden de alta.
func (r *CartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	var out []*entity.CartItem
	for rows.Next() {
		ci, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		out = append(out, ci)
	}
	return out, rows.Err()
}

// Delete borra la línea del carrito.
func (r *CartRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	var ci entity.CartItem
	if err := row.Scan(&ci.ID, &ci.UserID, &ci.ItemID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt); err != nil {
		return nil, err
	}
	return &ci, nil
}
