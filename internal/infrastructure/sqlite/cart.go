package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepository)(nil)

const cartColumns = `id, user_id, item_id, quantity, created_at, updated_at`

// CartRepository implementa repository.CartRepository.
type CartRepository struct {
	db *sql.DB
}

// AddOrIncrement es un upsert sobre UNIQUE (user_id, item_id).
func (r *CartRepository) AddOrIncrement(ctx context.Context, id, userID, itemID string) (*entity.CartItem, error) {
	now := utc(time.Now())
	ci, err := scanCartItem(r.db.QueryRowContext(ctx,
		`INSERT INTO cart_items (id, user_id, item_id, quantity, created_at, updated_at)
		 VALUES (?, ?, ?, 1, ?, ?)
		 ON CONFLICT (user_id, item_id)
		 DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = excluded.updated_at
		 RETURNING `+cartColumns,
		id, userID, itemID, now, now,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}
	return ci, nil
}

func (r *CartRepository) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	ci, err := scanCartItem(r.db.QueryRowContext(ctx, `SELECT `+cartColumns+` FROM cart_items WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query cart item: %w", err)
	}
	return ci, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cartColumns+` FROM cart_items WHERE user_id = ? ORDER BY created_at, id`, userID)
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

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return affectedOr(res, domain.ErrCartItemNotFound)
}

func scanCartItem(row scanner) (*entity.CartItem, error) {
	var (
		ci     entity.CartItem
		itemID sql.NullString
	)
	if err := row.Scan(&ci.ID, &ci.UserID, &itemID, &ci.Quantity, &ci.CreatedAt, &ci.UpdatedAt); err != nil {
		return nil, err
	}
	if itemID.Valid {
		ci.ItemID = &itemID.String
	}
	return &ci, nil
}
