package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, user_id, title, description, image, large_image, price, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo item.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.UserID, item.Title, item.Description, item.Image, item.LargeImage,
		item.Price, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// Update guarda los campos editables. El dueño no cambia.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items
		SET title = $2, description = $3, image = $4, large_image = $5, price = $6, updated_at = $7
		WHERE id = $1`,
		item.ID, item.Title, item.Description, item.Image, item.LargeImage, item.Price, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete borra el item; los cart_items que lo referencian quedan con item_id NULL.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// List aplica filtro, orden y paginación.
func (r *ItemRepo) List(ctx context.Context, params repository.ItemListParams) ([]*entity.Item, error) {
	where, args := itemWhere(params.Filter)
	query := `SELECT ` + itemColumns + ` FROM items` + where + ` ORDER BY ` + itemOrderClause(params.OrderBy)
	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if params.Offset > 0 {
		args = append(args, params.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Count cuenta los items que cumplen el filtro.
func (r *ItemRepo) Count(ctx context.Context, filter repository.ItemFilter) (int, error) {
	where, args := itemWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM items`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func itemWhere(f repository.ItemFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.TitleContains != nil {
		args = append(args, likePattern(*f.TitleContains))
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.DescriptionContains != nil {
		args = append(args, likePattern(*f.DescriptionContains))
		conds = append(conds, fmt.Sprintf("description ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// itemOrderClause traduce el enum a SQL fijo; nunca se interpola texto del cliente.
func itemOrderClause(o repository.ItemOrder) string {
	switch o {
	case repository.ItemOrderCreatedAtAsc:
		return "created_at ASC, id ASC"
	case repository.ItemOrderPriceAsc:
		return "price ASC, id ASC"
	case repository.ItemOrderPriceDesc:
		return "price DESC, id DESC"
	case repository.ItemOrderTitleAsc:
		return "title ASC, id ASC"
	case repository.ItemOrderTitleDesc:
		return "title DESC, id DESC"
	default:
		return "created_at DESC, id DESC"
	}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.UserID, &it.Title, &it.Description, &it.Image, &it.LargeImage,
		&it.Price, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
