package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepository)(nil)

const itemColumns = `id, user_id, title, description, image, large_image, price, created_at, updated_at`

// ItemRepository implementa repository.ItemRepository.
type ItemRepository struct {
	db *sql.DB
}

func (r *ItemRepository) Create(ctx context.Context, item *entity.Item) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Title, item.Description, item.Image, item.LargeImage,
		item.Price, utc(item.CreatedAt), utc(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return it, nil
}

func (r *ItemRepository) Update(ctx context.Context, item *entity.Item) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET title = ?, description = ?, image = ?, large_image = ?, price = ?, updated_at = ?
		 WHERE id = ?`,
		item.Title, item.Description, item.Image, item.LargeImage, item.Price, utc(item.UpdatedAt), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return affectedOr(res, domain.ErrItemNotFound)
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return affectedOr(res, domain.ErrItemNotFound)
}

func (r *ItemRepository) List(ctx context.Context, params repository.ItemListParams) ([]*entity.Item, error) {
	where, args := itemWhere(params.Filter)
	query := `SELECT ` + itemColumns + ` FROM items` + where + ` ORDER BY ` + itemOrderClause(params.OrderBy)
	// SQLite exige LIMIT para usar OFFSET; -1 = sin tope.
	if params.Limit > 0 || params.Offset > 0 {
		limit := params.Limit
		if limit <= 0 {
			limit = -1
		}
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, params.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *ItemRepository) Count(ctx context.Context, filter repository.ItemFilter) (int, error) {
	where, args := itemWhere(filter)
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// LIKE de SQLite ya ignora mayúsculas en ASCII.
func itemWhere(f repository.ItemFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.TitleContains != nil {
		conds = append(conds, `title LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(*f.TitleContains))
	}
	if f.DescriptionContains != nil {
		conds = append(conds, `description LIKE ? ESCAPE '\'`)
		args = append(args, likePattern(*f.DescriptionContains))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

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

func scanItem(row scanner) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.UserID, &it.Title, &it.Description, &it.Image, &it.LargeImage,
		&it.Price, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
