package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/storefront-api/internal/infrastructure/migrations"
)

// Migrate aplica el esquema embebido sobre el pool. goose necesita *sql.DB,
// así que se abre uno encima del pool y se cierra al terminar.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrations.Up(ctx, db, "postgres")
}
