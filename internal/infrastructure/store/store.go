// Package store abre el backend configurado (DB_DRIVER) y entrega los repositorios.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/storefront-api/internal/domain/repository"
	"github.com/jhoicas/storefront-api/internal/infrastructure/postgres"
	"github.com/jhoicas/storefront-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/storefront-api/pkg/config"
)

// Store repositorios sobre una misma conexión.
type Store struct {
	Users repository.UserRepository
	Items repository.ItemRepository
	Cart  repository.CartRepository
	close func()
}

// Open conecta y aplica migraciones pendientes.
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Users: postgres.NewUserRepository(pool),
			Items: postgres.NewItemRepository(pool),
			Cart:  postgres.NewCartRepository(pool),
			close: pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Store{
			Users: db.Users(),
			Items: db.Items(),
			Cart:  db.Cart(),
			close: func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER desconocido: %q", cfg.Driver)
	}
}

// Close libera la conexión.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
