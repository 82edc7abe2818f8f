// Package migrations contiene el esquema embebido de cada driver y lo aplica con goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Up aplica las migraciones pendientes del dialecto indicado ("postgres" o "sqlite").
// Usa un goose.Provider propio: no toca el estado global de goose.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	var dialect goose.Dialect
	switch driver {
	case "postgres":
		dialect = goose.DialectPostgres
	case "sqlite":
		dialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("migraciones: driver desconocido %q", driver)
	}

	fsys, err := fs.Sub(files, driver)
	if err != nil {
		return fmt.Errorf("migraciones: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("crear provider goose: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}
	return nil
}
