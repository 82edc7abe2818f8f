// Package sqlite implementa los puertos de persistencia sobre SQLite (modernc, sin cgo).
// Se usa en desarrollo local y en los tests de aplicación.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/storefront-api/internal/infrastructure/migrations"
)

// DB envuelve el *sql.DB y entrega los repositorios.
type DB struct {
	SqlDB *sql.DB
}

// New abre (o crea) la base en path con WAL y foreign keys activas.
func New(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Un solo escritor.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{SqlDB: db}, nil
}

// Migrate aplica el esquema embebido.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Up(ctx, d.SqlDB, "sqlite")
}

// Close cierra la conexión.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() *UserRepository { return &UserRepository{db: d.SqlDB} }
func (d *DB) Items() *ItemRepository { return &ItemRepository{db: d.SqlDB} }
func (d *DB) Cart() *CartRepository  { return &CartRepository{db: d.SqlDB} }

func isUniqueConstraintError(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// utc normaliza antes de escribir: las fechas se comparan como texto.
func utc(t time.Time) time.Time { return t.UTC() }
