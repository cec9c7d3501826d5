// Package migrations holds the document table schema and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var FS embed.FS

// goose keeps its dialect and filesystem in package globals.
var mu sync.Mutex

// Up applies all pending migrations. dialect is "sqlite" or "postgres".
func Up(db *sql.DB, dialect string) error {
	mu.Lock()
	defer mu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(FS)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
