package docstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds document store configuration.
type Config struct {
	// Driver selects the backend. Empty means detect from URL.
	Driver Driver

	// URL is the connection string for PostgreSQL or Redis.
	URL string

	// SQLitePath is the database file used by the SQLite backend.
	SQLitePath string

	// Namespace prefixes Redis keys.
	Namespace string

	// MaxConns bounds the PostgreSQL pool.
	MaxConns int
}

// Opener constructs a backend from configuration.
type Opener func(ctx context.Context, cfg Config) (Store, error)

var openers = map[Driver]Opener{
	DriverMemory: func(context.Context, Config) (Store, error) { return NewMemoryStore(), nil },
}

// Register installs the opener for a driver. Backend packages call it from
// init, so importing a backend package enables it.
func Register(driver Driver, open Opener) {
	openers[driver] = open
}

// Open creates a store based on configuration.
func Open(ctx context.Context, cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}
	// A sqlite URL wins over the configured file path.
	if driver == DriverSQLite && (cfg.URL != "" || cfg.SQLitePath == "") {
		cfg.SQLitePath = sqlitePathFromURL(cfg.URL)
	}

	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported document store driver: %s", driver)
	}
	return open(ctx, cfg)
}

func sqlitePathFromURL(url string) string {
	if url == "" {
		return DefaultSQLitePath()
	}
	return strings.TrimPrefix(url, "sqlite://")
}

// DefaultSQLitePath returns the default SQLite database path.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".pytron", "pytron.db")
}

// EnsureDirectory creates the parent directory for a file path if it doesn't exist.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
