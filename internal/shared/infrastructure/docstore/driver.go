package docstore

import "strings"

// Driver represents a document store backend.
type Driver string

const (
	// DriverSQLite stores documents in a local SQLite file. It is the
	// zero-config default.
	DriverSQLite Driver = "sqlite"
	// DriverPostgres stores documents in a PostgreSQL table.
	DriverPostgres Driver = "postgres"
	// DriverRedis stores documents as namespaced Redis string keys.
	DriverRedis Driver = "redis"
	// DriverMemory keeps documents in process memory.
	DriverMemory Driver = "memory"
)

// String returns the string representation of the driver.
func (d Driver) String() string {
	return string(d)
}

// DetectDriver parses a store URL and returns the backend type.
// Returns DriverSQLite for empty URLs.
func DetectDriver(url string) Driver {
	switch {
	case url == "":
		return DriverSQLite
	case url == "memory" || strings.HasPrefix(url, "memory://"):
		return DriverMemory
	case strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(url, "redis://") || strings.HasPrefix(url, "rediss://"):
		return DriverRedis
	default:
		// sqlite://, file:, *.db and plain paths
		return DriverSQLite
	}
}

// IsValid returns true if the driver is a known type.
func (d Driver) IsValid() bool {
	switch d {
	case DriverSQLite, DriverPostgres, DriverRedis, DriverMemory:
		return true
	default:
		return false
	}
}
