package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
)

func TestOpen_RequiresURL(t *testing.T) {
	_, err := Open(context.Background(), "", 0)
	assert.ErrorContains(t, err, "database URL is required")
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := docstore.Open(context.Background(), docstore.Config{
		Driver: docstore.DriverPostgres,
		URL:    "postgres://%zz",
	})
	assert.ErrorContains(t, err, "failed to parse database URL")
}
