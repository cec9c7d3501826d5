package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedFS_ContainsDocumentsSchema(t *testing.T) {
	content, err := FS.ReadFile("sql/001_documents.sql")
	require.NoError(t, err)

	s := string(content)
	assert.True(t, strings.Contains(s, "-- +goose Up"))
	assert.True(t, strings.Contains(s, "-- +goose Down"))
	assert.True(t, strings.Contains(s, "CREATE TABLE IF NOT EXISTS documents"))
}
