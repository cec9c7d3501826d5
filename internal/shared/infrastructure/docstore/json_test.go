package docstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	"github.com/felixgeelhaar/pytron/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsDoc struct {
	TargetHours int `json:"targetHours"`
}

func defaultSettings() settingsDoc { return settingsDoc{TargetHours: 8} }

type brokenStore struct{ *docstore.MemoryStore }

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func TestLoadJSON_MissingDocumentUsesFallback(t *testing.T) {
	store := docstore.NewMemoryStore()

	got, err := docstore.LoadJSON(context.Background(), store, docstore.KeySettings, defaultSettings, nil)

	require.NoError(t, err)
	assert.Equal(t, 8, got.TargetHours)
}

func TestLoadJSON_CorruptDocumentFailsClosed(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, docstore.KeySettings, []byte("{not json")))

	got, err := docstore.LoadJSON(ctx, store, docstore.KeySettings, defaultSettings, observability.DiscardLogger())

	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), got)
}

func TestLoadJSON_BackendErrorIsReturned(t *testing.T) {
	store := brokenStore{docstore.NewMemoryStore()}

	_, err := docstore.LoadJSON(context.Background(), store, docstore.KeyLog, defaultSettings, nil)

	assert.ErrorContains(t, err, "connection reset")
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	require.NoError(t, docstore.SaveJSON(ctx, store, docstore.KeySettings, settingsDoc{TargetHours: 6}))

	raw, err := store.Get(ctx, docstore.KeySettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"targetHours":6}`, string(raw))

	got, err := docstore.LoadJSON(ctx, store, docstore.KeySettings, defaultSettings, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, got.TargetHours)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, docstore.ErrNotFound)

	value := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got), "store must copy input")

	require.NoError(t, store.Delete(ctx, "k"))
	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.Equal(t, docstore.DriverMemory, store.Driver())
}

func TestOpen_MemoryAndUnknownDriver(t *testing.T) {
	store, err := docstore.Open(context.Background(), docstore.Config{URL: "memory"})
	require.NoError(t, err)
	assert.Equal(t, docstore.DriverMemory, store.Driver())

	_, err = docstore.Open(context.Background(), docstore.Config{Driver: "mongo"})
	assert.ErrorContains(t, err, "unsupported document store driver")
}

func TestLoadJSON_PartialDocumentKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, docstore.KeySettings, []byte(`{}`)))

	got, err := docstore.LoadJSON(ctx, store, docstore.KeySettings, defaultSettings, nil)

	require.NoError(t, err)
	assert.Equal(t, 8, got.TargetHours)
}
