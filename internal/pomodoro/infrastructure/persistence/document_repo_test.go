package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func TestDocumentRepository(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewDocumentRepository(store, observability.DiscardLogger())

	state, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultState(), state)

	state.Start()
	state.TimeRemaining = 600
	require.NoError(t, repo.Save(ctx, state))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 600, loaded.TimeRemaining)
	assert.Equal(t, domain.StatusPaused, loaded.Status(), "a running timer comes back paused")

	require.NoError(t, store.Put(ctx, docstore.KeyPomodoroState, []byte(`{"workDuration":0}`)))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultState(), loaded)

	require.NoError(t, store.Put(ctx, docstore.KeyPomodoroState, []byte(`{"breakDuration":10}`)))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.BreakDuration)
	assert.Equal(t, 25, loaded.WorkDuration, "missing fields keep their defaults")
}
