package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/internal/goals/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore/sqlite"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func TestDocumentRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "goals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo := NewDocumentRepository(store, observability.DiscardLogger())

	goals, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, goals)

	c := tracking.CategoryDeepWork
	g, err := domain.NewGoal("Focus", domain.GoalTypeHours, 20, &c, nil, time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	g.Current = 6
	g.CheckMilestones(time.Now())

	require.NoError(t, repo.Save(ctx, []*domain.Goal{g}))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, g.ID, loaded[0].ID)
	assert.Equal(t, tracking.CategoryDeepWork, *loaded[0].Category)
	assert.True(t, loaded[0].Milestones.Reached(25))
	assert.False(t, loaded[0].Milestones.Reached(50))
	assert.Nil(t, loaded[0].CompletedAt)
}

func TestDocumentRepository_DocumentShape(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewDocumentRepository(store, observability.DiscardLogger())

	require.NoError(t, store.Put(ctx, docstore.KeyGoals, []byte(`[
		{"id":"1700000000000","title":"Tasks","type":"tasks","target":10,"current":3,
		 "category":null,"deadline":null,"createdAt":"2026-01-02T03:04:05.000Z","completedAt":null,
		 "milestones":{"25":true,"50":false,"75":false,"100":false}},
		{"title":"orphan"}
	]`)))

	goals, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "1700000000000", goals[0].ID)
	assert.Nil(t, goals[0].Category)
	assert.True(t, goals[0].Milestones.Reached(25))

	require.NoError(t, repo.Save(ctx, nil))
	raw, err := store.Get(ctx, docstore.KeyGoals)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
