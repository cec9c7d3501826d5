package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/internal/badges/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func TestDocumentRepository(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewDocumentRepository(store, observability.DiscardLogger())

	t.Run("missing document is empty", func(t *testing.T) {
		set, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("round trip keeps order", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, domain.UnlockedSet{"night_owl", "focused"}))

		set, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.UnlockedSet{"night_owl", "focused"}, set)

		raw, err := store.Get(ctx, docstore.KeyUnlockedBadges)
		require.NoError(t, err)
		assert.JSONEq(t, `["night_owl","focused"]`, string(raw))
	})

	t.Run("drops unknown and duplicate ids", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, docstore.KeyUnlockedBadges, []byte(`["focused","legacy","focused"]`)))

		set, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.UnlockedSet{"focused"}, set)
	})

	t.Run("corrupt document fails closed", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, docstore.KeyUnlockedBadges, []byte(`{not json`)))

		set, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, set)
	})
}
