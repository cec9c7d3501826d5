package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore/sqlite"
	"github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

func setupTestRepo(t *testing.T) (*DocumentRepository, docstore.Store) {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "pytron.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewDocumentRepository(store, observability.DiscardLogger()), store
}

func TestDocumentRepository_EmptyStoreDefaults(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	log, err := repo.LoadLog(ctx)
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.Empty(t, log)

	tasks, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestDocumentRepository_SaveAndLoad(t *testing.T) {
	repo, _ := setupTestRepo(t)
	ctx := context.Background()

	log := domain.NewLogStore()
	require.NoError(t, log.SetHour("2024-06-01", 10, domain.LogEntry{Category: domain.CategoryDeepWork, Note: "focus"}))
	require.NoError(t, repo.SaveLog(ctx, log))

	var tasks domain.TaskList
	_, err := tasks.Add("t1", "ship", domain.TaskMeta{Priority: domain.PriorityHigh})
	require.NoError(t, err)
	require.NoError(t, repo.SaveTasks(ctx, tasks))

	settings := domain.Settings{TargetHours: 6, StreakThreshold: 50, UserName: "sam", AvatarStyle: "pixel"}
	require.NoError(t, repo.SaveSettings(ctx, settings))

	gotLog, err := repo.LoadLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, log, gotLog)

	gotTasks, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, gotTasks)

	gotSettings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, gotSettings)
}

func TestDocumentRepository_CorruptDocumentsFailClosed(t *testing.T) {
	repo, store := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, docstore.KeyLog, []byte(`{"2024-01-01": "oops"`)))
	require.NoError(t, store.Put(ctx, docstore.KeyTasks, []byte(`{"not":"a list"}`)))
	require.NoError(t, store.Put(ctx, docstore.KeySettings, []byte(`{"targetHours": 0}`)))

	log, err := repo.LoadLog(ctx)
	require.NoError(t, err)
	assert.Empty(t, log)

	tasks, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestDocumentRepository_NullDocuments(t *testing.T) {
	repo, store := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, docstore.KeyLog, []byte(`null`)))
	require.NoError(t, store.Put(ctx, docstore.KeyTasks, []byte(`null`)))

	log, err := repo.LoadLog(ctx)
	require.NoError(t, err)
	assert.NotNil(t, log)

	tasks, err := repo.LoadTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
}

func TestDocumentRepository_PartialSettingsKeepDefaults(t *testing.T) {
	repo, store := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, docstore.KeySettings, []byte(`{"userName":"ada"}`)))

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, settings.TargetHours)
	assert.Equal(t, 80, settings.StreakThreshold)
	assert.Equal(t, "ada", settings.UserName)
}
