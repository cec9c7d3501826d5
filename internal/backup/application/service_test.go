package application

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pytron/internal/backup/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
	"github.com/felixgeelhaar/pytron/internal/tracking/infrastructure/persistence"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

var now = time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)

func newTracking(t *testing.T, store docstore.Store) *trackingApp.Service {
	t.Helper()
	repo := persistence.NewDocumentRepository(store, observability.DiscardLogger())
	svc, err := trackingApp.NewService(context.Background(), repo,
		trackingApp.WithClock(func() time.Time { return now }),
		trackingApp.WithLogger(observability.DiscardLogger()),
	)
	require.NoError(t, err)
	return svc
}

func seed(t *testing.T, svc *trackingApp.Service) {
	t.Helper()
	ctx := context.Background()
	task, err := svc.AddTask(ctx, trackingApp.AddTaskCommand{Text: "Write report", Meta: tracking.TaskMeta{DueTime: "16:00", Priority: tracking.PriorityHigh, Tag: "work"}})
	require.NoError(t, err)
	_, err = svc.LogHour(ctx, trackingApp.LogHourCommand{Hour: 9, Category: tracking.CategoryDeepWork, Note: "report", TaskID: task.ID})
	require.NoError(t, err)
	_, err = svc.LogHour(ctx, trackingApp.LogHourCommand{Date: "2026-10-13", Hour: 22, Category: tracking.CategorySleep})
	require.NoError(t, err)
	_, err = svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	target := 6
	_, err = svc.UpdateSettings(ctx, trackingApp.UpdateSettingsCommand{TargetHours: &target})
	require.NoError(t, err)
}

func documents(t *testing.T, store docstore.Store) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, key := range []string{docstore.KeyLog, docstore.KeyTasks, docstore.KeySettings} {
		raw, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		out[key] = string(raw)
	}
	return out
}

func TestExportImport_RoundTripIsByteIdentical(t *testing.T) {
	for _, f := range []domain.Format{domain.FormatJSON, domain.FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			ctx := context.Background()
			source := docstore.NewMemoryStore()
			src := newTracking(t, source)
			seed(t, src)

			var buf bytes.Buffer
			require.NoError(t, NewService(src, observability.DiscardLogger()).Export(ctx, &buf, f))

			target := docstore.NewMemoryStore()
			dst := newTracking(t, target)
			result, err := NewService(dst, observability.DiscardLogger()).Import(ctx, &buf, f)
			require.NoError(t, err)
			assert.Equal(t, domain.Version, result.Version)
			assert.Equal(t, 2, result.Days)
			assert.Equal(t, 1, result.Tasks)
			assert.True(t, result.Settings)

			assert.Equal(t, documents(t, source), documents(t, target))
			assert.Equal(t, src.Snapshot(), dst.Snapshot())
		})
	}
}

func TestImport_OnlyPresentFieldsAreReplaced(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := newTracking(t, store)
	seed(t, svc)
	before := svc.Snapshot()

	_, err := NewService(svc, observability.DiscardLogger()).Import(ctx,
		strings.NewReader(`{"version":"1.0","settings":{"targetHours":10,"streakThreshold":50}}`), domain.FormatJSON)
	require.NoError(t, err)

	after := svc.Snapshot()
	assert.Equal(t, 10, after.Settings.TargetHours)
	assert.Equal(t, before.Log, after.Log)
	assert.Equal(t, before.Tasks, after.Tasks)
}

func TestImport_MalformedLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := newTracking(t, store)
	seed(t, svc)
	before := documents(t, store)

	_, err := NewService(svc, observability.DiscardLogger()).Import(ctx,
		strings.NewReader(`{"data":{"2026-10-14":{"9":{"category":"NAPPING"}}},"tasks":[]}`), domain.FormatJSON)
	assert.ErrorIs(t, err, domain.ErrInvalidBundle)
	assert.Equal(t, before, documents(t, store))
}
