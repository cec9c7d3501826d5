package persistence

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	"github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// DocumentRepository stores the log, tasks and settings as three documents.
type DocumentRepository struct {
	store  docstore.Store
	logger *slog.Logger
}

// NewDocumentRepository creates a new document-backed repository.
func NewDocumentRepository(store docstore.Store, logger *slog.Logger) *DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentRepository{store: store, logger: logger}
}

// LoadLog loads the log store. Entries with impossible hours or unknown
// categories are dropped.
func (r *DocumentRepository) LoadLog(ctx context.Context) (domain.LogStore, error) {
	log, err := docstore.LoadJSON(ctx, r.store, docstore.KeyLog, domain.NewLogStore, r.logger)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return domain.NewLogStore(), nil
	}
	if removed := log.Sanitize(); removed > 0 {
		r.logger.WarnContext(ctx, "dropped invalid log entries", "count", removed)
	}
	return log, nil
}

// SaveLog persists the log store.
func (r *DocumentRepository) SaveLog(ctx context.Context, log domain.LogStore) error {
	return docstore.SaveJSON(ctx, r.store, docstore.KeyLog, log)
}

// LoadTasks loads the task list.
func (r *DocumentRepository) LoadTasks(ctx context.Context) (domain.TaskList, error) {
	tasks, err := docstore.LoadJSON(ctx, r.store, docstore.KeyTasks, func() domain.TaskList { return domain.TaskList{} }, r.logger)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		return domain.TaskList{}, nil
	}
	return tasks, nil
}

// SaveTasks persists the task list.
func (r *DocumentRepository) SaveTasks(ctx context.Context, tasks domain.TaskList) error {
	if tasks == nil {
		tasks = domain.TaskList{}
	}
	return docstore.SaveJSON(ctx, r.store, docstore.KeyTasks, tasks)
}

// LoadSettings loads settings; missing fields keep their defaults.
func (r *DocumentRepository) LoadSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := docstore.LoadJSON(ctx, r.store, docstore.KeySettings, domain.DefaultSettings, r.logger)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		r.logger.WarnContext(ctx, "stored settings out of range, using defaults", "error", err)
		return domain.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings persists settings.
func (r *DocumentRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	return docstore.SaveJSON(ctx, r.store, docstore.KeySettings, settings)
}
