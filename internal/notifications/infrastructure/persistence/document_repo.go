package persistence

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/pytron/internal/notifications/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
)

// DocumentRepository stores the notification settings as one document.
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

// Load returns the stored settings. Settings with unparseable times fall
// back to the defaults.
func (r *DocumentRepository) Load(ctx context.Context) (domain.Settings, error) {
	s, err := docstore.LoadJSON(ctx, r.store, docstore.KeyNotificationSettings, domain.DefaultSettings, r.logger)
	if err != nil {
		return domain.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		r.logger.WarnContext(ctx, "stored notification settings invalid, using defaults", "error", err)
		return domain.DefaultSettings(), nil
	}
	return s, nil
}

// Save persists the settings.
func (r *DocumentRepository) Save(ctx context.Context, s domain.Settings) error {
	return docstore.SaveJSON(ctx, r.store, docstore.KeyNotificationSettings, s)
}
