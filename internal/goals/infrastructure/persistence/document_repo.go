package persistence

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/pytron/internal/goals/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
)

// DocumentRepository stores the goal list as a JSON array.
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

// Load returns the stored goals. Entries without an id are dropped.
func (r *DocumentRepository) Load(ctx context.Context) ([]*domain.Goal, error) {
	stored, err := docstore.LoadJSON(ctx, r.store, docstore.KeyGoals, func() []*domain.Goal { return nil }, r.logger)
	if err != nil {
		return nil, err
	}
	goals := make([]*domain.Goal, 0, len(stored))
	for _, g := range stored {
		if g == nil || g.ID == "" {
			r.logger.WarnContext(ctx, "dropping goal without id")
			continue
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// Save persists the goal list.
func (r *DocumentRepository) Save(ctx context.Context, goals []*domain.Goal) error {
	if goals == nil {
		goals = []*domain.Goal{}
	}
	return docstore.SaveJSON(ctx, r.store, docstore.KeyGoals, goals)
}
