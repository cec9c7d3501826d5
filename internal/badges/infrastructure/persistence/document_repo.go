package persistence

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/pytron/internal/badges/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
)

// DocumentRepository stores the unlocked set as a JSON array of ids.
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

// Load returns the unlocked set, dropping ids the catalog does not know.
func (r *DocumentRepository) Load(ctx context.Context) (domain.UnlockedSet, error) {
	stored, err := docstore.LoadJSON(ctx, r.store, docstore.KeyUnlockedBadges, func() domain.UnlockedSet { return domain.UnlockedSet{} }, r.logger)
	if err != nil {
		return nil, err
	}
	set := domain.UnlockedSet{}
	for _, id := range stored {
		if _, ok := domain.FindBadge(id); !ok {
			r.logger.WarnContext(ctx, "dropping unknown badge id", "badge_id", id)
			continue
		}
		set.Add(id)
	}
	return set, nil
}

// Save persists the unlocked set.
func (r *DocumentRepository) Save(ctx context.Context, set domain.UnlockedSet) error {
	if set == nil {
		set = domain.UnlockedSet{}
	}
	return docstore.SaveJSON(ctx, r.store, docstore.KeyUnlockedBadges, set)
}
