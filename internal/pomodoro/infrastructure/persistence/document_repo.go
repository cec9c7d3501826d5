package persistence

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
)

// DocumentRepository stores the timer state as one document.
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

// Load returns the stored state, or the defaults.
func (r *DocumentRepository) Load(ctx context.Context) (domain.State, error) {
	state, err := docstore.LoadJSON(ctx, r.store, docstore.KeyPomodoroState, domain.DefaultState, r.logger)
	if err != nil {
		return domain.State{}, err
	}
	if state.WorkDuration < 1 || state.SessionsUntilLongBreak < 1 {
		r.logger.WarnContext(ctx, "stored pomodoro state invalid, using defaults")
		return domain.DefaultState(), nil
	}
	state.Recover()
	return state, nil
}

// Save persists the state.
func (r *DocumentRepository) Save(ctx context.Context, state domain.State) error {
	return docstore.SaveJSON(ctx, r.store, docstore.KeyPomodoroState, state)
}
