// Package application exports and imports the full tracking state.
package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/pytron/internal/backup/domain"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

// maxImportSize bounds the bytes read from an import source.
const maxImportSize = 64 << 20

// StateStore is the part of the tracking service backups need.
type StateStore interface {
	Snapshot() tracking.State
	Now() time.Time
	ReplaceState(ctx context.Context, cmd trackingApp.ReplaceStateCommand) error
}

// Service exports and imports bundles.
type Service struct {
	state  StateStore
	logger *slog.Logger
}

// NewService creates a backup service.
func NewService(state StateStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{state: state, logger: logger}
}

// Export writes the current state to w.
func (s *Service) Export(ctx context.Context, w io.Writer, f domain.Format) error {
	b := domain.NewBundle(s.state.Snapshot(), s.state.Now())
	raw, err := domain.Encode(b, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	s.logger.InfoContext(ctx, "state exported", "format", f, "days", len(b.Data), "tasks", len(b.Tasks))
	return nil
}

// ImportResult summarizes what an import replaced.
type ImportResult struct {
	Version  string `json:"version"`
	Days     int    `json:"days"`
	Tasks    int    `json:"tasks"`
	Log      bool   `json:"log"`
	TaskList bool   `json:"taskList"`
	Settings bool   `json:"settings"`
}

// Import parses the whole bundle first; nothing is changed unless it is
// valid. Only the fields present in the bundle are replaced.
func (s *Service) Import(ctx context.Context, r io.Reader, f domain.Format) (ImportResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read backup: %w", err)
	}
	if len(raw) > maxImportSize {
		return ImportResult{}, fmt.Errorf("%w: larger than %d bytes", domain.ErrInvalidBundle, maxImportSize)
	}

	b, err := domain.Decode(raw, f)
	if err != nil {
		return ImportResult{}, err
	}

	cmd := trackingApp.ReplaceStateCommand{
		Log:      b.Data,
		Tasks:    b.Tasks,
		Settings: b.Settings,
	}
	if err := s.state.ReplaceState(ctx, cmd); err != nil {
		return ImportResult{}, fmt.Errorf("failed to import backup: %w", err)
	}

	result := ImportResult{
		Version:  b.Version,
		Days:     len(b.Data),
		Tasks:    len(b.Tasks),
		Log:      b.Data != nil,
		TaskList: b.Tasks != nil,
		Settings: b.Settings != nil,
	}
	s.logger.InfoContext(ctx, "state imported",
		"version", result.Version,
		"days", result.Days,
		"tasks", result.Tasks,
		"settings", result.Settings,
	)
	return result, nil
}
