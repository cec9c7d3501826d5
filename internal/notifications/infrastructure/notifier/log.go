// Package notifier delivers notifications: to the log, to a message
// broker, or through a circuit breaker in front of either.
package notifier

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/pytron/internal/notifications/domain"
)

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note domain.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"kind", note.Kind,
		"title", note.Title,
		"body", note.Body,
		"tag", note.Tag,
	)
	return nil
}

// Fanout sends to every notifier and returns the first error after trying
// them all.
type Fanout []domain.Notifier

func (f Fanout) Notify(ctx context.Context, note domain.Notification) error {
	var first error
	for _, n := range f {
		if err := n.Notify(ctx, note); err != nil && first == nil {
			first = err
		}
	}
	return first
}
