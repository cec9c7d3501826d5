package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// LoadJSON decodes the document under key into a value of type T.
//
// The document is decoded on top of fallback(), so fields absent from the
// stored JSON keep their defaults. A missing document yields fallback(). A
// document that does not decode also yields fallback(), after a warning:
// corrupt state fails closed to defaults instead of blocking startup.
// Backend errors are returned.
func LoadJSON[T any](ctx context.Context, store Store, key string, fallback func() T, logger *slog.Logger) (T, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read %s: %w", key, err)
	}

	v := fallback()
	if err := json.Unmarshal(raw, &v); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "discarding corrupt document", "key", key, "error", err)
		}
		return fallback(), nil
	}
	return v, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
