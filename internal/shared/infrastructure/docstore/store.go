// Package docstore persists named JSON documents under versioned keys.
// Every backend stores the same byte content, so a document written by one
// backend can be exported and imported into another.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists under the key.
var ErrNotFound = errors.New("document not found")

// Versioned document keys.
const (
	KeyLog                  = "daily_tracker_data_v1"
	KeyTasks                = "daily_tracker_data_v1_tasks"
	KeySettings             = "daily_tracker_data_v1_settings"
	KeyUnlockedBadges       = "pytron_unlocked_badges"
	KeyGoals                = "pytron_goals"
	KeyNotificationSettings = "pytron_notification_settings"
	KeyPomodoroState        = "pytron_pomodoro_state"
)

// Store is a key-value document store.
type Store interface {
	// Get returns the raw document or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the document under key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Driver reports the backend type.
	Driver() Driver
	// Close releases backend resources.
	Close() error
}
