package domain

import "context"

// StateRepository loads and saves the three tracking documents.
type StateRepository interface {
	LoadLog(ctx context.Context) (LogStore, error)
	SaveLog(ctx context.Context, log LogStore) error
	LoadTasks(ctx context.Context) (TaskList, error)
	SaveTasks(ctx context.Context, tasks TaskList) error
	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) error
}
