package domain

import "context"

// Repository persists the unlocked set.
type Repository interface {
	Load(ctx context.Context) (UnlockedSet, error)
	Save(ctx context.Context, set UnlockedSet) error
}
