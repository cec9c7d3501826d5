package domain

import "context"

// Repository persists the timer state.
type Repository interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}
