package domain

import (
	"context"
	"slices"
)

// Repository persists the goal list as one document.
type Repository interface {
	Load(ctx context.Context) ([]*Goal, error)
	Save(ctx context.Context, goals []*Goal) error
}

// Find returns the goal with id.
func Find(goals []*Goal, id string) (*Goal, bool) {
	if i := IndexOf(goals, id); i >= 0 {
		return goals[i], true
	}
	return nil, false
}

// IndexOf returns the position of the goal with id, or -1.
func IndexOf(goals []*Goal, id string) int {
	return slices.IndexFunc(goals, func(g *Goal) bool { return g.ID == id })
}
