// Package domain defines user goals and their milestone rules.
package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	tracking "github.com/felixgeelhaar/pytron/internal/tracking/domain"
)

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrEmptyTitle       = errors.New("goal title cannot be empty")
	ErrInvalidGoalType  = errors.New("invalid goal type")
	ErrInvalidTarget    = errors.New("goal target must be positive")
	ErrCategoryMismatch = errors.New("only hours goals take a category")
	ErrNotCustom        = errors.New("only custom goals accept a manual value")
)

// GoalType selects how current is measured.
type GoalType string

const (
	GoalTypeHours  GoalType = "hours"
	GoalTypeStreak GoalType = "streak"
	GoalTypeTasks  GoalType = "tasks"
	GoalTypeCustom GoalType = "custom"
)

// IsValid checks if the goal type is known.
func (t GoalType) IsValid() bool {
	switch t {
	case GoalTypeHours, GoalTypeStreak, GoalTypeTasks, GoalTypeCustom:
		return true
	default:
		return false
	}
}

// ParseGoalType accepts any case.
func ParseGoalType(s string) (GoalType, error) {
	t := GoalType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidGoalType
	}
	return t, nil
}

// Goal is a user-defined numeric target.
type Goal struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Type        GoalType           `json:"type"`
	Target      float64            `json:"target"`
	Current     float64            `json:"current"`
	Category    *tracking.Category `json:"category"`
	Deadline    *tracking.DateKey  `json:"deadline"`
	CreatedAt   time.Time          `json:"createdAt"`
	CompletedAt *time.Time         `json:"completedAt"`
	Milestones  Milestones         `json:"milestones"`
}

// NewGoal validates the fields and creates an incomplete goal.
func NewGoal(title string, goalType GoalType, target float64, category *tracking.Category, deadline *tracking.DateKey, now time.Time) (*Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !goalType.IsValid() {
		return nil, ErrInvalidGoalType
	}
	if !validTarget(target) {
		return nil, ErrInvalidTarget
	}
	if category != nil {
		if goalType != GoalTypeHours {
			return nil, ErrCategoryMismatch
		}
		if !category.IsValid() {
			return nil, tracking.ErrInvalidCategory
		}
	}
	if deadline != nil && !deadline.IsValid() {
		return nil, tracking.ErrInvalidDateKey
	}

	return &Goal{
		ID:        uuid.NewString(),
		Title:     title,
		Type:      goalType,
		Target:    target,
		Category:  category,
		Deadline:  deadline,
		CreatedAt: now.UTC(),
	}, nil
}

func validTarget(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// IsCompleted reports whether the goal reached 100%.
func (g *Goal) IsCompleted() bool {
	return g.CompletedAt != nil
}

// Progress is min(100, current/target*100), or 0 for a zero target.
func (g *Goal) Progress() float64 {
	if g.Target == 0 {
		return 0
	}
	return math.Min(100, g.Current/g.Target*100)
}

// ProgressPercent is Progress rounded for display.
func (g *Goal) ProgressPercent() int {
	return int(math.Floor(g.Progress() + 0.5))
}

// Measure recomputes current from the tracking state. Custom goals and
// completed goals are left alone.
func (g *Goal) Measure(m Measurements) {
	if g.IsCompleted() {
		return
	}
	switch g.Type {
	case GoalTypeHours:
		if g.Category != nil {
			g.Current = float64(m.CategoryHours[*g.Category])
		} else {
			g.Current = float64(m.TotalHours)
		}
	case GoalTypeStreak:
		g.Current = float64(m.Streak)
	case GoalTypeTasks:
		g.Current = float64(m.CompletedTasks)
	case GoalTypeCustom:
		// updated by hand only
	}
}

// SetCurrent records progress on a custom goal.
func (g *Goal) SetCurrent(v float64) error {
	if g.Type != GoalTypeCustom {
		return ErrNotCustom
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidTarget
	}
	g.Current = v
	return nil
}

// Update holds optional field changes.
type Update struct {
	Title    *string
	Target   *float64
	Current  *float64
	Deadline *tracking.DateKey
}

// Apply validates and applies the update.
func (g *Goal) Apply(u Update) error {
	next := *g
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		next.Title = title
	}
	if u.Target != nil {
		if !validTarget(*u.Target) {
			return ErrInvalidTarget
		}
		next.Target = *u.Target
	}
	if u.Current != nil {
		if err := next.SetCurrent(*u.Current); err != nil {
			return err
		}
	}
	if u.Deadline != nil {
		if !u.Deadline.IsValid() {
			return tracking.ErrInvalidDateKey
		}
		d := *u.Deadline
		next.Deadline = &d
	}
	*g = next
	return nil
}

// CheckMilestones marks every threshold the goal has reached and returns
// the ones newly reached, ascending. Reaching 100 completes the goal and
// pins current to target. Flags never reset.
func (g *Goal) CheckMilestones(now time.Time) []int {
	progress := g.Progress()
	var reached []int
	for _, m := range MilestoneThresholds {
		if progress >= float64(m) && !g.Milestones.Reached(m) {
			g.Milestones.set(m)
			reached = append(reached, m)
			if m == 100 {
				completed := now.UTC()
				g.CompletedAt = &completed
				g.Current = g.Target
			}
		}
	}
	return reached
}
