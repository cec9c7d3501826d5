package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/pytron/internal/shared/domain"
)

const aggregateType = "Goal"

// Routing keys for goal events.
const (
	RoutingMilestoneReached = "goals.goal.milestone_reached"
	RoutingGoalCompleted    = "goals.goal.completed"
)

// MilestoneReached is emitted once per goal and threshold.
type MilestoneReached struct {
	sharedDomain.BaseEvent
	GoalID    string `json:"goal_id"`
	Title     string `json:"title"`
	Milestone int    `json:"milestone"`
}

// NewMilestoneReached creates a MilestoneReached event.
func NewMilestoneReached(g *Goal, milestone int, at time.Time) *MilestoneReached {
	return &MilestoneReached{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID, aggregateType, RoutingMilestoneReached, at),
		GoalID:    g.ID,
		Title:     g.Title,
		Milestone: milestone,
	}
}

// GoalCompleted is emitted when a goal reaches 100%.
type GoalCompleted struct {
	sharedDomain.BaseEvent
	GoalID string  `json:"goal_id"`
	Title  string  `json:"title"`
	Target float64 `json:"target"`
}

// NewGoalCompleted creates a GoalCompleted event.
func NewGoalCompleted(g *Goal, at time.Time) *GoalCompleted {
	return &GoalCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(g.ID, aggregateType, RoutingGoalCompleted, at),
		GoalID:    g.ID,
		Title:     g.Title,
		Target:    g.Target,
	}
}

// MilestoneEvents builds the events for a set of newly reached thresholds.
func MilestoneEvents(g *Goal, reached []int, at time.Time) []sharedDomain.DomainEvent {
	events := make([]sharedDomain.DomainEvent, 0, len(reached)+1)
	for _, m := range reached {
		events = append(events, NewMilestoneReached(g, m, at))
		if m == 100 {
			events = append(events, NewGoalCompleted(g, at))
		}
	}
	return events
}
