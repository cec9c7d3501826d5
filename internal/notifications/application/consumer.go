package application

import (
	"context"
	"errors"
	"fmt"

	badges "github.com/felixgeelhaar/pytron/internal/badges/domain"
	goals "github.com/felixgeelhaar/pytron/internal/goals/domain"
	"github.com/felixgeelhaar/pytron/internal/notifications/domain"
	pomodoro "github.com/felixgeelhaar/pytron/internal/pomodoro/domain"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
)

// Sender is what the consumer delivers through.
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// EventConsumer turns achievement and timer events into notifications.
type EventConsumer struct {
	sender Sender
}

// NewEventConsumer creates the consumer.
func NewEventConsumer(sender Sender) *EventConsumer {
	return &EventConsumer{sender: sender}
}

func (c *EventConsumer) EventTypes() []string {
	return []string{
		badges.RoutingBadgeUnlocked,
		goals.RoutingMilestoneReached,
		goals.RoutingGoalCompleted,
		pomodoro.RoutingSessionCompleted,
		pomodoro.RoutingBreakCompleted,
	}
}

// Handle sends the notification for the event. A disabled switch or quiet
// hours are not failures.
func (c *EventConsumer) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	n, ok, err := notificationFor(event)
	if err != nil || !ok {
		return err
	}
	err = c.sender.Send(ctx, n)
	if errors.Is(err, domain.ErrDisabled) || errors.Is(err, domain.ErrQuietHours) {
		return nil
	}
	return err
}

func notificationFor(event *eventbus.ConsumedEvent) (domain.Notification, bool, error) {
	switch event.RoutingKey {
	case badges.RoutingBadgeUnlocked:
		var e badges.BadgeUnlocked
		if err := event.Decode(&e); err != nil {
			return domain.Notification{}, false, err
		}
		return domain.Notification{
			Kind:  domain.KindBadge,
			Title: "Badge Unlocked!",
			Body:  fmt.Sprintf("%s %s: %s", e.Icon, e.Name, e.Description),
			Tag:   "badge-" + e.BadgeID,
		}, true, nil

	case goals.RoutingMilestoneReached:
		var e goals.MilestoneReached
		if err := event.Decode(&e); err != nil {
			return domain.Notification{}, false, err
		}
		// The completed event covers the last milestone.
		if e.Milestone >= 100 {
			return domain.Notification{}, false, nil
		}
		return domain.Notification{
			Kind:  domain.KindGoal,
			Title: "Goal Milestone",
			Body:  fmt.Sprintf("%q is %d%% complete", e.Title, e.Milestone),
			Tag:   fmt.Sprintf("goal-%s-%d", e.GoalID, e.Milestone),
		}, true, nil

	case goals.RoutingGoalCompleted:
		var e goals.GoalCompleted
		if err := event.Decode(&e); err != nil {
			return domain.Notification{}, false, err
		}
		return domain.Notification{
			Kind:  domain.KindGoal,
			Title: "Goal Completed!",
			Body:  fmt.Sprintf("%q reached its target", e.Title),
			Tag:   "goal-" + e.GoalID,
		}, true, nil

	case pomodoro.RoutingSessionCompleted:
		var e pomodoro.SessionCompleted
		if err := event.Decode(&e); err != nil {
			return domain.Notification{}, false, err
		}
		next := "short break"
		if e.LongBreak {
			next = "long break"
		}
		return domain.Notification{
			Kind:  domain.KindPomodoro,
			Title: "Pomodoro Complete",
			Body:  fmt.Sprintf("Session %d done. Time for a %s!", e.Session, next),
			Tag:   "pomodoro",
		}, true, nil

	case pomodoro.RoutingBreakCompleted:
		return domain.Notification{
			Kind:  domain.KindPomodoro,
			Title: "Break Over",
			Body:  "Ready for the next focus session?",
			Tag:   "pomodoro",
		}, true, nil
	}
	return domain.Notification{}, false, nil
}
