package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/pytron/internal/shared/domain"
)

const aggregateType = "Badge"

// RoutingBadgeUnlocked is the routing key of BadgeUnlocked.
const RoutingBadgeUnlocked = "badges.badge.unlocked"

// BadgeUnlocked is emitted once per badge, when it unlocks.
type BadgeUnlocked struct {
	sharedDomain.BaseEvent
	BadgeID     string `json:"badgeId"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
}

// NewBadgeUnlocked creates a BadgeUnlocked event.
func NewBadgeUnlocked(b Badge, at time.Time) *BadgeUnlocked {
	return &BadgeUnlocked{
		BaseEvent:   sharedDomain.NewBaseEvent(b.ID, aggregateType, RoutingBadgeUnlocked, at),
		BadgeID:     b.ID,
		Name:        b.Name,
		Icon:        b.Icon,
		Description: b.Description,
		Rarity:      b.Rarity,
	}
}
