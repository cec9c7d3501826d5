// Package domain defines the badge catalog and the one-way unlock rules.
package domain

import "math"

// Rarity grades a badge.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Group clusters badges for display.
type Group string

const (
	GroupStreak   Group = "streak"
	GroupDeepWork Group = "deepwork"
	GroupTasks    Group = "tasks"
	GroupSpecial  Group = "special"
)

// Metric names the statistic a badge is measured against.
type Metric string

const (
	MetricStreak         Metric = "streak"
	MetricDeepWorkHours  Metric = "deep_work_hours"
	MetricCompletedTasks Metric = "completed_tasks"
	MetricTotalHours     Metric = "total_hours"
	MetricEarlyBird      Metric = "early_bird"
	MetricNightOwl       Metric = "night_owl"
	MetricPerfectWeek    Metric = "perfect_week"
)

// Badge is one catalog entry. A badge unlocks once its metric reaches Target.
// Yes/no metrics report 0 or 1 against a target of 1.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Group       Group  `json:"category"`
	Rarity      Rarity `json:"rarity"`
	Metric      Metric `json:"metric"`
	Target      int    `json:"target"`
}

// Satisfied reports whether stats meet the badge condition.
func (b Badge) Satisfied(stats Stats) bool {
	return stats.Value(b.Metric) >= float64(b.Target)
}

// Progress is round(min(100, value/target*100)).
func (b Badge) Progress(stats Stats) int {
	if b.Target <= 0 {
		return 0
	}
	p := math.Min(100, stats.Value(b.Metric)/float64(b.Target)*100)
	return int(math.Floor(p + 0.5))
}

var catalog = []Badge{
	{ID: "fire_starter", Name: "Fire Starter", Icon: "🔥", Description: "Maintain a 7-day streak", Group: GroupStreak, Rarity: RarityCommon, Metric: MetricStreak, Target: 7},
	{ID: "hot_streak", Name: "Hot Streak", Icon: "🔥🔥", Description: "Maintain a 30-day streak", Group: GroupStreak, Rarity: RarityRare, Metric: MetricStreak, Target: 30},
	{ID: "inferno", Name: "Inferno", Icon: "🔥🔥🔥", Description: "Maintain a 100-day streak", Group: GroupStreak, Rarity: RarityLegendary, Metric: MetricStreak, Target: 100},

	{ID: "focused", Name: "Focused", Icon: "🎯", Description: "Log 10 hours of deep work", Group: GroupDeepWork, Rarity: RarityCommon, Metric: MetricDeepWorkHours, Target: 10},
	{ID: "deep_diver", Name: "Deep Diver", Icon: "🎯🎯", Description: "Log 50 hours of deep work", Group: GroupDeepWork, Rarity: RarityRare, Metric: MetricDeepWorkHours, Target: 50},
	{ID: "flow_master", Name: "Flow Master", Icon: "🎯🎯🎯", Description: "Log 100 hours of deep work", Group: GroupDeepWork, Rarity: RarityLegendary, Metric: MetricDeepWorkHours, Target: 100},

	{ID: "starter", Name: "Starter", Icon: "✅", Description: "Complete 10 tasks", Group: GroupTasks, Rarity: RarityCommon, Metric: MetricCompletedTasks, Target: 10},
	{ID: "achiever", Name: "Achiever", Icon: "✅✅", Description: "Complete 50 tasks", Group: GroupTasks, Rarity: RarityRare, Metric: MetricCompletedTasks, Target: 50},
	{ID: "completionist", Name: "Completionist", Icon: "✅✅✅", Description: "Complete 100 tasks", Group: GroupTasks, Rarity: RarityLegendary, Metric: MetricCompletedTasks, Target: 100},

	{ID: "early_bird", Name: "Early Bird", Icon: "⭐", Description: "Log deep work between 5-7 AM", Group: GroupSpecial, Rarity: RarityRare, Metric: MetricEarlyBird, Target: 1},
	{ID: "night_owl", Name: "Night Owl", Icon: "🌙", Description: "Log deep work between 10 PM-12 AM", Group: GroupSpecial, Rarity: RarityRare, Metric: MetricNightOwl, Target: 1},
	{ID: "perfect_week", Name: "Perfect Week", Icon: "📅", Description: "Log deep work every day for a week", Group: GroupSpecial, Rarity: RarityEpic, Metric: MetricPerfectWeek, Target: 1},
	{ID: "century", Name: "Century", Icon: "💯", Description: "Log 100 total hours tracked", Group: GroupSpecial, Rarity: RarityEpic, Metric: MetricTotalHours, Target: 100},
}

// Catalog returns the fixed badge list in display order.
func Catalog() []Badge {
	return append([]Badge(nil), catalog...)
}

// FindBadge looks a badge up by id.
func FindBadge(id string) (Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
