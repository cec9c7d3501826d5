package domain

// UnlockedSet is the ordered list of unlocked badge ids. It only grows.
type UnlockedSet []string

// Has reports whether id is unlocked.
func (s UnlockedSet) Has(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Add unlocks id and reports whether it was newly added.
func (s *UnlockedSet) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	*s = append(*s, id)
	return true
}

// Evaluate unlocks every still-locked badge whose condition holds and
// returns the newly unlocked badges in catalog order. Unlocked badges are
// never re-checked, so a condition turning false later has no effect.
func Evaluate(set *UnlockedSet, stats Stats) []Badge {
	var unlocked []Badge
	for _, b := range catalog {
		if set.Has(b.ID) {
			continue
		}
		if b.Satisfied(stats) {
			set.Add(b.ID)
			unlocked = append(unlocked, b)
		}
	}
	return unlocked
}

// View is a badge with its state for display.
type View struct {
	Badge
	Unlocked bool `json:"unlocked"`
	Progress int  `json:"progress"`
}

// Views lists the catalog with unlock flags and progress. Unlocked badges
// always show 100.
func Views(set UnlockedSet, stats Stats) []View {
	views := make([]View, 0, len(catalog))
	for _, b := range catalog {
		v := View{Badge: b, Unlocked: set.Has(b.ID)}
		if v.Unlocked {
			v.Progress = 100
		} else {
			v.Progress = b.Progress(stats)
		}
		views = append(views, v)
	}
	return views
}
