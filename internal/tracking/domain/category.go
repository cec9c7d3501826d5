package domain

import (
	"errors"
	"strings"
)

// ErrInvalidCategory is returned for category names outside the closed set.
var ErrInvalidCategory = errors.New("invalid category")

// Category classifies how an hour was spent.
type Category string

const (
	CategoryDeepWork    Category = "DEEP_WORK"
	CategoryShallow     Category = "SHALLOW"
	CategoryDistraction Category = "DISTRACTION"
	CategoryRest        Category = "REST"
	CategorySleep       Category = "SLEEP"
	CategoryExercise    Category = "EXERCISE"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryDeepWork,
		CategoryShallow,
		CategoryDistraction,
		CategoryRest,
		CategorySleep,
		CategoryExercise,
	}
}

// ParseCategory accepts the canonical name in any case, with '-' or ' '
// in place of '_'.
func ParseCategory(s string) (Category, error) {
	normalized := strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s)))
	c := Category(normalized)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// IsValid checks if the category is one of the known values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDeepWork, CategoryShallow, CategoryDistraction, CategoryRest, CategorySleep, CategoryExercise:
		return true
	default:
		return false
	}
}

// Points is the efficiency score contribution of one hour.
func (c Category) Points() int {
	switch c {
	case CategoryDeepWork:
		return 100
	case CategoryShallow, CategoryExercise:
		return 50
	case CategoryDistraction:
		return -50
	case CategoryRest, CategorySleep:
		return 0
	default:
		return 0
	}
}

// CountsTowardEfficiency reports whether the hour is part of the daily
// efficiency denominator. Sleep is excluded.
func (c Category) CountsTowardEfficiency() bool {
	switch c {
	case CategorySleep:
		return false
	case CategoryDeepWork, CategoryShallow, CategoryDistraction, CategoryRest, CategoryExercise:
		return true
	default:
		return false
	}
}

// Label is the human-readable name.
func (c Category) Label() string {
	switch c {
	case CategoryDeepWork:
		return "Deep Work"
	case CategoryShallow:
		return "Shallow Work"
	case CategoryDistraction:
		return "Distraction"
	case CategoryRest:
		return "Rest"
	case CategorySleep:
		return "Sleep"
	case CategoryExercise:
		return "Exercise"
	default:
		return string(c)
	}
}

func (c Category) String() string {
	return string(c)
}
