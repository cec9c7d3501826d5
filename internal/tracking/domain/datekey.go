package domain

import (
	"errors"
	"time"
)

// ErrInvalidDateKey is returned for strings that are not YYYY-MM-DD dates.
var ErrInvalidDateKey = errors.New("invalid date key")

const dateKeyLayout = "2006-01-02"

// DateKey is a local-calendar YYYY-MM-DD day bucket.
type DateKey string

// DateKeyOf returns the calendar date of t in t's own location. Callers pass
// a time already converted to the user's zone; the time of day never
// affects the result.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// ParseDateKey validates s.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return "", ErrInvalidDateKey
	}
	return DateKey(t.Format(dateKeyLayout)), nil
}

// civil returns the date at UTC midnight. Calendar arithmetic is done in UTC
// so that DST transitions in the user's zone cannot skip or repeat a day.
func (k DateKey) civil() time.Time {
	t, err := time.Parse(dateKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsValid reports whether k is a well-formed date.
func (k DateKey) IsValid() bool {
	_, err := time.Parse(dateKeyLayout, string(k))
	return err == nil
}

// AddDays returns the key n days later (earlier for negative n).
func (k DateKey) AddDays(n int) DateKey {
	return DateKeyOf(k.civil().AddDate(0, 0, n))
}

// Weekday returns the day of the week.
func (k DateKey) Weekday() time.Weekday {
	return k.civil().Weekday()
}

// WeekdayIndex maps the day to Monday=0 … Sunday=6.
func (k DateKey) WeekdayIndex() int {
	return MondayIndex(k.Weekday())
}

// Label is the short "Jan 2" form used on charts.
func (k DateKey) Label() string {
	return k.civil().Format("Jan 2")
}

// In returns the start of the day in loc.
func (k DateKey) In(loc *time.Location) time.Time {
	c := k.civil()
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, loc)
}

func (k DateKey) String() string {
	return string(k)
}

// MondayIndex shifts Sunday from slot 0 to slot 6.
func MondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// DateRange returns days consecutive keys ending at now's date, oldest first.
func DateRange(now time.Time, days int) []DateKey {
	if days <= 0 {
		return nil
	}
	today := DateKeyOf(now)
	keys := make([]DateKey, days)
	for i := 0; i < days; i++ {
		keys[i] = today.AddDays(i - days + 1)
	}
	return keys
}
