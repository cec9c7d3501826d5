package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKeyOf_UsesLocalCalendar(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	la := time.FixedZone("PDT", -7*3600)

	// 23:30 local in Los Angeles is already the next UTC day.
	late := time.Date(2024, 3, 9, 23, 30, 0, 0, la)
	assert.Equal(t, DateKey("2024-03-09"), DateKeyOf(late))

	// 00:15 local in Tokyo is still the previous UTC day.
	early := time.Date(2024, 3, 10, 0, 15, 0, 0, tokyo)
	assert.Equal(t, DateKey("2024-03-10"), DateKeyOf(early))
}

func TestParseDateKey(t *testing.T) {
	k, err := ParseDateKey("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2024-02-29"), k)

	_, err = ParseDateKey("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDateKey)
	_, err = ParseDateKey("yesterday")
	assert.ErrorIs(t, err, ErrInvalidDateKey)
}

func TestDateKey_Arithmetic(t *testing.T) {
	k := DateKey("2024-03-01")

	assert.Equal(t, DateKey("2024-02-29"), k.AddDays(-1))
	assert.Equal(t, DateKey("2024-03-31"), k.AddDays(30))
	assert.Equal(t, time.Friday, k.Weekday())
	assert.Equal(t, 4, k.WeekdayIndex())
	assert.Equal(t, 6, DateKey("2024-03-03").WeekdayIndex(), "Sunday is slot 6")
	assert.Equal(t, 0, DateKey("2024-03-04").WeekdayIndex(), "Monday is slot 0")
	assert.Equal(t, "Mar 1", k.Label())
}

func TestDateKey_AddDaysAcrossDST(t *testing.T) {
	// US DST started on 2024-03-10.
	assert.Equal(t, DateKey("2024-03-11"), DateKey("2024-03-10").AddDays(1))
	assert.Equal(t, DateKey("2024-03-09"), DateKey("2024-03-10").AddDays(-1))
}

func TestDateRange(t *testing.T) {
	now := time.Date(2024, 3, 3, 18, 0, 0, 0, time.UTC)

	keys := DateRange(now, 7)

	require.Len(t, keys, 7)
	assert.Equal(t, DateKey("2024-02-26"), keys[0])
	assert.Equal(t, DateKey("2024-03-03"), keys[6])
	assert.Nil(t, DateRange(now, 0))
}

func TestDateKey_In(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	start := DateKey("2024-05-06").In(loc)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 6, start.Day())
	assert.Equal(t, loc, start.Location())
}
