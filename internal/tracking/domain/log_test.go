package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogStore_DayLogRegistersDay(t *testing.T) {
	s := NewLogStore()

	day := s.DayLog("2024-01-02")

	assert.NotNil(t, day)
	assert.Contains(t, s.Dates(), DateKey("2024-01-02"))
	_, ok := s.Day("2024-01-02")
	assert.False(t, ok, "empty day counts as no data")
}

func TestLogStore_SetHourLastWriteWins(t *testing.T) {
	s := NewLogStore()

	require.NoError(t, s.SetHour("2024-01-02", 9, LogEntry{Category: CategoryShallow, Note: "email"}))
	require.NoError(t, s.SetHour("2024-01-02", 9, LogEntry{Category: CategoryDeepWork, Note: "design doc"}))

	day, ok := s.Day("2024-01-02")
	require.True(t, ok)
	assert.Len(t, day, 1)
	assert.Equal(t, CategoryDeepWork, day[9].Category)
	assert.Equal(t, "design doc", day[9].Note)
}

func TestLogStore_SetHourValidation(t *testing.T) {
	s := NewLogStore()

	assert.ErrorIs(t, s.SetHour("2024-01-02", 24, LogEntry{Category: CategoryRest}), ErrInvalidHour)
	assert.ErrorIs(t, s.SetHour("2024-01-02", -1, LogEntry{Category: CategoryRest}), ErrInvalidHour)
	assert.ErrorIs(t, s.SetHour("2024-01-02", 3, LogEntry{Category: "NAP"}), ErrInvalidCategory)
	assert.ErrorIs(t, s.SetHour("01/02/2024", 3, LogEntry{Category: CategoryRest}), ErrInvalidDateKey)
	assert.Empty(t, s)
}

func TestLogStore_ClearHour(t *testing.T) {
	s := NewLogStore()
	require.NoError(t, s.SetHour("2024-01-02", 9, LogEntry{Category: CategoryRest}))

	require.NoError(t, s.ClearHour("2024-01-02", 9))
	require.NoError(t, s.ClearHour("2024-01-05", 9))

	_, ok := s.Day("2024-01-02")
	assert.False(t, ok)
	assert.ErrorIs(t, s.ClearHour("2024-01-02", 30), ErrInvalidHour)
}

func TestLogStore_JSONShape(t *testing.T) {
	s := NewLogStore()
	require.NoError(t, s.SetHour("2024-01-02", 9, LogEntry{Category: CategoryDeepWork, Note: "x"}))
	require.NoError(t, s.SetHour("2024-01-02", 10, LogEntry{
		Category: CategoryShallow, TaskID: "t1", TaskPriority: PriorityHigh, TaskTags: []string{"ops"},
	}))

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024-01-02":{
		"9":{"category":"DEEP_WORK","note":"x"},
		"10":{"category":"SHALLOW","note":"","taskId":"t1","taskPriority":"HIGH","taskTags":["ops"]}
	}}`, string(raw))

	var back LogStore
	require.NoError(t, json.Unmarshal(raw, &back))
	again, err := json.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(again))
}

func TestLogStore_Sanitize(t *testing.T) {
	var s LogStore
	require.NoError(t, json.Unmarshal([]byte(`{
		"2024-01-02":{"9":{"category":"DEEP_WORK","note":""},"40":{"category":"REST","note":""},"3":{"category":"NAP","note":""}},
		"garbage":{"1":{"category":"REST","note":""}}
	}`), &s))

	assert.Equal(t, 3, s.Sanitize())
	assert.Equal(t, []DateKey{"2024-01-02"}, s.Dates())
	assert.Equal(t, 1, s.TotalEntries())
}

func TestLogStore_CountsAndClone(t *testing.T) {
	s := NewLogStore()
	require.NoError(t, s.SetHour("2024-01-01", 9, LogEntry{Category: CategoryDeepWork, TaskTags: []string{"a"}}))
	require.NoError(t, s.SetHour("2024-01-02", 9, LogEntry{Category: CategoryDeepWork}))
	require.NoError(t, s.SetHour("2024-01-02", 23, LogEntry{Category: CategorySleep}))

	assert.Equal(t, 2, s.Count(CategoryDeepWork))
	assert.Equal(t, 3, s.TotalEntries())

	c := s.Clone()
	c["2024-01-01"][9].TaskTags[0] = "changed"
	delete(c["2024-01-02"], 23)

	assert.Equal(t, "a", s["2024-01-01"][9].TaskTags[0])
	assert.Equal(t, 3, s.TotalEntries())
	assert.Equal(t, []int{9, 23}, s["2024-01-02"].Hours())
}
