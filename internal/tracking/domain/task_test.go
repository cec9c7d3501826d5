package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskList_Add(t *testing.T) {
	var l TaskList

	task, err := l.Add("id-1", "  Write report ", TaskMeta{DueTime: "14:30", Priority: PriorityHigh, Duration: "45", Tag: "work"})

	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Text)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, []string{"work"}, task.Tags())
	assert.Len(t, l, 1)
}

func TestTaskList_AddValidation(t *testing.T) {
	var l TaskList

	_, err := l.Add("1", "   ", TaskMeta{})
	assert.ErrorIs(t, err, ErrEmptyTaskText)
	_, err = l.Add("1", "x", TaskMeta{DueTime: "25:00"})
	assert.ErrorIs(t, err, ErrInvalidDueTime)
	_, err = l.Add("1", "x", TaskMeta{Priority: "URGENT"})
	assert.ErrorIs(t, err, ErrInvalidPriority)
	_, err = l.Add("1", "x", TaskMeta{Duration: "1h"})
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Empty(t, l)
}

func TestTaskList_Toggle(t *testing.T) {
	var l TaskList
	_, _ = l.Add("a", "A", TaskMeta{})

	done, err := l.Toggle("a", "2024-05-01")
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, DateKey("2024-05-01"), *done.CompletedAt)
	assert.Equal(t, 1, l.CompletedOn("2024-05-01"))

	reopened, err := l.Toggle("a", "2024-05-02")
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)

	_, err = l.Toggle("missing", "2024-05-02")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskList_DeleteAndSorted(t *testing.T) {
	var l TaskList
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := l.Add(id, "task "+id, TaskMeta{})
		require.NoError(t, err)
	}
	_, _ = l.Toggle("a", "2024-05-01")
	_, _ = l.Toggle("c", "2024-05-01")

	ids := func(tasks []Task) []string {
		out := []string{}
		for _, t := range tasks {
			out = append(out, t.ID)
		}
		return out
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(l.Sorted()))
	assert.Equal(t, 2, l.CompletedCount())

	require.NoError(t, l.Delete("b"))
	assert.ErrorIs(t, l.Delete("b"), ErrTaskNotFound)
	assert.Equal(t, []string{"a", "c", "d"}, ids(l))
}

func TestTaskList_JSONShape(t *testing.T) {
	var l TaskList
	_, _ = l.Add("01H", "Plan", TaskMeta{Priority: PriorityLow})

	raw, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"01H","text":"Plan","completed":false,"completedAt":null,"dueTime":"","priority":"LOW","duration":"","tag":""}]`, string(raw))
}

func TestTaskList_CloneIsDeep(t *testing.T) {
	var l TaskList
	_, _ = l.Add("a", "A", TaskMeta{})
	_, _ = l.Toggle("a", "2024-01-01")

	c := l.Clone()
	*c[0].CompletedAt = "2030-01-01"
	c[0].Text = "changed"

	assert.Equal(t, DateKey("2024-01-01"), *l[0].CompletedAt)
	assert.Equal(t, "A", l[0].Text)
}

func TestULIDGenerator_UniqueUnderSameInstant(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	gen := ULIDGenerator{Now: func() time.Time { return fixed }}

	seen := map[string]bool{}
	prev := ""
	for i := 0; i < 1000; i++ {
		id := gen.NewID()
		require.False(t, seen[id], fmt.Sprintf("duplicate id %s", id))
		require.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}

func TestSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 8, s.TargetHours)
	assert.Equal(t, 80, s.StreakThreshold)
	assert.InDelta(t, 6.4, s.RequiredHours(), 1e-9)
	assert.NoError(t, s.Validate())

	s.TargetHours = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidTargetHours)
	s.TargetHours = 4
	s.StreakThreshold = 101
	assert.ErrorIs(t, s.Validate(), ErrInvalidStreakThreshold)
}
