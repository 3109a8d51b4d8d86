package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-edu/codelab_api/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestApplyStreakTick_FirstActivity(t *testing.T) {
	next, changed := applyStreakTick(model.StreakState{}, day(2026, time.March, 10))

	assert.True(t, changed)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 1, next.LongestStreak)
	assert.Equal(t, 1, next.TotalDaysActive)
	require.NotNil(t, next.LastActivityDate)
	assert.Equal(t, day(2026, time.March, 10), *next.LastActivityDate)
}

func TestApplyStreakTick_SameDayIsNoop(t *testing.T) {
	last := day(2026, time.March, 10)
	state := model.StreakState{
		CurrentStreak:    4,
		LongestStreak:    4,
		TotalDaysActive:  9,
		LastActivityDate: &last,
	}

	// Later the same day, not midnight.
	next, changed := applyStreakTick(state, last.Add(17*time.Hour))

	assert.False(t, changed)
	assert.Equal(t, state, next)
}

func TestApplyStreakTick_ConsecutiveDayExtends(t *testing.T) {
	last := day(2026, time.March, 10)
	state := model.StreakState{
		CurrentStreak:    4,
		LongestStreak:    6,
		TotalDaysActive:  9,
		LastActivityDate: &last,
	}

	next, changed := applyStreakTick(state, day(2026, time.March, 11))

	assert.True(t, changed)
	assert.Equal(t, 5, next.CurrentStreak)
	assert.Equal(t, 6, next.LongestStreak, "longest stays until the current streak passes it")
	assert.Equal(t, 10, next.TotalDaysActive)
	assert.Equal(t, day(2026, time.March, 11), *next.LastActivityDate)
}

func TestApplyStreakTick_GapResetsButKeepsTotals(t *testing.T) {
	last := day(2026, time.March, 10)
	state := model.StreakState{
		CurrentStreak:    7,
		LongestStreak:    7,
		TotalDaysActive:  20,
		LastActivityDate: &last,
	}

	next, changed := applyStreakTick(state, day(2026, time.March, 14))

	assert.True(t, changed)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 7, next.LongestStreak, "the record survives the reset")
	assert.Equal(t, 21, next.TotalDaysActive)
}

func TestApplyStreakTick_NewRecordUpdatesLongest(t *testing.T) {
	last := day(2026, time.March, 10)
	state := model.StreakState{
		CurrentStreak:    6,
		LongestStreak:    6,
		TotalDaysActive:  6,
		LastActivityDate: &last,
	}

	next, _ := applyStreakTick(state, day(2026, time.March, 11))

	assert.Equal(t, 7, next.CurrentStreak)
	assert.Equal(t, 7, next.LongestStreak)
}

func TestApplyStreakTick_WeekLongRun(t *testing.T) {
	state := model.StreakState{}
	for i := 0; i < 7; i++ {
		var changed bool
		state, changed = applyStreakTick(state, day(2026, time.March, 1+i))
		assert.True(t, changed)
	}

	assert.Equal(t, 7, state.CurrentStreak)
	assert.Equal(t, 7, state.LongestStreak)
	assert.Equal(t, 7, state.TotalDaysActive)
}
