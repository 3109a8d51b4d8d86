package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codelab-edu/codelab_api/model"
)

func TestNewStreakResponse(t *testing.T) {
	last := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)
	resp := NewStreakResponse(&model.StreakState{
		CurrentStreak:    3,
		LongestStreak:    5,
		TotalDaysActive:  12,
		LastActivityDate: &last,
	})

	assert.Equal(t, 3, resp.CurrentStreak)
	assert.Equal(t, 5, resp.LongestStreak)
	assert.Equal(t, 12, resp.TotalDaysActive)
	assert.Equal(t, "2026-03-10", resp.LastActivityDate)
}

func TestNewStreakResponse_NoActivityYet(t *testing.T) {
	resp := NewStreakResponse(&model.StreakState{})
	assert.Empty(t, resp.LastActivityDate)
}
