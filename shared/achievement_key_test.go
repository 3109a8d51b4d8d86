package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementKey_String(t *testing.T) {
	assert.Equal(t, "perfect_first_try:HTML:3", PerfectFirstTryKey(CourseHTML, 3).String())
	assert.Equal(t, "course_complete:C++", CourseCompleteKey(CourseCpp).String())
	assert.Equal(t, "streak:7", StreakKey(7).String())
	assert.Equal(t, "challenge:py-hello", ChallengeKey("py-hello").String())
}

func TestParseAchievementKey_RoundTrip(t *testing.T) {
	keys := []AchievementKey{
		PerfectFirstTryKey(CoursePython, 6),
		CourseCompleteKey(CourseHTML),
		StreakKey(3),
		ChallengeKey("cpp-loop"),
	}

	for _, key := range keys {
		parsed, err := ParseAchievementKey(key.String())
		require.NoError(t, err, key.String())
		assert.Equal(t, key, parsed)
	}
}

func TestParseAchievementKey_Invalid(t *testing.T) {
	cases := []string{
		"",
		"streak",
		"streak:zero",
		"streak:0",
		"streak:-1",
		"streak:3:7",
		"perfect_first_try:HTML",
		"perfect_first_try:HTML:0",
		"perfect_first_try:HTML:7",
		"perfect_first_try:Rust:1",
		"course_complete:Rust",
		"course_complete:HTML:extra",
		"challenge:",
		"challenge:a:b",
		"badge:whatever",
	}

	for _, raw := range cases {
		_, err := ParseAchievementKey(raw)
		assert.Errorf(t, err, "expected %q to be rejected", raw)
	}
}
