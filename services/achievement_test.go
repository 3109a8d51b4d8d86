package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-edu/codelab_api/shared"
)

func TestQuizAchievementCandidates_IncompleteEarnsNothing(t *testing.T) {
	keys := quizAchievementCandidates(shared.CourseHTML, 1, 5, 5, false, false, 6)
	assert.Empty(t, keys)
}

func TestQuizAchievementCandidates_PerfectFirstTry(t *testing.T) {
	keys := quizAchievementCandidates(shared.CourseHTML, 2, 5, 5, true, false, 2)

	require.Len(t, keys, 1)
	assert.Equal(t, shared.PerfectFirstTryKey(shared.CourseHTML, 2), keys[0])
}

func TestQuizAchievementCandidates_PerfectRetakeEarnsNothing(t *testing.T) {
	keys := quizAchievementCandidates(shared.CourseHTML, 2, 5, 5, true, true, 2)
	assert.Empty(t, keys, "a perfect score on a re-take is not a first try")
}

func TestQuizAchievementCandidates_ImperfectScore(t *testing.T) {
	keys := quizAchievementCandidates(shared.CoursePython, 3, 4, 5, true, false, 3)
	assert.Empty(t, keys)
}

func TestQuizAchievementCandidates_ZeroTotalNeverPerfect(t *testing.T) {
	keys := quizAchievementCandidates(shared.CoursePython, 3, 0, 0, true, false, 3)
	assert.Empty(t, keys, "0/0 must not read as a perfect score")
}

func TestQuizAchievementCandidates_CourseComplete(t *testing.T) {
	keys := quizAchievementCandidates(shared.CourseCpp, 6, 3, 5, true, true, 6)

	require.Len(t, keys, 1)
	assert.Equal(t, shared.CourseCompleteKey(shared.CourseCpp), keys[0])
}

func TestQuizAchievementCandidates_PerfectAndCourseComplete(t *testing.T) {
	keys := quizAchievementCandidates(shared.CourseCpp, 6, 5, 5, true, false, 6)

	require.Len(t, keys, 2)
	assert.Equal(t, shared.PerfectFirstTryKey(shared.CourseCpp, 6), keys[0])
	assert.Equal(t, shared.CourseCompleteKey(shared.CourseCpp), keys[1])
}

func TestStreakAchievementCandidates(t *testing.T) {
	assert.Empty(t, streakAchievementCandidates(0))
	assert.Empty(t, streakAchievementCandidates(2))

	three := streakAchievementCandidates(3)
	require.Len(t, three, 1)
	assert.Equal(t, shared.StreakKey(3), three[0])

	assert.Len(t, streakAchievementCandidates(5), 1)

	seven := streakAchievementCandidates(7)
	require.Len(t, seven, 2)
	assert.Equal(t, shared.StreakKey(7), seven[0], "the biggest milestone is surfaced first")
	assert.Equal(t, shared.StreakKey(3), seven[1])
}

func TestAchievementTitle(t *testing.T) {
	assert.Equal(t, "Perfect First Try · HTML Lecture 3",
		AchievementTitle(shared.PerfectFirstTryKey(shared.CourseHTML, 3)))
	assert.Equal(t, "Course Complete · Python",
		AchievementTitle(shared.CourseCompleteKey(shared.CoursePython)))
	assert.Equal(t, "7-Day Streak",
		AchievementTitle(shared.StreakKey(7)))
	assert.Equal(t, "Challenge Solved · Python: Print a Greeting",
		AchievementTitle(shared.ChallengeKey("py-hello")))
	assert.Equal(t, "Challenge Solved · no-such-challenge",
		AchievementTitle(shared.ChallengeKey("no-such-challenge")))
}
