package shared

import (
	"fmt"
	"strconv"
	"strings"
)

// Achievement keys are stored as opaque strings ("streak:7",
// "perfect_first_try:HTML:3"). AchievementKey is the parsed form used
// everywhere above the storage boundary.

type AchievementKind string

const (
	AchievementPerfectFirstTry AchievementKind = "perfect_first_try"
	AchievementCourseComplete  AchievementKind = "course_complete"
	AchievementStreak          AchievementKind = "streak"
	AchievementChallenge       AchievementKind = "challenge"
)

type AchievementKey struct {
	Kind        AchievementKind
	Course      string // perfect_first_try, course_complete
	LectureID   int    // perfect_first_try
	Days        int    // streak
	ChallengeID string // challenge
}

func (k AchievementKey) String() string {
	switch k.Kind {
	case AchievementPerfectFirstTry:
		return fmt.Sprintf("%s:%s:%d", AchievementPerfectFirstTry, k.Course, k.LectureID)
	case AchievementCourseComplete:
		return fmt.Sprintf("%s:%s", AchievementCourseComplete, k.Course)
	case AchievementStreak:
		return fmt.Sprintf("%s:%d", AchievementStreak, k.Days)
	case AchievementChallenge:
		return fmt.Sprintf("%s:%s", AchievementChallenge, k.ChallengeID)
	}
	return ""
}

func PerfectFirstTryKey(course string, lectureID int) AchievementKey {
	return AchievementKey{Kind: AchievementPerfectFirstTry, Course: course, LectureID: lectureID}
}

func CourseCompleteKey(course string) AchievementKey {
	return AchievementKey{Kind: AchievementCourseComplete, Course: course}
}

func StreakKey(days int) AchievementKey {
	return AchievementKey{Kind: AchievementStreak, Days: days}
}

func ChallengeKey(challengeID string) AchievementKey {
	return AchievementKey{Kind: AchievementChallenge, ChallengeID: challengeID}
}

func ParseAchievementKey(s string) (AchievementKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return AchievementKey{}, fmt.Errorf("malformed achievement key %q", s)
	}

	switch AchievementKind(parts[0]) {
	case AchievementPerfectFirstTry:
		if len(parts) != 3 {
			return AchievementKey{}, fmt.Errorf("malformed achievement key %q", s)
		}
		lectureID, err := strconv.Atoi(parts[2])
		if err != nil || !IsValidCourse(parts[1]) || !IsValidLectureID(lectureID) {
			return AchievementKey{}, fmt.Errorf("malformed achievement key %q", s)
		}
		return PerfectFirstTryKey(parts[1], lectureID), nil

	case AchievementCourseComplete:
		if len(parts) != 2 || !IsValidCourse(parts[1]) {
			return AchievementKey{}, fmt.Errorf("malformed achievement key %q", s)
		}
		return CourseCompleteKey(parts[1]), nil

	case AchievementStreak:
		days, err := strconv.Atoi(parts[1])
		if len(parts) != 2 || err != nil || days <= 0 {
			return AchievementKey{}, fmt.Errorf("malformed achievement key %q", s)
		}
		return StreakKey(days), nil

	case AchievementChallenge:
		if len(parts) != 2 || parts[1] == "" {
			return AchievementKey{}, fmt.Errorf("malformed achievement key %q", s)
		}
		return ChallengeKey(parts[1]), nil
	}

	return AchievementKey{}, fmt.Errorf("unknown achievement kind in key %q", s)
}
