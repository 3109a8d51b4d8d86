package services

import (
	"fmt"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

// Streak milestones in ascending order. When one tick crosses several, the
// highest one is surfaced to the caller but every crossed milestone is still
// persisted.
var streakMilestones = []int{3, 7}

// AchievementService owns the badge catalog and the award rules. Awards are
// idempotent through the store's (user, key) uniqueness; evaluation is
// best-effort and never fails the triggering activity.
type AchievementService struct {
	context.DefaultService

	sqlSvc *SqlService
}

const ACHIEVEMENT_SVC = "achievement_svc"

func (svc AchievementService) Id() string {
	return ACHIEVEMENT_SVC
}

func (svc *AchievementService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AchievementService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

// ==================== RULES (pure) ====================

// quizAchievementCandidates decides which keys a completed quiz submission
// qualifies for. priorCompleted tells a first-ever completed attempt from a
// re-take: a perfect score on a re-take earns nothing. completedQuizzes is
// the per-course completed quiz count after the upsert.
func quizAchievementCandidates(course string, lectureID, score, total int, completed, priorCompleted bool, completedQuizzes int64) []shared.AchievementKey {
	if !completed {
		return nil
	}

	var keys []shared.AchievementKey
	if !priorCompleted && total > 0 && score == total {
		keys = append(keys, shared.PerfectFirstTryKey(course, lectureID))
	}
	if completedQuizzes >= shared.LectureSlots {
		keys = append(keys, shared.CourseCompleteKey(course))
	}
	return keys
}

// streakAchievementCandidates returns every milestone at or below the
// current streak, highest first so the surfaced award is the biggest one.
func streakAchievementCandidates(currentStreak int) []shared.AchievementKey {
	var keys []shared.AchievementKey
	for i := len(streakMilestones) - 1; i >= 0; i-- {
		if currentStreak >= streakMilestones[i] {
			keys = append(keys, shared.StreakKey(streakMilestones[i]))
		}
	}
	return keys
}

// ==================== SERVICE ====================

// Award persists a single key, reporting whether it is newly held.
func (svc *AchievementService) Award(userID string, key shared.AchievementKey) (bool, error) {
	return svc.sqlSvc.InsertAchievement(userID, key.String())
}

// awardAll persists every candidate and returns the first newly-created one
// for the notification surface. Failures are logged, not propagated: badge
// bookkeeping never blocks the primary write.
func (svc *AchievementService) awardAll(userID string, keys []shared.AchievementKey) *dto.AchievementAwarded {
	var surfaced *dto.AchievementAwarded
	for _, key := range keys {
		created, err := svc.Award(userID, key)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"user_id": userID,
				"key":     key.String(),
			}).Warn("Achievement award dropped")
			continue
		}
		if created {
			RecordAchievementAwarded(string(key.Kind))
			if surfaced == nil {
				surfaced = &dto.AchievementAwarded{Key: key.String(), Title: AchievementTitle(key)}
			}
		}
	}
	return surfaced
}

func (svc *AchievementService) EvaluateQuizCompletion(userID, course string, lectureID, score, total int, completed, priorCompleted bool) *dto.AchievementAwarded {
	completedQuizzes, err := svc.sqlSvc.CountCompletedQuizzes(userID, course)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Quiz achievement check dropped")
		return nil
	}

	keys := quizAchievementCandidates(course, lectureID, score, total, completed, priorCompleted, completedQuizzes)
	return svc.awardAll(userID, keys)
}

func (svc *AchievementService) EvaluateStreak(userID string, currentStreak int) *dto.AchievementAwarded {
	return svc.awardAll(userID, streakAchievementCandidates(currentStreak))
}

// AwardChallenge records the badge for a solved coding challenge.
func (svc *AchievementService) AwardChallenge(userID, challengeID string) *dto.AchievementAwarded {
	return svc.awardAll(userID, []shared.AchievementKey{shared.ChallengeKey(challengeID)})
}

// AwardByKey records a client-reported achievement after validating the raw
// key against the key grammar. Duplicate keys are accepted silently.
func (svc *AchievementService) AwardByKey(userID, rawKey string) (*dto.AchievementAwarded, error) {
	key, err := shared.ParseAchievementKey(rawKey)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Invalid achievement key")
	}

	created, err := svc.Award(userID, key)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}

	RecordAchievementAwarded(string(key.Kind))
	return &dto.AchievementAwarded{Key: key.String(), Title: AchievementTitle(key)}, nil
}

// HasChallenge reports whether the user already solved the given challenge.
func (svc *AchievementService) HasChallenge(userID, challengeID string) (bool, error) {
	return svc.sqlSvc.HasAchievement(userID, shared.ChallengeKey(challengeID).String())
}

// ChallengeKeys returns the challenge IDs the user has solved.
func (svc *AchievementService) ChallengeKeys(userID string) ([]string, error) {
	records, err := svc.sqlSvc.GetAchievements(userID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, r := range records {
		key, err := shared.ParseAchievementKey(r.Key)
		if err != nil || key.Kind != shared.AchievementChallenge {
			continue
		}
		ids = append(ids, key.ChallengeID)
	}
	return ids, nil
}

func (svc *AchievementService) List(userID string) (*dto.AchievementListResponse, error) {
	records, err := svc.sqlSvc.GetAchievements(userID)
	if err != nil {
		return nil, err
	}

	achievements := make([]dto.AchievementResponse, 0, len(records))
	for _, r := range records {
		title := r.Key
		if key, err := shared.ParseAchievementKey(r.Key); err == nil {
			title = AchievementTitle(key)
		}
		achievements = append(achievements, dto.AchievementResponse{
			Key:       r.Key,
			Title:     title,
			CreatedAt: r.CreatedAt,
		})
	}

	return &dto.AchievementListResponse{Achievements: achievements}, nil
}

// ==================== CATALOG ====================

// AchievementTitle renders the human-readable title for the notification
// surface. Pure lookup, no logic beyond formatting.
func AchievementTitle(key shared.AchievementKey) string {
	switch key.Kind {
	case shared.AchievementPerfectFirstTry:
		return fmt.Sprintf("Perfect First Try · %s Lecture %d", key.Course, key.LectureID)
	case shared.AchievementCourseComplete:
		return fmt.Sprintf("Course Complete · %s", key.Course)
	case shared.AchievementStreak:
		return fmt.Sprintf("%d-Day Streak", key.Days)
	case shared.AchievementChallenge:
		if ch, ok := challengeCatalog[key.ChallengeID]; ok {
			return fmt.Sprintf("Challenge Solved · %s", ch.Title)
		}
		return fmt.Sprintf("Challenge Solved · %s", key.ChallengeID)
	}
	return key.String()
}
