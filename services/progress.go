package services

import (
	"context"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

// ProgressService is the progress ledger: one upsert per activity event,
// then derived metrics, streak tick and badge evaluation. Only the record
// write itself can fail the request; everything downstream is best-effort.
type ProgressService struct {
	appContext.DefaultService

	sqlSvc         *SqlService
	redisSvc       *RedisService
	streakSvc      *StreakService
	achievementSvc *AchievementService
}

const PROGRESS_SVC = "progress_svc"

const summaryCacheTTL = 5 * time.Minute

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.streakSvc = svc.Service(STREAK_SVC).(*StreakService)
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	return nil
}

// UpsertProgress records one activity event: lecture marked complete or quiz
// submitted. Last write wins on the (user, course, lecture, type) tuple.
func (svc *ProgressService) UpsertProgress(userID string, req dto.UpsertProgressRequest) (*dto.UpsertProgressResponse, error) {
	record := &model.ProgressRecord{
		UserID:    userID,
		Course:    req.Course,
		LectureID: req.LectureID,
		Type:      req.Type,
		Completed: req.Completed,
		Score:     req.Score,
	}
	if req.Type == shared.RecordTypeQuiz {
		record.Total = req.Total
	}

	saved, priorCompleted, err := svc.sqlSvc.UpsertProgressRecord(record)
	if err != nil {
		return nil, err
	}
	RecordProgressUpdate(req.Course, req.Type)

	// Everything past this point is enrichment and must not undo the write.
	var awarded *dto.AchievementAwarded

	if req.Type == shared.RecordTypeQuiz && req.Completed {
		awarded = svc.achievementSvc.EvaluateQuizCompletion(
			userID, req.Course, req.LectureID, req.Score, req.Total, req.Completed, priorCompleted)
	}

	if req.Completed {
		if state := svc.streakSvc.TickBestEffort(userID); state != nil {
			streakAward := svc.achievementSvc.EvaluateStreak(userID, state.CurrentStreak)
			if awarded == nil {
				awarded = streakAward
			}
		}
	}

	svc.invalidateSummary(userID)

	records, err := svc.sqlSvc.GetProgressRecords(userID)
	if err != nil {
		return nil, err
	}

	return &dto.UpsertProgressResponse{
		Message:            "Progress updated successfully",
		Progress:           mapProgressRecord(saved),
		AchievementAwarded: awarded,
		Summary:            BuildProgressSummary(records),
	}, nil
}

// GetProgress returns the raw ledger plus the derived summary the client
// mirrors locally. The summary is served from the snapshot cache when warm.
func (svc *ProgressService) GetProgress(userID string) (*dto.ProgressListResponse, error) {
	records, err := svc.sqlSvc.GetProgressRecords(userID)
	if err != nil {
		return nil, err
	}

	summary, fromCache := svc.cachedSummary(userID)
	if !fromCache {
		summary = BuildProgressSummary(records)
		svc.cacheSummary(userID, summary)
	}

	responses := make([]dto.ProgressRecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, mapProgressRecord(&records[i]))
	}

	return &dto.ProgressListResponse{
		Progress: responses,
		Summary:  summary,
	}, nil
}

func (svc *ProgressService) GetCourseProgress(userID, course string) (*dto.CourseProgress, error) {
	if !shared.IsValidCourse(course) {
		return nil, shared.NewBadRequestError(nil, fmt.Sprintf("Unknown course: %s", course))
	}

	records, err := svc.sqlSvc.GetProgressRecords(userID)
	if err != nil {
		return nil, err
	}

	progress := CalculateCourseProgress(records, course)
	return &progress, nil
}

// ==================== SNAPSHOT CACHE ====================

// The snapshot cache keeps the derived per-course view hot for dashboard
// loads. It is never authoritative: every upsert drops it and the next read
// recomputes from the ledger.

func summaryCacheKey(userID string) string {
	return fmt.Sprintf("progress:summary:%s", userID)
}

func (svc *ProgressService) cachedSummary(userID string) (dto.ProgressSummaryResponse, bool) {
	var summary dto.ProgressSummaryResponse
	ctx := context.Background()

	value, err := svc.redisSvc.Get(ctx, summaryCacheKey(userID))
	if err != nil || value == "" {
		return summary, false
	}
	if err := svc.redisSvc.UnmarshalJSON(value, &summary); err != nil {
		return summary, false
	}
	return summary, true
}

func (svc *ProgressService) cacheSummary(userID string, summary dto.ProgressSummaryResponse) {
	ctx := context.Background()
	if err := svc.redisSvc.Set(ctx, summaryCacheKey(userID), summary, summaryCacheTTL); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Progress summary cache write skipped")
	}
}

func (svc *ProgressService) invalidateSummary(userID string) {
	ctx := context.Background()
	if err := svc.redisSvc.Delete(ctx, summaryCacheKey(userID)); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Progress summary cache invalidation skipped")
	}
}

func mapProgressRecord(r *model.ProgressRecord) dto.ProgressRecordResponse {
	return dto.ProgressRecordResponse{
		Course:      r.Course,
		LectureID:   r.LectureID,
		Type:        r.Type,
		Completed:   r.Completed,
		Score:       r.Score,
		Total:       r.Total,
		LastUpdated: r.LastUpdated,
	}
}
