package dto

import (
	"time"

	"github.com/codelab-edu/codelab_api/model"
)

// ==================== PROGRESS DTOs ====================

// UpsertProgressRequest records a lecture or quiz completion event. Score and
// Total only apply to quiz records; Total must be present (and positive) for
// a quiz to count toward perfect-first-try.
type UpsertProgressRequest struct {
	Course    string `json:"course" validate:"required,course" example:"HTML"`
	LectureID int    `json:"lecture_id" validate:"required,gte=1,lte=6" example:"1"`
	Type      string `json:"type" validate:"required,record_type" example:"quiz"`
	Completed bool   `json:"completed" example:"true"`
	Score     int    `json:"score" validate:"gte=0" example:"5"`
	Total     int    `json:"total" validate:"gte=0" example:"5"`
}

func (u UpsertProgressRequest) Validate() error {
	return GetValidator().Struct(u)
}

type ProgressRecordResponse struct {
	Course      string    `json:"course"`
	LectureID   int       `json:"lecture_id"`
	Type        string    `json:"type"`
	Completed   bool      `json:"completed"`
	Score       int       `json:"score"`
	Total       int       `json:"total,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
}

type UpsertProgressResponse struct {
	Message            string                  `json:"message"`
	Progress           ProgressRecordResponse  `json:"progress"`
	AchievementAwarded *AchievementAwarded     `json:"achievement_awarded,omitempty"`
	Summary            ProgressSummaryResponse `json:"summary"`
}

// CourseProgress is the derived view for one course. Only slots where both
// the lecture and its quiz are complete count toward ProgressPercent.
type CourseProgress struct {
	Course                 string `json:"course"`
	LecturesMarkedComplete int    `json:"lectures_marked_complete"`
	QuizzesTaken           int    `json:"quizzes_taken"`
	FullyComplete          int    `json:"fully_complete"`
	ProgressPercent        int    `json:"progress"`
}

type ProgressSummaryResponse struct {
	Courses         []CourseProgress `json:"courses"`
	OverallProgress int              `json:"overall_progress"`
	ComputedAt      time.Time        `json:"computed_at"`
}

type ProgressListResponse struct {
	Progress []ProgressRecordResponse `json:"progress"`
	Summary  ProgressSummaryResponse  `json:"summary"`
}

// ==================== STREAK DTOs ====================

type StreakResponse struct {
	CurrentStreak    int    `json:"current_streak"`
	LongestStreak    int    `json:"longest_streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"` // YYYY-MM-DD
	TotalDaysActive  int    `json:"total_days_active"`
}

// NewStreakResponse maps the stored streak row to its API shape.
func NewStreakResponse(s *model.StreakState) StreakResponse {
	resp := StreakResponse{
		CurrentStreak:   s.CurrentStreak,
		LongestStreak:   s.LongestStreak,
		TotalDaysActive: s.TotalDaysActive,
	}
	if s.LastActivityDate != nil {
		resp.LastActivityDate = s.LastActivityDate.Format("2006-01-02")
	}
	return resp
}

type StreakTickResponse struct {
	Streak             StreakResponse      `json:"streak"`
	AchievementAwarded *AchievementAwarded `json:"achievement_awarded,omitempty"`
}

// ==================== ACHIEVEMENT DTOs ====================

type AchievementAwarded struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

type AchievementResponse struct {
	Key       string    `json:"key"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type AchievementListResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
}

type AwardAchievementRequest struct {
	Key string `json:"key" validate:"required" example:"challenge:py-sum"`
}

func (a AwardAchievementRequest) Validate() error {
	return GetValidator().Struct(a)
}

// ==================== STATS DTOs ====================

type UserStatsResponse struct {
	CodeLinesWritten    int `json:"code_lines_written"`
	ChallengesCompleted int `json:"challenges_completed"`
}

type AddLinesRequest struct {
	LinesToAdd int `json:"lines_to_add" validate:"gte=0" example:"12"`
}

func (a AddLinesRequest) Validate() error {
	return GetValidator().Struct(a)
}

type AddLinesResponse struct {
	CodeLinesWritten int `json:"code_lines_written"`
}
