package services

import (
	"math"
	"time"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

// Pure derivation of course completion from raw progress records. A lecture
// slot counts as fully complete only when both the lecture and its quiz are
// completed: watching alone or quizzing alone never moves the percentage.

func CalculateCourseProgress(records []model.ProgressRecord, course string) dto.CourseProgress {
	out := dto.CourseProgress{Course: course}

	for slot := 1; slot <= shared.LectureSlots; slot++ {
		lectureDone := hasCompleted(records, course, slot, shared.RecordTypeLecture)
		quizDone := hasCompleted(records, course, slot, shared.RecordTypeQuiz)

		if lectureDone {
			out.LecturesMarkedComplete++
		}
		if quizDone {
			out.QuizzesTaken++
		}
		if lectureDone && quizDone {
			out.FullyComplete++
		}
	}

	out.ProgressPercent = roundPercent(out.FullyComplete, shared.LectureSlots)
	return out
}

// CalculateOverallProgress is the rounded mean of the three rounded course
// percentages, matching what students see per course.
func CalculateOverallProgress(records []model.ProgressRecord) int {
	total := 0
	for _, course := range shared.Courses {
		total += CalculateCourseProgress(records, course).ProgressPercent
	}
	return int(math.Round(float64(total) / float64(len(shared.Courses))))
}

func BuildProgressSummary(records []model.ProgressRecord) dto.ProgressSummaryResponse {
	courses := make([]dto.CourseProgress, 0, len(shared.Courses))
	for _, course := range shared.Courses {
		courses = append(courses, CalculateCourseProgress(records, course))
	}
	return dto.ProgressSummaryResponse{
		Courses:         courses,
		OverallProgress: CalculateOverallProgress(records),
		ComputedAt:      time.Now(),
	}
}

func hasCompleted(records []model.ProgressRecord, course string, lectureID int, recordType string) bool {
	for _, r := range records {
		if r.Course == course && r.LectureID == lectureID && r.Type == recordType && r.Completed {
			return true
		}
	}
	return false
}

// roundPercent rounds half up; completed is never negative here.
func roundPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
