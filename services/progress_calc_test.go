package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

func record(course string, lectureID int, recordType string, completed bool) model.ProgressRecord {
	return model.ProgressRecord{
		Course:      course,
		LectureID:   lectureID,
		Type:        recordType,
		Completed:   completed,
		LastUpdated: time.Now(),
	}
}

func TestCalculateCourseProgress_Empty(t *testing.T) {
	out := CalculateCourseProgress(nil, shared.CourseHTML)

	assert.Equal(t, 0, out.LecturesMarkedComplete)
	assert.Equal(t, 0, out.QuizzesTaken)
	assert.Equal(t, 0, out.FullyComplete)
	assert.Equal(t, 0, out.ProgressPercent)
}

func TestCalculateCourseProgress_LectureAloneDoesNotCount(t *testing.T) {
	records := []model.ProgressRecord{
		record(shared.CourseHTML, 1, shared.RecordTypeLecture, true),
	}

	out := CalculateCourseProgress(records, shared.CourseHTML)

	assert.Equal(t, 1, out.LecturesMarkedComplete)
	assert.Equal(t, 0, out.QuizzesTaken)
	assert.Equal(t, 0, out.FullyComplete)
	assert.Equal(t, 0, out.ProgressPercent, "lecture without its quiz must not move the percentage")
}

func TestCalculateCourseProgress_QuizAloneDoesNotCount(t *testing.T) {
	records := []model.ProgressRecord{
		record(shared.CourseHTML, 1, shared.RecordTypeQuiz, true),
	}

	out := CalculateCourseProgress(records, shared.CourseHTML)

	assert.Equal(t, 0, out.FullyComplete)
	assert.Equal(t, 0, out.ProgressPercent)
}

func TestCalculateCourseProgress_BothComplete(t *testing.T) {
	records := []model.ProgressRecord{
		record(shared.CourseHTML, 1, shared.RecordTypeLecture, true),
		record(shared.CourseHTML, 1, shared.RecordTypeQuiz, true),
	}

	out := CalculateCourseProgress(records, shared.CourseHTML)

	assert.Equal(t, 1, out.FullyComplete)
	assert.Equal(t, 17, out.ProgressPercent, "1/6 rounds to 17")
}

func TestCalculateCourseProgress_RoundingPerSlotCount(t *testing.T) {
	cases := map[int]int{
		0: 0,
		1: 17,
		2: 33,
		3: 50,
		4: 67,
		5: 83,
		6: 100,
	}

	for fullyComplete, want := range cases {
		var records []model.ProgressRecord
		for slot := 1; slot <= fullyComplete; slot++ {
			records = append(records,
				record(shared.CourseCpp, slot, shared.RecordTypeLecture, true),
				record(shared.CourseCpp, slot, shared.RecordTypeQuiz, true),
			)
		}

		out := CalculateCourseProgress(records, shared.CourseCpp)
		assert.Equalf(t, want, out.ProgressPercent, "%d fully complete slots", fullyComplete)
	}
}

func TestCalculateCourseProgress_IncompleteRecordsIgnored(t *testing.T) {
	records := []model.ProgressRecord{
		record(shared.CoursePython, 2, shared.RecordTypeLecture, true),
		record(shared.CoursePython, 2, shared.RecordTypeQuiz, false),
	}

	out := CalculateCourseProgress(records, shared.CoursePython)

	assert.Equal(t, 0, out.QuizzesTaken, "an incomplete quiz record is not a taken quiz")
	assert.Equal(t, 0, out.FullyComplete)
}

func TestCalculateCourseProgress_OtherCoursesIgnored(t *testing.T) {
	records := []model.ProgressRecord{
		record(shared.CourseHTML, 1, shared.RecordTypeLecture, true),
		record(shared.CourseHTML, 1, shared.RecordTypeQuiz, true),
	}

	out := CalculateCourseProgress(records, shared.CoursePython)
	assert.Equal(t, 0, out.ProgressPercent)
}

func TestCalculateOverallProgress_MeanOfRoundedCourses(t *testing.T) {
	// HTML at 1/6 (17%), others at zero: overall = round(17/3) = 6.
	records := []model.ProgressRecord{
		record(shared.CourseHTML, 1, shared.RecordTypeLecture, true),
		record(shared.CourseHTML, 1, shared.RecordTypeQuiz, true),
	}

	assert.Equal(t, 6, CalculateOverallProgress(records))
}

func TestCalculateOverallProgress_AllCoursesDone(t *testing.T) {
	var records []model.ProgressRecord
	for _, course := range shared.Courses {
		for slot := 1; slot <= shared.LectureSlots; slot++ {
			records = append(records,
				record(course, slot, shared.RecordTypeLecture, true),
				record(course, slot, shared.RecordTypeQuiz, true),
			)
		}
	}

	assert.Equal(t, 100, CalculateOverallProgress(records))
}

func TestBuildProgressSummary(t *testing.T) {
	records := []model.ProgressRecord{
		record(shared.CourseCpp, 1, shared.RecordTypeLecture, true),
		record(shared.CourseCpp, 1, shared.RecordTypeQuiz, true),
		record(shared.CourseCpp, 2, shared.RecordTypeLecture, true),
		record(shared.CourseCpp, 2, shared.RecordTypeQuiz, true),
	}

	summary := BuildProgressSummary(records)

	require.Len(t, summary.Courses, 3)
	byCourse := map[string]int{}
	for _, c := range summary.Courses {
		byCourse[c.Course] = c.ProgressPercent
	}

	assert.Equal(t, 0, byCourse[shared.CourseHTML])
	assert.Equal(t, 33, byCourse[shared.CourseCpp])
	assert.Equal(t, 0, byCourse[shared.CoursePython])
	assert.Equal(t, 11, summary.OverallProgress, "round(33/3)")
	assert.False(t, summary.ComputedAt.IsZero())
}
