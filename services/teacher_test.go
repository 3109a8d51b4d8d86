package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

func TestRoundDiv(t *testing.T) {
	assert.Equal(t, 0, roundDiv(0, 0), "empty class averages to zero")
	assert.Equal(t, 0, roundDiv(10, 0))
	assert.Equal(t, 5, roundDiv(10, 2))
	assert.Equal(t, 3, roundDiv(10, 3))
	assert.Equal(t, 17, roundDiv(50, 3))
	assert.Equal(t, 2, roundDiv(3, 2), "half rounds up")
}

func TestBuildStudentOverview(t *testing.T) {
	earlier := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2026, time.February, 2, 9, 0, 0, 0, time.UTC)

	student := &model.User{
		ID:       "u1",
		FullName: "Maria Santos",
		Username: "maria",
		Email:    "maria@example.com",
		Grade:    "11",
		Strand:   "STEM",
		Section:  "A",
	}
	records := []model.ProgressRecord{
		{UserID: "u1", Course: shared.CourseHTML, LectureID: 1, Type: shared.RecordTypeLecture, Completed: true, LastUpdated: earlier},
		{UserID: "u1", Course: shared.CourseHTML, LectureID: 1, Type: shared.RecordTypeQuiz, Completed: true, LastUpdated: later},
	}

	overview := buildStudentOverview(student, records)

	assert.Equal(t, "u1", overview.ID)
	assert.Equal(t, 17, overview.HTMLProgress)
	assert.Equal(t, 0, overview.CppProgress)
	assert.Equal(t, 0, overview.PythonProgress)
	assert.Equal(t, 6, overview.OverallProgress)
	require.NotNil(t, overview.LastActivity)
	assert.Equal(t, later, *overview.LastActivity)
}

func TestBuildStudentOverview_NoRecords(t *testing.T) {
	overview := buildStudentOverview(&model.User{ID: "u2"}, nil)

	assert.Equal(t, 0, overview.OverallProgress)
	assert.Nil(t, overview.LastActivity)
}

func TestExportRow(t *testing.T) {
	last := time.Date(2026, time.February, 2, 9, 30, 0, 0, time.UTC)
	row := exportRow(&dto.StudentOverview{
		FullName:        "Maria Santos",
		Username:        "maria",
		Email:           "maria@example.com",
		Grade:           "11",
		Strand:          "STEM",
		Section:         "A",
		OverallProgress: 6,
		HTMLProgress:    17,
		LastActivity:    &last,
	})

	require.Len(t, row, len(exportHeader))
	assert.Equal(t, "Maria Santos", row[0])
	assert.Equal(t, "maria", row[1])
	assert.Equal(t, "6", row[6])
	assert.Equal(t, "17", row[7])
	assert.Equal(t, "0", row[8])
	assert.Equal(t, "2026-02-02T09:30:00Z", row[10])
}

func TestExportRow_FallbacksAndEmptyActivity(t *testing.T) {
	row := exportRow(&dto.StudentOverview{Username: "student01"})

	assert.Equal(t, "student01", row[0], "username stands in for a missing name")
	assert.Empty(t, row[10])
}

func TestStudentIDs(t *testing.T) {
	ids := studentIDs([]model.User{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, []string{"a", "b"}, ids)
}
