package dto

import "time"

// ==================== TEACHER ANALYTICS DTOs ====================

type ClassSummaryResponse struct {
	TotalStudents        int `json:"total_students"`
	AverageProgress      int `json:"average_progress"`
	StudentsWithProgress int `json:"students_with_progress"`
}

type StudentOverview struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	LastName        string     `json:"last_name"`
	FirstName       string     `json:"first_name"`
	MiddleName      string     `json:"middle_name"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Grade           string     `json:"grade"`
	Strand          string     `json:"strand"`
	Section         string     `json:"section"`
	ProfilePhotoURL string     `json:"profile_photo_url,omitempty"`
	OverallProgress int        `json:"overall_progress"`
	HTMLProgress    int        `json:"html_progress"`
	CppProgress     int        `json:"cpp_progress"`
	PythonProgress  int        `json:"python_progress"`
	LastActivity    *time.Time `json:"last_activity,omitempty"`
}

type ClassDetailResponse struct {
	Students []StudentOverview `json:"students"`
}

type StudentListItem struct {
	ID              string    `json:"id"`
	FullName        string    `json:"full_name"`
	LastName        string    `json:"last_name"`
	FirstName       string    `json:"first_name"`
	MiddleName      string    `json:"middle_name"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Grade           string    `json:"grade"`
	Strand          string    `json:"strand"`
	Section         string    `json:"section"`
	ProfilePhotoURL string    `json:"profile_photo_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type StudentListResponse struct {
	Students []StudentListItem `json:"students"`
}

// LectureAnalyticsResponse maps course -> lecture id -> completion count.
type LectureAnalyticsResponse map[string]map[string]int

// ==================== TEACHER NOTE DTOs ====================

type TeacherNoteRequest struct {
	Text string `json:"text" validate:"max=4000"`
}

func (t TeacherNoteRequest) Validate() error {
	return GetValidator().Struct(t)
}

type TeacherNoteResponse struct {
	StudentID string     `json:"student_id"`
	Text      string     `json:"text"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
