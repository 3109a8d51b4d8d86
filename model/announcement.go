package model

import "time"

// Announcement targeting: empty Grade/Strand/Section act as wildcards, so an
// announcement with no target at all is visible to every student.
type Announcement struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Text          string     `json:"text" gorm:"type:text;not null"`
	Pinned        bool       `json:"pinned" gorm:"default:false"`
	PublishAt     *time.Time `json:"publish_at"`
	TargetGrade   string     `json:"target_grade"`
	TargetStrand  string     `json:"target_strand"`
	TargetSection string     `json:"target_section"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TeacherNote is a single free-form note per student.
type TeacherNote struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	StudentID string    `json:"student_id" gorm:"not null;uniqueIndex"`
	Text      string    `json:"text" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
