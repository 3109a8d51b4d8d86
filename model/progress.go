package model

import "time"

// ProgressRecord is one row per (user, course, lecture slot, type). The
// composite unique index makes every write an upsert: last write wins, no
// duplicates. Score/Total are only meaningful for quiz records.
type ProgressRecord struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_tuple,priority:1"`
	Course      string    `json:"course" gorm:"not null;uniqueIndex:idx_progress_tuple,priority:2"`
	LectureID   int       `json:"lecture_id" gorm:"not null;uniqueIndex:idx_progress_tuple,priority:3"`
	Type        string    `json:"type" gorm:"not null;uniqueIndex:idx_progress_tuple,priority:4"` // lecture or quiz
	Completed   bool      `json:"completed" gorm:"not null"`
	Score       int       `json:"score" gorm:"default:0"`
	Total       int       `json:"total" gorm:"default:0"`
	LastUpdated time.Time `json:"last_updated" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
}

// StreakState is one row per user. CurrentStreak never exceeds LongestStreak
// after an update; LastActivityDate is kept at calendar-day granularity.
type StreakState struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"not null;uniqueIndex"`
	CurrentStreak    int        `json:"current_streak" gorm:"default:0"`
	LongestStreak    int        `json:"longest_streak" gorm:"default:0"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	TotalDaysActive  int        `json:"total_days_active" gorm:"default:0"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// AchievementRecord is immutable once created. The (user, key) unique index
// is what makes awarding idempotent: a second award is a silent no-op.
type AchievementRecord struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_achievement_user_key,priority:1"`
	Key       string    `json:"key" gorm:"not null;uniqueIndex:idx_achievement_user_key,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

// UserStats carries the cumulative editor counters shown on the dashboard.
type UserStats struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	UserID            string    `json:"user_id" gorm:"not null;uniqueIndex"`
	TotalLinesWritten int       `json:"total_lines_written" gorm:"default:0"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
