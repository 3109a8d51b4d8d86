package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

// ==================== USER METHODS ====================

func (ds *SqlService) CreateUser(user *model.User) (*model.User, error) {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *SqlService) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &user, nil
}

func (ds *SqlService) UpdateUser(user *model.User) error {
	user.UpdatedAt = time.Now()
	if err := ds.db.Save(user).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) EmailTaken(email, excludeUserID string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.User{}).
		Where("email = ? AND id <> ?", email, excludeUserID).
		Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

func (ds *SqlService) UsernameTaken(username, excludeUserID string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.User{}).
		Where("username = ? AND id <> ?", username, excludeUserID).
		Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

func (ds *SqlService) GetStudents() ([]model.User, error) {
	var students []model.User
	if err := ds.db.Where("role = ?", shared.RoleStudent).
		Order("created_at DESC").
		Find(&students).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return students, nil
}

// DeleteUserCascade removes the user and every row keyed to them. Runs in a
// transaction so a half-deleted student never survives a crash.
func (ds *SqlService) DeleteUserCascade(userID string) error {
	err := ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.ProgressRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.StreakState{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.AchievementRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserStats{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", userID).Delete(&model.TeacherNote{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&model.User{}).Error
	})
	if err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== PROGRESS METHODS ====================

// UpsertProgressRecord replaces the record for the (user, course, lecture,
// type) tuple, creating it on first completion. priorCompleted reports
// whether a completed record already existed for the tuple, which the
// achievement evaluator needs to tell a first attempt from a re-take.
func (ds *SqlService) UpsertProgressRecord(record *model.ProgressRecord) (saved *model.ProgressRecord, priorCompleted bool, err error) {
	var existing model.ProgressRecord
	findErr := ds.db.Where(
		"user_id = ? AND course = ? AND lecture_id = ? AND type = ?",
		record.UserID, record.Course, record.LectureID, record.Type,
	).First(&existing).Error

	record.LastUpdated = time.Now()

	if findErr == nil {
		priorCompleted = existing.Completed
		existing.Completed = record.Completed
		existing.Score = record.Score
		existing.Total = record.Total
		existing.LastUpdated = record.LastUpdated
		if err := ds.db.Save(&existing).Error; err != nil {
			return nil, false, ds.HandleError(err)
		}
		return &existing, priorCompleted, nil
	}

	if !IsNotFound(findErr) {
		return nil, false, ds.HandleError(findErr)
	}

	id, _ := uuid.NewV7()
	record.ID = id.String()
	record.CreatedAt = time.Now()
	if err := ds.db.Create(record).Error; err != nil {
		return nil, false, ds.HandleError(err)
	}
	return record, false, nil
}

func (ds *SqlService) GetProgressRecords(userID string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	if err := ds.db.Where("user_id = ?", userID).
		Order("last_updated DESC").
		Find(&records).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return records, nil
}

func (ds *SqlService) GetProgressRecordsForUsers(userIDs []string) ([]model.ProgressRecord, error) {
	if len(userIDs) == 0 {
		return []model.ProgressRecord{}, nil
	}
	var records []model.ProgressRecord
	if err := ds.db.Where("user_id IN ?", userIDs).Find(&records).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return records, nil
}

func (ds *SqlService) CountCompletedQuizzes(userID, course string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.ProgressRecord{}).
		Where("user_id = ? AND course = ? AND type = ? AND completed = ?",
			userID, course, shared.RecordTypeQuiz, true).
		Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

func (ds *SqlService) GetCompletedLectureRecords(userIDs []string) ([]model.ProgressRecord, error) {
	if len(userIDs) == 0 {
		return []model.ProgressRecord{}, nil
	}
	var records []model.ProgressRecord
	if err := ds.db.Where("user_id IN ? AND type = ? AND completed = ?",
		userIDs, shared.RecordTypeLecture, true).
		Find(&records).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return records, nil
}

// ==================== STREAK METHODS ====================

func (ds *SqlService) GetStreakState(userID string) (*model.StreakState, error) {
	var streak model.StreakState
	if err := ds.db.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &streak, nil
}

// CreateStreakState inserts the user's streak row. Two concurrent first
// writes race on the user_id unique index; the loser gets the winner's row
// back instead of a duplicate-key error.
func (ds *SqlService) CreateStreakState(streak *model.StreakState) (*model.StreakState, error) {
	if streak.ID == "" {
		id, _ := uuid.NewV7()
		streak.ID = id.String()
	}
	streak.CreatedAt = time.Now()
	streak.UpdatedAt = time.Now()

	result := ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(streak)
	if result.Error != nil {
		return nil, ds.HandleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ds.GetStreakState(streak.UserID)
	}
	return streak, nil
}

func (ds *SqlService) UpdateStreakState(streak *model.StreakState) error {
	streak.UpdatedAt = time.Now()
	if err := ds.db.Save(streak).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

// ==================== ACHIEVEMENT METHODS ====================

// InsertAchievement awards a key once. The unique (user, key) index absorbs
// duplicate awards; created reports whether this call won the insert.
func (ds *SqlService) InsertAchievement(userID, key string) (created bool, err error) {
	id, _ := uuid.NewV7()
	record := model.AchievementRecord{
		ID:        id.String(),
		UserID:    userID,
		Key:       key,
		CreatedAt: time.Now(),
	}

	result := ds.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if result.Error != nil {
		return false, ds.HandleError(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (ds *SqlService) GetAchievements(userID string) ([]model.AchievementRecord, error) {
	var records []model.AchievementRecord
	if err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return records, nil
}

func (ds *SqlService) HasAchievement(userID, key string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.AchievementRecord{}).
		Where("user_id = ? AND key = ?", userID, key).
		Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

func (ds *SqlService) CountChallengeAchievements(userID string) (int64, error) {
	var count int64
	if err := ds.db.Model(&model.AchievementRecord{}).
		Where("user_id = ? AND key LIKE ?", userID, string(shared.AchievementChallenge)+":%").
		Count(&count).Error; err != nil {
		return 0, ds.HandleError(err)
	}
	return count, nil
}

// ==================== STATS METHODS ====================

func (ds *SqlService) GetUserStats(userID string) (*model.UserStats, error) {
	var stats model.UserStats
	if err := ds.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &stats, nil
}

func (ds *SqlService) AddLinesWritten(userID string, lines int) (*model.UserStats, error) {
	stats, err := ds.GetUserStats(userID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		id, _ := uuid.NewV7()
		stats = &model.UserStats{
			ID:        id.String(),
			UserID:    userID,
			CreatedAt: time.Now(),
		}
	}

	stats.TotalLinesWritten += lines
	stats.UpdatedAt = time.Now()
	if err := ds.db.Save(stats).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return stats, nil
}

// ==================== ANNOUNCEMENT METHODS ====================

func (ds *SqlService) CreateAnnouncement(a *model.Announcement) (*model.Announcement, error) {
	if a.ID == "" {
		id, _ := uuid.NewV7()
		a.ID = id.String()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	if err := ds.db.Create(a).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return a, nil
}

func (ds *SqlService) GetAnnouncement(id string) (*model.Announcement, error) {
	var a model.Announcement
	if err := ds.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &a, nil
}

func (ds *SqlService) UpdateAnnouncement(a *model.Announcement) error {
	a.UpdatedAt = time.Now()
	if err := ds.db.Save(a).Error; err != nil {
		return ds.HandleError(err)
	}
	return nil
}

func (ds *SqlService) DeleteAnnouncement(id string) error {
	result := ds.db.Where("id = ?", id).Delete(&model.Announcement{})
	if result.Error != nil {
		return ds.HandleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ds.HandleError(gorm.ErrRecordNotFound)
	}
	return nil
}

func (ds *SqlService) ListAnnouncements(limit int) ([]model.Announcement, error) {
	var list []model.Announcement
	if err := ds.db.Order("pinned DESC, publish_at DESC, created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return list, nil
}

// ListAnnouncementsForStudent returns published announcements addressed to
// the student's class attributes. An empty target column is a wildcard; a set
// column must equal the student's value, so the limit only ever counts rows
// the student can actually see.
func (ds *SqlService) ListAnnouncementsForStudent(grade, strand, section string, now time.Time, limit int) ([]model.Announcement, error) {
	var list []model.Announcement
	if err := ds.db.
		Where("(publish_at IS NULL OR publish_at <= ?)", now).
		Where("(target_grade = '' OR target_grade = ?)", grade).
		Where("(target_strand = '' OR target_strand = ?)", strand).
		Where("(target_section = '' OR target_section = ?)", section).
		Order("pinned DESC, publish_at DESC, created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return list, nil
}

// ==================== TEACHER NOTE METHODS ====================

func (ds *SqlService) GetTeacherNote(studentID string) (*model.TeacherNote, error) {
	var note model.TeacherNote
	if err := ds.db.Where("student_id = ?", studentID).First(&note).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return &note, nil
}

func (ds *SqlService) UpsertTeacherNote(studentID, text string) (*model.TeacherNote, error) {
	note, err := ds.GetTeacherNote(studentID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		id, _ := uuid.NewV7()
		note = &model.TeacherNote{
			ID:        id.String(),
			StudentID: studentID,
			CreatedAt: time.Now(),
		}
	}

	note.Text = text
	note.UpdatedAt = time.Now()
	if err := ds.db.Save(note).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return note, nil
}
