package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codelab-edu/codelab_api/model"
)

func newTestStore(t *testing.T) *SqlService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.ProgressRecord{},
		&model.StreakState{},
		&model.AchievementRecord{},
		&model.UserStats{},
		&model.Announcement{},
		&model.TeacherNote{},
	))

	return &SqlService{db: db}
}

func TestCreateStreakState_LostRaceReturnsExistingRow(t *testing.T) {
	store := newTestStore(t)

	winner, err := store.CreateStreakState(&model.StreakState{
		UserID:          "u1",
		CurrentStreak:   3,
		LongestStreak:   3,
		TotalDaysActive: 3,
	})
	require.NoError(t, err)

	// A second first-tick for the same user must not surface a
	// duplicate-key error.
	loser, err := store.CreateStreakState(&model.StreakState{
		UserID:          "u1",
		CurrentStreak:   1,
		TotalDaysActive: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, winner.ID, loser.ID)
	assert.Equal(t, 3, loser.CurrentStreak, "the first write is the one that sticks")
}

func TestInsertAchievement_DuplicateIsSilent(t *testing.T) {
	store := newTestStore(t)

	created, err := store.InsertAchievement("u1", "streak:3")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.InsertAchievement("u1", "streak:3")
	require.NoError(t, err)
	assert.False(t, created)
}

func seedAnnouncement(t *testing.T, store *SqlService, a model.Announcement) {
	t.Helper()
	_, err := store.CreateAnnouncement(&a)
	require.NoError(t, err)
}

func TestListAnnouncementsForStudent_Filtering(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	future := now.Add(24 * time.Hour)

	seedAnnouncement(t, store, model.Announcement{Text: "broadcast"})
	seedAnnouncement(t, store, model.Announcement{Text: "scheduled", PublishAt: &future})
	seedAnnouncement(t, store, model.Announcement{Text: "for grade 11", TargetGrade: "11"})
	seedAnnouncement(t, store, model.Announcement{Text: "for grade 12", TargetGrade: "12"})
	seedAnnouncement(t, store, model.Announcement{Text: "for 11 STEM A", TargetGrade: "11", TargetStrand: "STEM", TargetSection: "A"})
	seedAnnouncement(t, store, model.Announcement{Text: "for 11 STEM B", TargetGrade: "11", TargetStrand: "STEM", TargetSection: "B"})

	list, err := store.ListAnnouncementsForStudent("11", "STEM", "A", now, 10)
	require.NoError(t, err)

	texts := make([]string, 0, len(list))
	for _, a := range list {
		texts = append(texts, a.Text)
	}
	assert.ElementsMatch(t, []string{"broadcast", "for grade 11", "for 11 STEM A"}, texts)
}

func TestListAnnouncementsForStudent_ConstrainedFieldExcludesBlankValue(t *testing.T) {
	store := newTestStore(t)

	seedAnnouncement(t, store, model.Announcement{Text: "broadcast"})
	seedAnnouncement(t, store, model.Announcement{Text: "for grade 11", TargetGrade: "11"})

	// A student with no grade on file only sees unconstrained posts.
	list, err := store.ListAnnouncementsForStudent("", "", "", time.Now(), 10)
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "broadcast", list[0].Text)
}

func TestListAnnouncementsForStudent_WindowIgnoresHiddenPosts(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	future := now.Add(time.Hour)

	// More hidden posts than the window can hold, then one eligible post.
	for i := 0; i < 12; i++ {
		seedAnnouncement(t, store, model.Announcement{Text: "scheduled", PublishAt: &future})
	}
	seedAnnouncement(t, store, model.Announcement{Text: "visible"})

	list, err := store.ListAnnouncementsForStudent("11", "STEM", "A", now, 10)
	require.NoError(t, err)

	require.Len(t, list, 1)
	assert.Equal(t, "visible", list[0].Text)
}
