package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

// Seeds a demo classroom: one teacher account and a handful of students with
// partial progress, so the dashboard has something to show on first run.
func main() {
	var (
		dbPath   = flag.String("db", "", "SQLite path (overrides DB_DATABASE; ignored when DATABASE_URL is set)")
		password = flag.String("password", "codelab123", "Password for every seeded account")
		students = flag.Int("students", 8, "Number of demo students")
	)
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.ProgressRecord{},
		&model.StreakState{},
		&model.AchievementRecord{},
		&model.UserStats{},
		&model.Announcement{},
		&model.TeacherNote{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	teacher := model.User{
		ID:             uuid.Must(uuid.NewV7()).String(),
		Email:          "teacher@codelab.local",
		Username:       "demo_teacher",
		Password:       string(hash),
		Role:           shared.RoleTeacher,
		FullName:       "Demo Teacher",
		EmployeeNumber: "1000001",
	}
	if err := upsertUser(db, &teacher); err != nil {
		log.Fatalf("Failed to seed teacher: %v", err)
	}

	sections := []string{"A", "B"}
	for i := 0; i < *students; i++ {
		first := fmt.Sprintf("Student%02d", i+1)
		student := model.User{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Email:     fmt.Sprintf("student%02d@codelab.local", i+1),
			Username:  fmt.Sprintf("student%02d", i+1),
			Password:  string(hash),
			Role:      shared.RoleStudent,
			FirstName: first,
			LastName:  "Demo",
			FullName:  first + " Demo",
			Grade:     "11",
			Strand:    "STEM",
			Section:   sections[i%len(sections)],
		}
		if err := upsertUser(db, &student); err != nil {
			log.Fatalf("Failed to seed student: %v", err)
		}
		if err := seedProgress(db, student.ID, i); err != nil {
			log.Fatalf("Failed to seed progress: %v", err)
		}
	}

	log.Printf("Seeded 1 teacher and %d students (password: %q)", *students, *password)
}

func openDB(dbPath string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	return gorm.Open(sqlite.Open(sqlitePath(dbPath, os.Getenv("DB_DATABASE"))), cfg)
}

// sqlitePath resolves the database file the same way the server does: flag
// first, then DB_DATABASE, then the default file.
func sqlitePath(flagPath, envPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if envPath != "" {
		return envPath
	}
	return "codelab.db"
}

func upsertUser(db *gorm.DB, user *model.User) error {
	var existing model.User
	err := db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(user).Error
}

// seedProgress gives each student a different amount of completed work so
// the class rollup shows a spread instead of a flat column.
func seedProgress(db *gorm.DB, userID string, seed int) error {
	lectures := seed % (shared.LectureSlots + 1)
	now := time.Now()

	for lectureID := 1; lectureID <= lectures; lectureID++ {
		records := []model.ProgressRecord{
			{
				ID:          uuid.Must(uuid.NewV7()).String(),
				UserID:      userID,
				Course:      shared.CourseHTML,
				LectureID:   lectureID,
				Type:        shared.RecordTypeLecture,
				Completed:   true,
				LastUpdated: now,
			},
			{
				ID:          uuid.Must(uuid.NewV7()).String(),
				UserID:      userID,
				Course:      shared.CourseHTML,
				LectureID:   lectureID,
				Type:        shared.RecordTypeQuiz,
				Completed:   true,
				Score:       4,
				Total:       5,
				LastUpdated: now,
			},
		}
		for i := range records {
			if err := db.Create(&records[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
