package handlers

import (
	"mime/multipart"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(req dto.ForgotPasswordRequest) error
}

type UserServiceInterface interface {
	GetProfile(userID string) (*dto.UserInfo, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error)
}

type MediaServiceInterface interface {
	UploadProfilePhoto(userID string, file *multipart.FileHeader) (*dto.ProfilePhotoResponse, error)
	DeleteProfilePhoto(userID string) error
}

type ProgressServiceInterface interface {
	UpsertProgress(userID string, req dto.UpsertProgressRequest) (*dto.UpsertProgressResponse, error)
	GetProgress(userID string) (*dto.ProgressListResponse, error)
	GetCourseProgress(userID, course string) (*dto.CourseProgress, error)
}

type StreakServiceInterface interface {
	Tick(userID string) (*model.StreakState, error)
	GetOrCreate(userID string) (*model.StreakState, error)
}

type AchievementServiceInterface interface {
	List(userID string) (*dto.AchievementListResponse, error)
	AwardByKey(userID, rawKey string) (*dto.AchievementAwarded, error)
	EvaluateStreak(userID string, currentStreak int) *dto.AchievementAwarded
}

type StatsServiceInterface interface {
	GetStats(userID string) (*dto.UserStatsResponse, error)
	AddLines(userID string, req dto.AddLinesRequest) (*dto.AddLinesResponse, error)
}

type TeacherServiceInterface interface {
	ClassSummary() (*dto.ClassSummaryResponse, error)
	ClassDetail() (*dto.ClassDetailResponse, error)
	ListStudents() (*dto.StudentListResponse, error)
	LectureAnalytics() (dto.LectureAnalyticsResponse, error)
	ExportCSV() ([]byte, error)
	ExportXLSX() ([]byte, error)
	GetNote(studentID string) (*dto.TeacherNoteResponse, error)
	SaveNote(studentID string, req dto.TeacherNoteRequest) (*dto.TeacherNoteResponse, error)
	DeleteStudent(studentID string) error
}

type AnnouncementServiceInterface interface {
	Create(req dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Update(id string, req dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(id string) error
	ListForTeacher() (*dto.AnnouncementListResponse, error)
	ListForStudent(grade, strand, section string) (*dto.AnnouncementListResponse, error)
}

type JudgeServiceInterface interface {
	Status() *dto.RunnerStatusResponse
	RunCode(req dto.RunCodeRequest) (*dto.RunCodeResponse, error)
	ListChallenges(userID string) (*dto.ChallengeListResponse, error)
	GetChallenge(userID, id string) (*dto.ChallengeResponse, error)
	SubmitChallenge(userID, challengeID string, req dto.SubmitChallengeRequest) (*dto.SubmitChallengeResponse, error)
}
