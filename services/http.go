package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/codelab-edu/codelab_api/services/handlers"
	"github.com/codelab-edu/codelab_api/shared"
)

// AuthGuard is implemented by the auth middleware service. Declared here so
// the HTTP layer can look it up by id without importing the middleware
// package.
type AuthGuard interface {
	RequiredAuth() fiber.Handler
	RequireTeacher() fiber.Handler
}

type HttpService struct {
	context.DefaultService

	authSvc         *AuthService
	userSvc         *UserService
	mediaSvc        *MediaService
	progressSvc     *ProgressService
	streakSvc       *StreakService
	achievementSvc  *AchievementService
	statsSvc        *StatsService
	teacherSvc      *TeacherService
	announcementSvc *AnnouncementService
	judgeSvc        *JudgeService
	rateLimitSvc    *RateLimitService
	monitoringSvc   *MonitoringService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.userSvc = svc.Service(USER_SVC).(*UserService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.streakSvc = svc.Service(STREAK_SVC).(*StreakService)
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.statsSvc = svc.Service(STATS_SVC).(*StatsService)
	svc.teacherSvc = svc.Service(TEACHER_SVC).(*TeacherService)
	svc.announcementSvc = svc.Service(ANNOUNCEMENT_SVC).(*AnnouncementService)
	svc.judgeSvc = svc.Service(JUDGE_SVC).(*JudgeService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	guard := svc.Service("auth").(AuthGuard)

	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))
	app.Use(svc.rateLimitSvc.IPRateLimit())

	authHandler := handlers.NewAuthHandler(svc.authSvc)
	userHandler := handlers.NewUserHandler(svc.userSvc, svc.mediaSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc, svc.streakSvc, svc.achievementSvc, svc.statsSvc)
	teacherHandler := handlers.NewTeacherHandler(svc.teacherSvc, svc.announcementSvc)
	announcementHandler := handlers.NewAnnouncementHandler(svc.announcementSvc, svc.userSvc)
	runnerHandler := handlers.NewRunnerHandler(svc.judgeSvc)

	app.Get("/ping", svc.ping)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	// Auth
	v1.Post("/register", svc.rateLimitSvc.RateLimit("register"), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.RateLimit("login"), authHandler.Login)
	v1.Post("/forgot-password", svc.rateLimitSvc.RateLimit("forgot_password"), authHandler.ForgotPassword)

	// Profile
	v1.Get("/profile", guard.RequiredAuth(), userHandler.GetProfile)
	v1.Patch("/profile", guard.RequiredAuth(), userHandler.UpdateProfile)
	v1.Post("/profile/photo", guard.RequiredAuth(), userHandler.UploadProfilePhoto)
	v1.Delete("/profile/photo", guard.RequiredAuth(), userHandler.DeleteProfilePhoto)

	// Progress, streak, achievements, stats
	v1.Get("/progress", guard.RequiredAuth(), progressHandler.GetProgress)
	v1.Post("/progress", guard.RequiredAuth(), svc.rateLimitSvc.RateLimit("progress_write"), progressHandler.UpsertProgress)
	v1.Get("/progress/course/:course", guard.RequiredAuth(), progressHandler.GetCourseProgress)
	v1.Get("/streak", guard.RequiredAuth(), progressHandler.GetStreak)
	v1.Post("/streak/tick", guard.RequiredAuth(), progressHandler.TickStreak)
	v1.Get("/achievements", guard.RequiredAuth(), progressHandler.GetAchievements)
	v1.Post("/achievements", guard.RequiredAuth(), progressHandler.AwardAchievement)
	v1.Get("/stats", guard.RequiredAuth(), progressHandler.GetStats)
	v1.Post("/stats/lines", guard.RequiredAuth(), progressHandler.AddLines)

	// Announcements (student view)
	v1.Get("/announcements", guard.RequiredAuth(), announcementHandler.ListForMe)

	// Code runner and challenges
	v1.Get("/run/status", runnerHandler.Status)
	v1.Post("/run", guard.RequiredAuth(), svc.rateLimitSvc.RateLimit("run_code"), runnerHandler.Run)
	v1.Get("/challenges", guard.RequiredAuth(), runnerHandler.ListChallenges)
	v1.Get("/challenges/:id", guard.RequiredAuth(), runnerHandler.GetChallenge)
	v1.Post("/challenges/:id/submit", guard.RequiredAuth(), svc.rateLimitSvc.RateLimit("run_code"), runnerHandler.SubmitChallenge)

	// Teacher dashboard
	teacher := v1.Group("/teacher", guard.RequiredAuth(), guard.RequireTeacher())
	teacher.Get("/class-summary", teacherHandler.ClassSummary)
	teacher.Get("/class-detail", teacherHandler.ClassDetail)
	teacher.Get("/students", teacherHandler.ListStudents)
	teacher.Delete("/students/:studentId", teacherHandler.DeleteStudent)
	teacher.Get("/lecture-analytics", teacherHandler.LectureAnalytics)
	teacher.Get("/export-progress", teacherHandler.ExportCSV)
	teacher.Get("/export-progress.xlsx", teacherHandler.ExportXLSX)
	teacher.Get("/notes/:studentId", teacherHandler.GetNote)
	teacher.Put("/notes/:studentId", teacherHandler.SaveNote)
	teacher.Get("/announcements", teacherHandler.ListAnnouncements)

	// Announcement management (teacher only)
	v1.Post("/announcements", guard.RequiredAuth(), guard.RequireTeacher(), teacherHandler.CreateAnnouncement)
	v1.Patch("/announcements/:id", guard.RequiredAuth(), guard.RequireTeacher(), teacherHandler.UpdateAnnouncement)
	v1.Delete("/announcements/:id", guard.RequiredAuth(), guard.RequireTeacher(), teacherHandler.DeleteAnnouncement)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseJSON(c, http.StatusNotFound, "Not Found", "page not found")
	})

	svc.server = app

	log.WithField("port", svc.port).Info("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithError(err).WithFields(log.Fields{
		"path":   c.Path(),
		"method": c.Method(),
	}).Error("Unhandled request error")

	return shared.ResponseInternalError(c, err)
}
