package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/codelab-edu/codelab_api/middleware"
	"github.com/codelab-edu/codelab_api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	ctx, err := context.NewCtx(
		&services.SqlService{},
		&services.RedisService{},
		&services.MinIOService{},

		&services.JWTService{},
		&middleware.AuthMiddleware{},
		&services.RateLimitService{},

		&services.AuthService{},
		&services.UserService{},
		&services.MediaService{},
		&services.StreakService{},
		&services.AchievementService{},
		&services.ProgressService{},
		&services.StatsService{},
		&services.TeacherService{},
		&services.AnnouncementService{},
		&services.JudgeService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.WithError(err).Fatal("Failed to build service context")
		return
	}

	if err := ctx.Run(); err != nil {
		log.WithError(err).Fatal("Service context exited")
	}
}
