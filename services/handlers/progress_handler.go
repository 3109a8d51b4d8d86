package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

type ProgressHandler struct {
	progressSvc    ProgressServiceInterface
	streakSvc      StreakServiceInterface
	achievementSvc AchievementServiceInterface
	statsSvc       StatsServiceInterface
}

func NewProgressHandler(progressSvc ProgressServiceInterface, streakSvc StreakServiceInterface, achievementSvc AchievementServiceInterface, statsSvc StatsServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		progressSvc:    progressSvc,
		streakSvc:      streakSvc,
		achievementSvc: achievementSvc,
		statsSvc:       statsSvc,
	}
}

// @Summary Record progress
// @Description Upsert one lecture or quiz completion event; last write wins
// @Tags progress
// @Accept json
// @Produce json
// @Security Bearer
// @Param progressRequest body dto.UpsertProgressRequest true "Activity event"
// @Success 200 {object} shared.Response{data=dto.UpsertProgressResponse}
// @Router /api/v1/progress [post]
func (h *ProgressHandler) UpsertProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpsertProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressSvc.UpsertProgress(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Progress updated successfully", resp)
}

// @Summary Get own progress
// @Description Full ledger plus the derived per-course summary
// @Tags progress
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ProgressListResponse}
// @Router /api/v1/progress [get]
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressSvc.GetProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Progress retrieved successfully", resp)
}

// @Summary Get course progress
// @Tags progress
// @Produce json
// @Security Bearer
// @Param course path string true "Course name" Enums(HTML, C++, Python)
// @Success 200 {object} shared.Response{data=dto.CourseProgress}
// @Router /api/v1/progress/course/{course} [get]
func (h *ProgressHandler) GetCourseProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	course := c.Params("course")

	resp, err := h.progressSvc.GetCourseProgress(userID, course)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Course progress retrieved successfully", resp)
}

// ==================== STREAK ====================

// @Summary Get streak
// @Tags streak
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.StreakResponse}
// @Router /api/v1/streak [get]
func (h *ProgressHandler) GetStreak(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	state, err := h.streakSvc.GetOrCreate(userID)
	if err != nil {
		return err
	}

	resp := dto.NewStreakResponse(state)
	return shared.ResponseJSON(c, http.StatusOK, "Streak retrieved successfully", resp)
}

// @Summary Tick streak
// @Description Count today as an active day; same-day repeats are no-ops
// @Tags streak
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.StreakTickResponse}
// @Router /api/v1/streak/tick [post]
func (h *ProgressHandler) TickStreak(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	state, err := h.streakSvc.Tick(userID)
	if err != nil {
		return err
	}

	resp := dto.StreakTickResponse{
		Streak:             dto.NewStreakResponse(state),
		AchievementAwarded: h.achievementSvc.EvaluateStreak(userID, state.CurrentStreak),
	}
	return shared.ResponseJSON(c, http.StatusOK, "Streak updated successfully", resp)
}

// ==================== ACHIEVEMENTS ====================

// @Summary List achievements
// @Tags achievements
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.AchievementListResponse}
// @Router /api/v1/achievements [get]
func (h *ProgressHandler) GetAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.achievementSvc.List(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Achievements retrieved successfully", resp)
}

// @Summary Record achievement
// @Description Record a client-evaluated achievement key; duplicates are accepted silently
// @Tags achievements
// @Accept json
// @Produce json
// @Security Bearer
// @Param awardRequest body dto.AwardAchievementRequest true "Achievement key"
// @Success 200 {object} shared.Response{data=dto.AchievementAwarded}
// @Router /api/v1/achievements [post]
func (h *ProgressHandler) AwardAchievement(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.AwardAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	awarded, err := h.achievementSvc.AwardByKey(userID, req.Key)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Achievement recorded", awarded)
}

// ==================== STATS ====================

// @Summary Get editor stats
// @Tags stats
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UserStatsResponse}
// @Router /api/v1/stats [get]
func (h *ProgressHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.statsSvc.GetStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Stats retrieved successfully", resp)
}

// @Summary Add lines written
// @Tags stats
// @Accept json
// @Produce json
// @Security Bearer
// @Param addLinesRequest body dto.AddLinesRequest true "Line count delta"
// @Success 200 {object} shared.Response{data=dto.AddLinesResponse}
// @Router /api/v1/stats/lines [post]
func (h *ProgressHandler) AddLines(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.AddLinesRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.statsSvc.AddLines(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Stats updated successfully", resp)
}
