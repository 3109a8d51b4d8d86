package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

type RunnerHandler struct {
	judgeSvc JudgeServiceInterface
}

func NewRunnerHandler(judgeSvc JudgeServiceInterface) *RunnerHandler {
	return &RunnerHandler{judgeSvc: judgeSvc}
}

// @Summary Runner status
// @Description Whether a code execution backend is configured
// @Tags runner
// @Produce json
// @Success 200 {object} shared.Response{data=dto.RunnerStatusResponse}
// @Router /api/v1/run/status [get]
func (h *RunnerHandler) Status(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, http.StatusOK, "Runner status", h.judgeSvc.Status())
}

// @Summary Run code
// @Description Execute a C++ or Python submission; HTML is previewed client-side
// @Tags runner
// @Accept json
// @Produce json
// @Security Bearer
// @Param runRequest body dto.RunCodeRequest true "Source and optional stdin"
// @Success 200 {object} shared.Response{data=dto.RunCodeResponse}
// @Router /api/v1/run [post]
func (h *RunnerHandler) Run(c *fiber.Ctx) error {
	var req dto.RunCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.judgeSvc.RunCode(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Code executed", resp)
}

// ==================== CHALLENGES ====================

// @Summary List challenges
// @Tags challenges
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ChallengeListResponse}
// @Router /api/v1/challenges [get]
func (h *RunnerHandler) ListChallenges(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.judgeSvc.ListChallenges(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Challenges retrieved successfully", resp)
}

// @Summary Get challenge
// @Tags challenges
// @Produce json
// @Security Bearer
// @Param id path string true "Challenge ID"
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Router /api/v1/challenges/{id} [get]
func (h *RunnerHandler) GetChallenge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	id := c.Params("id")

	resp, err := h.judgeSvc.GetChallenge(userID, id)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Challenge retrieved successfully", resp)
}

// @Summary Submit challenge
// @Description Run the submission against the challenge's test input and check the output
// @Tags challenges
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Challenge ID"
// @Param submitRequest body dto.SubmitChallengeRequest true "Source code"
// @Success 200 {object} shared.Response{data=dto.SubmitChallengeResponse}
// @Router /api/v1/challenges/{id}/submit [post]
func (h *RunnerHandler) SubmitChallenge(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	id := c.Params("id")

	var req dto.SubmitChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.judgeSvc.SubmitChallenge(userID, id, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Challenge evaluated", resp)
}
