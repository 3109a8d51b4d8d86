package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/codelab-edu/codelab_api/shared"
)

type AnnouncementHandler struct {
	announcementSvc AnnouncementServiceInterface
	userSvc         UserServiceInterface
}

func NewAnnouncementHandler(announcementSvc AnnouncementServiceInterface, userSvc UserServiceInterface) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc, userSvc: userSvc}
}

// @Summary List announcements for me
// @Description Published announcements addressed to the caller's class attributes
// @Tags announcements
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.AnnouncementListResponse}
// @Router /api/v1/announcements [get]
func (h *AnnouncementHandler) ListForMe(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	profile, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	resp, err := h.announcementSvc.ListForStudent(profile.Grade, profile.Strand, profile.Section)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Announcements retrieved successfully", resp)
}
