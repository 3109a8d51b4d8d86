package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

type UserHandler struct {
	userSvc  UserServiceInterface
	mediaSvc MediaServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface, mediaSvc MediaServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc, mediaSvc: mediaSvc}
}

// @Summary Get own profile
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/v1/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Profile retrieved successfully", resp)
}

// @Summary Update own profile
// @Description Partial update of profile fields; name parts rebuild the display name
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param updateRequest body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/v1/profile [patch]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.userSvc.UpdateProfile(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Profile updated", resp)
}

// @Summary Upload profile photo
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param photo formData file true "Image file (JPG, PNG, WEBP)"
// @Success 200 {object} shared.Response{data=dto.ProfilePhotoResponse}
// @Router /api/v1/profile/photo [post]
func (h *UserHandler) UploadProfilePhoto(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	file, err := c.FormFile("photo")
	if err != nil {
		return shared.NewBadRequestError(err, "Photo file is required")
	}

	resp, err := h.mediaSvc.UploadProfilePhoto(userID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Profile photo uploaded", resp)
}

// @Summary Remove profile photo
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/profile/photo [delete]
func (h *UserHandler) DeleteProfilePhoto(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.mediaSvc.DeleteProfilePhoto(userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Profile photo removed", nil)
}
