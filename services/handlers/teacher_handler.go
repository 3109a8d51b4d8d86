package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

type TeacherHandler struct {
	teacherSvc      TeacherServiceInterface
	announcementSvc AnnouncementServiceInterface
}

func NewTeacherHandler(teacherSvc TeacherServiceInterface, announcementSvc AnnouncementServiceInterface) *TeacherHandler {
	return &TeacherHandler{teacherSvc: teacherSvc, announcementSvc: announcementSvc}
}

// @Summary Class summary
// @Description Headcount, average overall progress and active student count
// @Tags teacher
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ClassSummaryResponse}
// @Router /api/v1/teacher/class-summary [get]
func (h *TeacherHandler) ClassSummary(c *fiber.Ctx) error {
	resp, err := h.teacherSvc.ClassSummary()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Class summary retrieved successfully", resp)
}

// @Summary Class detail
// @Description Per-student progress breakdown with last activity
// @Tags teacher
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ClassDetailResponse}
// @Router /api/v1/teacher/class-detail [get]
func (h *TeacherHandler) ClassDetail(c *fiber.Ctx) error {
	resp, err := h.teacherSvc.ClassDetail()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Class detail retrieved successfully", resp)
}

// @Summary List students
// @Tags teacher
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.StudentListResponse}
// @Router /api/v1/teacher/students [get]
func (h *TeacherHandler) ListStudents(c *fiber.Ctx) error {
	resp, err := h.teacherSvc.ListStudents()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Students retrieved successfully", resp)
}

// @Summary Delete student
// @Description Remove a student account and all attached data
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param studentId path string true "Student ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/teacher/students/{studentId} [delete]
func (h *TeacherHandler) DeleteStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	if err := h.teacherSvc.DeleteStudent(studentID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Student deleted successfully", nil)
}

// @Summary Lecture analytics
// @Description Lecture completion counts per course for the whole class
// @Tags teacher
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.LectureAnalyticsResponse}
// @Router /api/v1/teacher/lecture-analytics [get]
func (h *TeacherHandler) LectureAnalytics(c *fiber.Ctx) error {
	resp, err := h.teacherSvc.LectureAnalytics()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Lecture analytics retrieved successfully", resp)
}

// @Summary Export progress as CSV
// @Tags teacher
// @Produce text/csv
// @Security Bearer
// @Success 200 {string} string "CSV payload"
// @Router /api/v1/teacher/export-progress [get]
func (h *TeacherHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.teacherSvc.ExportCSV()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="codelab-progress.csv"`)
	return c.Send(data)
}

// @Summary Export progress as XLSX
// @Tags teacher
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Success 200 {string} string "Workbook payload"
// @Router /api/v1/teacher/export-progress.xlsx [get]
func (h *TeacherHandler) ExportXLSX(c *fiber.Ctx) error {
	data, err := h.teacherSvc.ExportXLSX()
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="codelab-progress.xlsx"`)
	return c.Send(data)
}

// ==================== NOTES ====================

// @Summary Get student note
// @Tags teacher
// @Produce json
// @Security Bearer
// @Param studentId path string true "Student ID"
// @Success 200 {object} shared.Response{data=dto.TeacherNoteResponse}
// @Router /api/v1/teacher/notes/{studentId} [get]
func (h *TeacherHandler) GetNote(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	resp, err := h.teacherSvc.GetNote(studentID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Note retrieved successfully", resp)
}

// @Summary Save student note
// @Description Upsert the single free-form note kept per student
// @Tags teacher
// @Accept json
// @Produce json
// @Security Bearer
// @Param studentId path string true "Student ID"
// @Param noteRequest body dto.TeacherNoteRequest true "Note text"
// @Success 200 {object} shared.Response{data=dto.TeacherNoteResponse}
// @Router /api/v1/teacher/notes/{studentId} [put]
func (h *TeacherHandler) SaveNote(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	var req dto.TeacherNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.teacherSvc.SaveNote(studentID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Note saved successfully", resp)
}

// ==================== ANNOUNCEMENTS (TEACHER SIDE) ====================

// @Summary List all announcements
// @Description Teacher view: drafts and scheduled posts included
// @Tags announcements
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.AnnouncementListResponse}
// @Router /api/v1/teacher/announcements [get]
func (h *TeacherHandler) ListAnnouncements(c *fiber.Ctx) error {
	resp, err := h.announcementSvc.ListForTeacher()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Announcements retrieved successfully", resp)
}

// @Summary Post announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security Bearer
// @Param createRequest body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} shared.Response{data=dto.AnnouncementResponse}
// @Router /api/v1/announcements [post]
func (h *TeacherHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.announcementSvc.Create(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Announcement posted successfully", resp)
}

// @Summary Edit announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Announcement ID"
// @Param updateRequest body dto.UpdateAnnouncementRequest true "Fields to change"
// @Success 200 {object} shared.Response{data=dto.AnnouncementResponse}
// @Router /api/v1/announcements/{id} [patch]
func (h *TeacherHandler) UpdateAnnouncement(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.announcementSvc.Update(id, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Announcement updated successfully", resp)
}

// @Summary Delete announcement
// @Tags announcements
// @Produce json
// @Security Bearer
// @Param id path string true "Announcement ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/announcements/{id} [delete]
func (h *TeacherHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.announcementSvc.Delete(id); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Announcement deleted successfully", nil)
}
