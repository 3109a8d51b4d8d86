package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

// TeacherService serves the teacher dashboard: class rollups, per-student
// drill-down, lecture analytics, roster exports and notes. All progress
// math reuses the same calculator the student endpoints use, so both sides
// of the app always agree on percentages.
type TeacherService struct {
	appContext.DefaultService

	sqlSvc   *SqlService
	redisSvc *RedisService
}

const TEACHER_SVC = "teacher_svc"

const classSummaryCacheKey = "teacher:class_summary"
const classSummaryCacheTTL = time.Minute

func (svc TeacherService) Id() string {
	return TEACHER_SVC
}

func (svc *TeacherService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *TeacherService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// ==================== CLASS ROLLUPS ====================

func (svc *TeacherService) ClassSummary() (*dto.ClassSummaryResponse, error) {
	ctx := context.Background()
	if cached, err := svc.redisSvc.Get(ctx, classSummaryCacheKey); err == nil && cached != "" {
		var summary dto.ClassSummaryResponse
		if err := svc.redisSvc.UnmarshalJSON(cached, &summary); err == nil {
			return &summary, nil
		}
	}

	students, err := svc.sqlSvc.GetStudents()
	if err != nil {
		return nil, err
	}

	summary := &dto.ClassSummaryResponse{TotalStudents: len(students)}
	if len(students) == 0 {
		return summary, nil
	}

	byUser, err := svc.progressByStudent(students)
	if err != nil {
		return nil, err
	}

	sumProgress := 0
	for _, s := range students {
		records := byUser[s.ID]
		sumProgress += CalculateOverallProgress(records)
		if len(records) > 0 {
			summary.StudentsWithProgress++
		}
	}
	summary.AverageProgress = roundDiv(sumProgress, len(students))

	if err := svc.redisSvc.Set(ctx, classSummaryCacheKey, summary, classSummaryCacheTTL); err != nil {
		log.WithError(err).Debug("Class summary cache write skipped")
	}

	return summary, nil
}

func (svc *TeacherService) ClassDetail() (*dto.ClassDetailResponse, error) {
	students, err := svc.sqlSvc.GetStudents()
	if err != nil {
		return nil, err
	}

	byUser, err := svc.progressByStudent(students)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentOverview, 0, len(students))
	for _, s := range students {
		out = append(out, buildStudentOverview(&s, byUser[s.ID]))
	}
	return &dto.ClassDetailResponse{Students: out}, nil
}

func (svc *TeacherService) ListStudents() (*dto.StudentListResponse, error) {
	students, err := svc.sqlSvc.GetStudents()
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentListItem, 0, len(students))
	for _, s := range students {
		out = append(out, dto.StudentListItem{
			ID:              s.ID,
			FullName:        s.FullName,
			LastName:        s.LastName,
			FirstName:       s.FirstName,
			MiddleName:      s.MiddleName,
			Username:        s.Username,
			Email:           s.Email,
			Grade:           s.Grade,
			Strand:          s.Strand,
			Section:         s.Section,
			ProfilePhotoURL: s.ProfilePhotoURL,
			CreatedAt:       s.CreatedAt,
		})
	}
	return &dto.StudentListResponse{Students: out}, nil
}

// LectureAnalytics counts how many students completed each lecture, per
// course. Zeroes are filled in so the chart always has all 18 bars.
func (svc *TeacherService) LectureAnalytics() (dto.LectureAnalyticsResponse, error) {
	students, err := svc.sqlSvc.GetStudents()
	if err != nil {
		return nil, err
	}

	out := make(dto.LectureAnalyticsResponse, len(shared.Courses))
	for _, course := range shared.Courses {
		counts := make(map[string]int, shared.LectureSlots)
		for id := 1; id <= shared.LectureSlots; id++ {
			counts[strconv.Itoa(id)] = 0
		}
		out[course] = counts
	}

	if len(students) == 0 {
		return out, nil
	}

	ids := studentIDs(students)
	completed, err := svc.sqlSvc.GetCompletedLectureRecords(ids)
	if err != nil {
		return nil, err
	}

	for _, r := range completed {
		if counts, ok := out[r.Course]; ok {
			counts[strconv.Itoa(r.LectureID)]++
		}
	}
	return out, nil
}

// ==================== EXPORTS ====================

var exportHeader = []string{
	"Name", "Username", "Email", "Grade", "Strand", "Section",
	"Overall %", "HTML %", "C++ %", "Python %", "Last activity",
}

// ExportCSV renders the class detail as CSV. The UTF-8 BOM keeps Excel
// from mangling accented names.
func (svc *TeacherService) ExportCSV() ([]byte, error) {
	rows, err := svc.exportRows()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportXLSX renders the same roster as a spreadsheet with a styled header
// row.
func (svc *TeacherService) ExportXLSX() ([]byte, error) {
	rows, err := svc.exportRows()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close export workbook")
		}
	}()

	const sheet = "Progress"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (svc *TeacherService) exportRows() ([][]string, error) {
	detail, err := svc.ClassDetail()
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(detail.Students))
	for _, s := range detail.Students {
		rows = append(rows, exportRow(&s))
	}
	return rows, nil
}

func exportRow(s *dto.StudentOverview) []string {
	name := s.FullName
	if name == "" {
		name = s.Username
	}
	lastActivity := ""
	if s.LastActivity != nil {
		lastActivity = s.LastActivity.UTC().Format(time.RFC3339)
	}
	return []string{
		name,
		s.Username,
		s.Email,
		s.Grade,
		s.Strand,
		s.Section,
		strconv.Itoa(s.OverallProgress),
		strconv.Itoa(s.HTMLProgress),
		strconv.Itoa(s.CppProgress),
		strconv.Itoa(s.PythonProgress),
		lastActivity,
	}
}

// ==================== NOTES ====================

func (svc *TeacherService) GetNote(studentID string) (*dto.TeacherNoteResponse, error) {
	note, err := svc.sqlSvc.GetTeacherNote(studentID)
	if err != nil {
		if IsNotFound(err) {
			return &dto.TeacherNoteResponse{StudentID: studentID, Text: ""}, nil
		}
		return nil, err
	}

	updatedAt := note.UpdatedAt
	return &dto.TeacherNoteResponse{
		StudentID: studentID,
		Text:      note.Text,
		UpdatedAt: &updatedAt,
	}, nil
}

func (svc *TeacherService) SaveNote(studentID string, req dto.TeacherNoteRequest) (*dto.TeacherNoteResponse, error) {
	if _, err := svc.sqlSvc.GetUser(studentID); err != nil {
		if IsNotFound(err) {
			return nil, shared.NewNotFoundError(err, "Student not found")
		}
		return nil, err
	}

	note, err := svc.sqlSvc.UpsertTeacherNote(studentID, req.Text)
	if err != nil {
		return nil, err
	}

	updatedAt := note.UpdatedAt
	return &dto.TeacherNoteResponse{
		StudentID: studentID,
		Text:      note.Text,
		UpdatedAt: &updatedAt,
	}, nil
}

// ==================== ROSTER MANAGEMENT ====================

// DeleteStudent removes a student account and everything attached to it.
// Teacher accounts can't be deleted through this path.
func (svc *TeacherService) DeleteStudent(studentID string) error {
	user, err := svc.sqlSvc.GetUser(studentID)
	if err != nil {
		if IsNotFound(err) {
			return shared.NewNotFoundError(err, "Student not found")
		}
		return err
	}
	if user.Role != shared.RoleStudent {
		return shared.NewBadRequestError(nil, "Only student accounts can be deleted")
	}

	if err := svc.sqlSvc.DeleteUserCascade(studentID); err != nil {
		return err
	}

	svc.invalidateSummaryCache()
	return nil
}

func (svc *TeacherService) invalidateSummaryCache() {
	if err := svc.redisSvc.Delete(context.Background(), classSummaryCacheKey); err != nil {
		log.WithError(err).Debug("Class summary cache invalidation skipped")
	}
}

// ==================== HELPERS ====================

func (svc *TeacherService) progressByStudent(students []model.User) (map[string][]model.ProgressRecord, error) {
	byUser := make(map[string][]model.ProgressRecord, len(students))
	if len(students) == 0 {
		return byUser, nil
	}

	records, err := svc.sqlSvc.GetProgressRecordsForUsers(studentIDs(students))
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	return byUser, nil
}

func buildStudentOverview(s *model.User, records []model.ProgressRecord) dto.StudentOverview {
	overview := dto.StudentOverview{
		ID:              s.ID,
		FullName:        s.FullName,
		LastName:        s.LastName,
		FirstName:       s.FirstName,
		MiddleName:      s.MiddleName,
		Username:        s.Username,
		Email:           s.Email,
		Grade:           s.Grade,
		Strand:          s.Strand,
		Section:         s.Section,
		ProfilePhotoURL: s.ProfilePhotoURL,
		OverallProgress: CalculateOverallProgress(records),
	}

	overview.HTMLProgress = CalculateCourseProgress(records, shared.CourseHTML).ProgressPercent
	overview.CppProgress = CalculateCourseProgress(records, shared.CourseCpp).ProgressPercent
	overview.PythonProgress = CalculateCourseProgress(records, shared.CoursePython).ProgressPercent

	for _, r := range records {
		if overview.LastActivity == nil || r.LastUpdated.After(*overview.LastActivity) {
			last := r.LastUpdated
			overview.LastActivity = &last
		}
	}
	return overview
}

func studentIDs(students []model.User) []string {
	ids := make([]string, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

func roundDiv(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}
