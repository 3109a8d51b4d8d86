package services

import (
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

// AnnouncementService manages the class announcement board: teachers post
// and edit, students see the published subset addressed to them.
type AnnouncementService struct {
	appContext.DefaultService

	sqlSvc *SqlService
}

const ANNOUNCEMENT_SVC = "announcement_svc"

const (
	teacherFeedLimit = 50
	studentFeedLimit = 10
)

func (svc AnnouncementService) Id() string {
	return ANNOUNCEMENT_SVC
}

func (svc *AnnouncementService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AnnouncementService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

func (svc *AnnouncementService) Create(req dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, shared.NewBadRequestError(nil, "Announcement text is required.")
	}

	a := &model.Announcement{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Text:      text,
		Pinned:    req.Pinned,
		PublishAt: req.PublishAt,
	}
	applyTarget(a, req.Target)

	saved, err := svc.sqlSvc.CreateAnnouncement(a)
	if err != nil {
		return nil, err
	}

	resp := mapAnnouncement(saved)
	return &resp, nil
}

func (svc *AnnouncementService) Update(id string, req dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if req.Text == nil && req.Pinned == nil && req.PublishAt == nil && req.Target == nil {
		return nil, shared.NewBadRequestError(nil, "Nothing to update.")
	}

	a, err := svc.sqlSvc.GetAnnouncement(id)
	if err != nil {
		if IsNotFound(err) {
			return nil, shared.NewNotFoundError(err, "Announcement not found.")
		}
		return nil, err
	}

	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return nil, shared.NewBadRequestError(nil, "Announcement text is required.")
		}
		a.Text = text
	}
	if req.Pinned != nil {
		a.Pinned = *req.Pinned
	}
	if req.PublishAt != nil {
		a.PublishAt = req.PublishAt
	}
	if req.Target != nil {
		applyTarget(a, req.Target)
	}

	if err := svc.sqlSvc.UpdateAnnouncement(a); err != nil {
		return nil, err
	}

	resp := mapAnnouncement(a)
	return &resp, nil
}

func (svc *AnnouncementService) Delete(id string) error {
	err := svc.sqlSvc.DeleteAnnouncement(id)
	if IsNotFound(err) {
		return shared.NewNotFoundError(err, "Announcement not found.")
	}
	return err
}

// ListForTeacher returns the full board, drafts and scheduled posts
// included.
func (svc *AnnouncementService) ListForTeacher() (*dto.AnnouncementListResponse, error) {
	list, err := svc.sqlSvc.ListAnnouncements(teacherFeedLimit)
	if err != nil {
		return nil, err
	}
	return mapAnnouncementList(list, len(list)), nil
}

// ListForStudent returns published announcements the student's class
// attributes match, newest pinned first. The publish and targeting
// predicates live in the query so future or non-matching posts never eat
// into the feed window.
func (svc *AnnouncementService) ListForStudent(grade, strand, section string) (*dto.AnnouncementListResponse, error) {
	list, err := svc.sqlSvc.ListAnnouncementsForStudent(grade, strand, section, time.Now(), studentFeedLimit)
	if err != nil {
		return nil, err
	}
	return mapAnnouncementList(list, studentFeedLimit), nil
}

func applyTarget(a *model.Announcement, target *dto.AnnouncementTarget) {
	if target == nil {
		a.TargetGrade = ""
		a.TargetStrand = ""
		a.TargetSection = ""
		return
	}
	a.TargetGrade = strings.TrimSpace(target.Grade)
	a.TargetStrand = strings.TrimSpace(target.Strand)
	a.TargetSection = strings.TrimSpace(target.Section)
}

func mapAnnouncementList(list []model.Announcement, limit int) *dto.AnnouncementListResponse {
	if len(list) > limit {
		list = list[:limit]
	}

	out := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		out = append(out, mapAnnouncement(&list[i]))
	}
	return &dto.AnnouncementListResponse{Announcements: out}
}

func mapAnnouncement(a *model.Announcement) dto.AnnouncementResponse {
	resp := dto.AnnouncementResponse{
		ID:        a.ID,
		Text:      a.Text,
		Pinned:    a.Pinned,
		PublishAt: a.PublishAt,
		CreatedAt: a.CreatedAt,
	}
	if a.TargetGrade != "" || a.TargetStrand != "" || a.TargetSection != "" {
		resp.Target = &dto.AnnouncementTarget{
			Grade:   a.TargetGrade,
			Strand:  a.TargetStrand,
			Section: a.TargetSection,
		}
	}
	return resp
}
