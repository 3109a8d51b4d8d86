package dto

import "time"

type AnnouncementTarget struct {
	Grade   string `json:"grade,omitempty"`
	Strand  string `json:"strand,omitempty"`
	Section string `json:"section,omitempty"`
}

type CreateAnnouncementRequest struct {
	Text      string              `json:"text" validate:"required,max=4000"`
	Pinned    bool                `json:"pinned"`
	PublishAt *time.Time          `json:"publish_at,omitempty"`
	Target    *AnnouncementTarget `json:"target,omitempty"`
}

func (c CreateAnnouncementRequest) Validate() error {
	return GetValidator().Struct(c)
}

type UpdateAnnouncementRequest struct {
	Text      *string             `json:"text,omitempty" validate:"omitempty,max=4000"`
	Pinned    *bool               `json:"pinned,omitempty"`
	PublishAt *time.Time          `json:"publish_at,omitempty"`
	Target    *AnnouncementTarget `json:"target,omitempty"`
}

func (u UpdateAnnouncementRequest) Validate() error {
	return GetValidator().Struct(u)
}

type AnnouncementResponse struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Pinned    bool                `json:"pinned"`
	PublishAt *time.Time          `json:"publish_at,omitempty"`
	Target    *AnnouncementTarget `json:"target,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type AnnouncementListResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
}
