package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codelab-edu/codelab_api/model"
)

func TestMapAnnouncement_TargetOmittedWhenBroadcast(t *testing.T) {
	resp := mapAnnouncement(&model.Announcement{ID: "a1", Text: "Quiz on Friday"})

	assert.Equal(t, "a1", resp.ID)
	assert.Nil(t, resp.Target)
}

func TestMapAnnouncement_TargetPresentWhenAnyFieldSet(t *testing.T) {
	resp := mapAnnouncement(&model.Announcement{ID: "a2", Text: "STEM only", TargetStrand: "STEM"})

	if assert.NotNil(t, resp.Target) {
		assert.Equal(t, "STEM", resp.Target.Strand)
		assert.Empty(t, resp.Target.Grade)
	}
}

func TestMapAnnouncementList_Capped(t *testing.T) {
	list := make([]model.Announcement, 15)
	for i := range list {
		list[i].ID = string(rune('a' + i))
	}

	out := mapAnnouncementList(list, studentFeedLimit)
	assert.Len(t, out.Announcements, studentFeedLimit)

	out = mapAnnouncementList(list[:3], studentFeedLimit)
	assert.Len(t, out.Announcements, 3)
}

func TestApplyTarget_NilClearsTargeting(t *testing.T) {
	a := &model.Announcement{TargetGrade: "11", TargetStrand: "STEM", TargetSection: "A"}
	applyTarget(a, nil)

	assert.Empty(t, a.TargetGrade)
	assert.Empty(t, a.TargetStrand)
	assert.Empty(t, a.TargetSection)
}
