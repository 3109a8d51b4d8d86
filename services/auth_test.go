package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

func TestJoinNameParts(t *testing.T) {
	assert.Equal(t, "Juan Cruz Santos", joinNameParts("Juan", "Cruz", "Santos"))
	assert.Equal(t, "Juan Santos", joinNameParts("Juan", "", "Santos"))
	assert.Equal(t, "Juan", joinNameParts("Juan", "", ""))
	assert.Equal(t, "", joinNameParts("", "", ""))
}

func TestMapUserInfo(t *testing.T) {
	birthday := time.Date(2009, time.June, 15, 0, 0, 0, 0, time.UTC)
	user := &model.User{
		ID:       "u1",
		Email:    "maria@example.com",
		Username: "maria",
		FullName: "Maria Santos",
		Role:     shared.RoleStudent,
		Grade:    "11",
		Strand:   "STEM",
		Section:  "A",
		Birthday: &birthday,
	}

	info := MapUserInfo(user)

	assert.Equal(t, "u1", info.ID)
	assert.Equal(t, "maria", info.Username)
	assert.Equal(t, shared.RoleStudent, info.Role)
	assert.Equal(t, "2009-06-15", info.Birthday)
}

func TestMapUserInfo_NoBirthday(t *testing.T) {
	info := MapUserInfo(&model.User{ID: "u2"})
	assert.Empty(t, info.Birthday)
}
