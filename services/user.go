package services

import (
	"strings"
	"time"

	"github.com/alphabatem/common/context"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/shared"
)

// UserService covers the profile surface: read and partial update of the
// signed-in account.
type UserService struct {
	context.DefaultService

	sqlSvc *SqlService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	return nil
}

func (svc *UserService) GetProfile(userID string) (*dto.UserInfo, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, err
	}

	info := MapUserInfo(user)
	return &info, nil
}

// UpdateProfile applies a partial update. Name parts always rebuild the
// display name so the roster and exports stay consistent.
func (svc *UserService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	if !hasProfileChanges(req) {
		return nil, shared.NewBadRequestError(nil, "Nothing to update")
	}

	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, err
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) != "" {
		username := strings.TrimSpace(*req.Username)
		taken, err := svc.sqlSvc.UsernameTaken(username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewBadRequestError(nil, "This username is already taken.")
		}
		user.Username = username
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		email := strings.TrimSpace(*req.Email)
		taken, err := svc.sqlSvc.EmailTaken(email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewBadRequestError(nil, "A user with this email already exists.")
		}
		user.Email = email
	}

	if req.LastName != nil || req.FirstName != nil || req.MiddleName != nil {
		if req.LastName != nil {
			user.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.FirstName != nil {
			user.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.MiddleName != nil {
			user.MiddleName = strings.TrimSpace(*req.MiddleName)
		}
		user.FullName = joinNameParts(user.FirstName, user.MiddleName, user.LastName)
	}

	if req.Birthday != nil {
		if *req.Birthday == "" {
			user.Birthday = nil
		} else {
			birthday, err := time.Parse("2006-01-02", *req.Birthday)
			if err != nil {
				return nil, shared.NewBadRequestError(err, "Invalid birthday format. Use YYYY-MM-DD")
			}
			user.Birthday = &birthday
		}
	}

	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Sex != nil {
		user.Sex = *req.Sex
	}
	if req.Grade != nil {
		user.Grade = *req.Grade
	}
	if req.Strand != nil {
		user.Strand = *req.Strand
	}
	if req.Section != nil {
		user.Section = *req.Section
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Contact != nil {
		user.Contact = *req.Contact
	}

	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		return nil, err
	}

	info := MapUserInfo(user)
	return &info, nil
}

func hasProfileChanges(req dto.UpdateProfileRequest) bool {
	return req.Username != nil || req.Email != nil ||
		req.LastName != nil || req.FirstName != nil || req.MiddleName != nil ||
		req.Birthday != nil || req.Age != nil || req.Sex != nil ||
		req.Grade != nil || req.Strand != nil || req.Section != nil ||
		req.Address != nil || req.Contact != nil
}
