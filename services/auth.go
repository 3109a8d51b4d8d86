package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/codelab-edu/codelab_api/dto"
	"github.com/codelab-edu/codelab_api/model"
	"github.com/codelab-edu/codelab_api/shared"
)

type AuthService struct {
	context.DefaultService

	sqlSvc *SqlService
	jwtSvc *JWTService
}

const AUTH_SVC = "auth_svc"

var nonDigits = regexp.MustCompile(`\D`)

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := shared.RoleStudent
	if strings.EqualFold(req.Role, shared.RoleTeacher) {
		role = shared.RoleTeacher
	}

	user := &model.User{
		Email:    req.Email,
		Username: req.Username,
		Role:     role,
	}

	if role == shared.RoleTeacher {
		if strings.TrimSpace(req.FullName) == "" {
			return nil, shared.NewBadRequestError(nil, "Please enter full name, username, email, and password")
		}
		employeeNumber := nonDigits.ReplaceAllString(req.EmployeeNumber, "")
		if len(employeeNumber) != 7 {
			return nil, shared.NewBadRequestError(nil, "Employee number must be exactly 7 digits")
		}
		user.FullName = strings.TrimSpace(req.FullName)
		user.EmployeeNumber = employeeNumber
	} else {
		lastName := strings.TrimSpace(req.LastName)
		firstName := strings.TrimSpace(req.FirstName)
		middleName := strings.TrimSpace(req.MiddleName)
		if lastName == "" || firstName == "" {
			return nil, shared.NewBadRequestError(nil, "Please enter Last Name and First Name")
		}
		if req.Birthday == "" || req.Age == nil || req.Sex == "" || req.Grade == "" ||
			req.Strand == "" || req.Section == "" || req.Address == "" || req.Contact == "" {
			return nil, shared.NewBadRequestError(nil, "Please enter all required fields")
		}

		birthday, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid birthday, expected YYYY-MM-DD")
		}

		user.FullName = joinNameParts(firstName, middleName, lastName)
		user.LastName = lastName
		user.FirstName = firstName
		user.MiddleName = middleName
		user.Birthday = &birthday
		user.Age = req.Age
		user.Sex = req.Sex
		user.Grade = req.Grade
		user.Strand = req.Strand
		user.Section = req.Section
		user.Address = req.Address
		user.Contact = strings.TrimSpace(req.Contact)
	}

	if taken, err := svc.sqlSvc.EmailTaken(req.Email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, shared.NewBadRequestError(nil, "A user with this email already exists. Please log in instead.")
	}

	if taken, err := svc.sqlSvc.UsernameTaken(req.Username, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, shared.NewBadRequestError(nil, "This username is already taken. Please choose a different username.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashed)

	created, err := svc.sqlSvc.CreateUser(user)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": created.ID,
		"role":    created.Role,
	}).Info("User registered")

	return &dto.RegisterResponse{
		UserID:   created.ID,
		Email:    created.Email,
		Username: created.Username,
		Role:     created.Role,
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.sqlSvc.GetUserByEmail(req.Email)
	if err != nil {
		if IsNotFound(err) {
			return nil, shared.NewBadRequestError(nil, "Invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewBadRequestError(nil, "Invalid credentials")
	}

	pair, err := svc.jwtSvc.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Warn("Failed to record last login")
	}

	return &dto.LoginResponse{
		AccessToken: pair.AccessToken,
		ExpiresIn:   pair.ExpiresIn,
		User:        MapUserInfo(user),
	}, nil
}

// ForgotPassword resets the password directly; CodeLab accounts belong to a
// single classroom and the flow has no mail loop.
func (svc *AuthService) ForgotPassword(req dto.ForgotPasswordRequest) error {
	user, err := svc.sqlSvc.GetUserByEmail(req.Email)
	if err != nil {
		if IsNotFound(err) {
			return shared.NewNotFoundError(nil, "No account found with that email address")
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return svc.sqlSvc.UpdateUser(user)
}

func MapUserInfo(user *model.User) dto.UserInfo {
	info := dto.UserInfo{
		ID:              user.ID,
		Email:           user.Email,
		Username:        user.Username,
		FullName:        user.FullName,
		LastName:        user.LastName,
		FirstName:       user.FirstName,
		MiddleName:      user.MiddleName,
		Role:            user.Role,
		ProfilePhotoURL: user.ProfilePhotoURL,
		Age:             user.Age,
		Sex:             user.Sex,
		Grade:           user.Grade,
		Strand:          user.Strand,
		Section:         user.Section,
		Address:         user.Address,
		Contact:         user.Contact,
		EmployeeNumber:  user.EmployeeNumber,
	}
	if user.Birthday != nil {
		info.Birthday = user.Birthday.Format("2006-01-02")
	}
	return info
}

func joinNameParts(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
