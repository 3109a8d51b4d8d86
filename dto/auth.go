package dto

import "time"

// ==================== AUTHENTICATION REQUEST DTOs ====================

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"student@example.com"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum" example:"juandelacruz"`
	Password string `json:"password" validate:"required,min=6" example:"SecurePass123"`
	Role     string `json:"role" validate:"omitempty,oneof=student teacher" example:"student"`

	// Students must supply last and first name plus enrollment details;
	// teachers only a full name and a 7-digit employee number.
	FullName       string `json:"full_name" example:"Juan Dela Cruz"`
	LastName       string `json:"last_name" example:"Dela Cruz"`
	FirstName      string `json:"first_name" example:"Juan"`
	MiddleName     string `json:"middle_name" example:"Santos"`
	Birthday       string `json:"birthday" example:"2008-04-15"`
	Age            *int   `json:"age" example:"17"`
	Sex            string `json:"sex" example:"M"`
	Grade          string `json:"grade" example:"11"`
	Strand         string `json:"strand" example:"STEM"`
	Section        string `json:"section" example:"A"`
	Address        string `json:"address" example:"Quezon City"`
	Contact        string `json:"contact" example:"09171234567"`
	EmployeeNumber string `json:"employee_number" example:"1234567"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"student@example.com"`
	Password string `json:"password" validate:"required" example:"SecurePass123"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type ForgotPasswordRequest struct {
	Email       string `json:"email" validate:"required,email" example:"student@example.com"`
	NewPassword string `json:"new_password" validate:"required,min=6" example:"NewPass123"`
}

func (f ForgotPasswordRequest) Validate() error {
	return GetValidator().Struct(f)
}

// ==================== AUTHENTICATION RESPONSE DTOs ====================

type RegisterResponse struct {
	UserID   string `json:"user_id" example:"usr_0190f7a2"`
	Email    string `json:"email" example:"student@example.com"`
	Username string `json:"username" example:"juandelacruz"`
	Role     string `json:"role" example:"student"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64    `json:"expires_in" example:"3600"`
	User        UserInfo `json:"user"`
}

type TokenPair struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn   int64  `json:"expires_in" example:"3600"`
}

type UserInfo struct {
	ID              string `json:"id" example:"usr_0190f7a2"`
	Email           string `json:"email" example:"student@example.com"`
	Username        string `json:"username" example:"juandelacruz"`
	FullName        string `json:"full_name" example:"Juan Dela Cruz"`
	LastName        string `json:"last_name" example:"Dela Cruz"`
	FirstName       string `json:"first_name" example:"Juan"`
	MiddleName      string `json:"middle_name" example:"Santos"`
	Role            string `json:"role" example:"student"`
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`
	Birthday        string `json:"birthday,omitempty" example:"2008-04-15"`
	Age             *int   `json:"age,omitempty" example:"17"`
	Sex             string `json:"sex,omitempty" example:"M"`
	Grade           string `json:"grade,omitempty" example:"11"`
	Strand          string `json:"strand,omitempty" example:"STEM"`
	Section         string `json:"section,omitempty" example:"A"`
	Address         string `json:"address,omitempty" example:"Quezon City"`
	Contact         string `json:"contact,omitempty" example:"09171234567"`
	EmployeeNumber  string `json:"employee_number,omitempty" example:"1234567"`
}

// ==================== PROFILE DTOs ====================

type UpdateProfileRequest struct {
	Username   *string `json:"username,omitempty" validate:"omitempty,min=3,max=30,alphanum"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	LastName   *string `json:"last_name,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
	Birthday   *string `json:"birthday,omitempty"`
	Age        *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=120"`
	Sex        *string `json:"sex,omitempty"`
	Grade      *string `json:"grade,omitempty"`
	Strand     *string `json:"strand,omitempty"`
	Section    *string `json:"section,omitempty"`
	Address    *string `json:"address,omitempty"`
	Contact    *string `json:"contact,omitempty"`
}

func (u UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(u)
}

type ProfilePhotoResponse struct {
	ProfilePhotoURL string    `json:"profile_photo_url"`
	UploadedAt      time.Time `json:"uploaded_at"`
}
