package model

import "time"

type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"default:student"` // student or teacher

	// Student enrollment details. Teachers only carry FullName and
	// EmployeeNumber; the rest stays empty.
	FullName       string     `json:"full_name"`
	LastName       string     `json:"last_name"`
	FirstName      string     `json:"first_name"`
	MiddleName     string     `json:"middle_name"`
	Birthday       *time.Time `json:"birthday"`
	Age            *int       `json:"age"`
	Sex            string     `json:"sex"`
	Grade          string     `json:"grade"`
	Strand         string     `json:"strand"`
	Section        string     `json:"section"`
	Address        string     `json:"address"`
	Contact        string     `json:"contact"`
	EmployeeNumber string     `json:"employee_number" gorm:"index"`

	ProfilePhotoURL string `json:"profile_photo_url"`
	ProfilePhotoKey string `json:"-"`

	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
