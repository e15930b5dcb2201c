package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	GenderMale     = "Male"
	GenderFemale   = "Female"
	GenderNotShown = "Do not show"
)

type User struct {
	ID             string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username       string     `gorm:"uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"column:password_hash;not null" json:"-"`
	FirstName      *string    `gorm:"size:50" json:"first_name,omitempty"`
	LastName       *string    `gorm:"size:50" json:"last_name,omitempty"`
	Gender         string     `gorm:"size:15;default:'Do not show'" json:"gender"`
	Age            *int       `json:"age,omitempty"`
	ProfilePicture *string    `json:"profile_picture,omitempty"` // object storage key
	Staff          bool       `gorm:"default:false;not null" json:"staff"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User.
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

// BeforeSave normalizes first/last name to proper case.
func (user *User) BeforeSave(tx *gorm.DB) (err error) {
	user.FirstName = capitalized(user.FirstName)
	user.LastName = capitalized(user.LastName)
	return
}

func capitalized(s *string) *string {
	if s == nil || *s == "" {
		return s
	}
	c := strings.ToUpper((*s)[:1]) + strings.ToLower((*s)[1:])
	return &c
}

// DisplayName is the full name when present, the username otherwise.
func (user *User) DisplayName() string {
	switch {
	case user.FirstName != nil && user.LastName != nil:
		return *user.FirstName + " " + *user.LastName
	case user.FirstName != nil:
		return *user.FirstName
	case user.LastName != nil:
		return *user.LastName
	default:
		return user.Username
	}
}

func (User) TableName() string {
	return "users"
}
