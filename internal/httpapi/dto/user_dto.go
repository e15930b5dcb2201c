package dto

import (
	"time"

	"gamesarchive/internal/httpapi/models"
)

// UpdateProfileDTO for PUT /api/users/me (partial updates allowed)
type UpdateProfileDTO struct {
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	FirstName      *string `json:"first_name,omitempty" binding:"omitempty,max=100"`
	LastName       *string `json:"last_name,omitempty" binding:"omitempty,max=100"`
	Gender         *string `json:"gender,omitempty"`
	Age            *int    `json:"age,omitempty" binding:"omitempty,min=1,max=150"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// ChangePasswordDTO for PUT /api/users/me/password
type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      *string    `json:"first_name,omitempty"`
	LastName       *string    `json:"last_name,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	Age            *int       `json:"age,omitempty"`
	ProfilePicture *string    `json:"profile_picture,omitempty"`
	Staff          bool       `json:"staff"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

func (d UpdateProfileDTO) ApplyTo(u *models.User) {
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.FirstName != nil {
		u.FirstName = d.FirstName
	}
	if d.LastName != nil {
		u.LastName = d.LastName
	}
	if d.Gender != nil {
		u.Gender = *d.Gender
	}
	if d.Age != nil {
		u.Age = d.Age
	}
	if d.ProfilePicture != nil {
		u.ProfilePicture = d.ProfilePicture
	}
}

func FromModelToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Gender:         u.Gender,
		Age:            u.Age,
		ProfilePicture: u.ProfilePicture,
		Staff:          u.Staff,
		CreatedAt:      u.CreatedAt,
		LastLogin:      u.LastLogin,
	}
}

// PaginatedUserResponse for the admin user listing
type PaginatedUserResponse struct {
	Data       []UserResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func NewPaginatedUserResponse(data []UserResponse, total, page, pageSize int) *PaginatedUserResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedUserResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
