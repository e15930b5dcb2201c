package dto

import (
	"time"

	"gamesarchive/internal/httpapi/models"
)

// CreateConsoleDTO used for POST /api/consoles
type CreateConsoleDTO struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Manufacturer *string `json:"manufacturer,omitempty" binding:"omitempty,max=100"`
	ReleaseYear  *int    `json:"release_year,omitempty" binding:"omitempty,min=1950,max=2100"`
	Description  *string `json:"description,omitempty"`
}

// UpdateConsoleDTO used for PUT /api/consoles/:id (partial updates allowed)
type UpdateConsoleDTO struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Manufacturer *string `json:"manufacturer,omitempty" binding:"omitempty,max=100"`
	ReleaseYear  *int    `json:"release_year,omitempty" binding:"omitempty,min=1950,max=2100"`
	Description  *string `json:"description,omitempty"`
}

// ConsoleResponse DTO for responses
type ConsoleResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Manufacturer  *string   `json:"manufacturer,omitempty"`
	ReleaseYear   *int      `json:"release_year,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CoverImage    *string   `json:"cover_image,omitempty"`
	Logo          *string   `json:"logo,omitempty"`
	OwnerUsername *string   `json:"owner_username,omitempty"`
	SupplierLogo  *string   `json:"supplier_logo,omitempty"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int64     `json:"rating_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (d CreateConsoleDTO) ToModel() models.Console {
	return models.Console{
		Name:         d.Name,
		Manufacturer: d.Manufacturer,
		ReleaseYear:  d.ReleaseYear,
		Description:  d.Description,
	}
}

func (d UpdateConsoleDTO) ApplyTo(c *models.Console) {
	if d.Name != nil {
		c.Name = *d.Name
	}
	if d.Manufacturer != nil {
		c.Manufacturer = d.Manufacturer
	}
	if d.ReleaseYear != nil {
		c.ReleaseYear = d.ReleaseYear
	}
	if d.Description != nil {
		c.Description = d.Description
	}
}

func FromModelToConsoleResponse(c *models.Console) *ConsoleResponse {
	resp := &ConsoleResponse{
		ID:           c.ID,
		Name:         c.Name,
		Manufacturer: c.Manufacturer,
		ReleaseYear:  c.ReleaseYear,
		Description:  c.Description,
		CoverImage:   c.CoverImage,
		Logo:         c.Logo,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.Owner != nil {
		resp.OwnerUsername = &c.Owner.Username
	}
	return resp
}

// PaginatedConsoleResponse for returning paginated consoles
type PaginatedConsoleResponse struct {
	Data       []ConsoleResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

func NewPaginatedConsoleResponse(data []ConsoleResponse, total, page, pageSize int) *PaginatedConsoleResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedConsoleResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
