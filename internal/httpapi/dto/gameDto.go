package dto

import (
	"time"

	"gamesarchive/internal/httpapi/models"
)

// CreateGameDTO used for POST /api/games
type CreateGameDTO struct {
	Title       string  `json:"title" binding:"required,max=100"`
	ReleaseYear *int    `json:"release_year,omitempty" binding:"omitempty,min=1950,max=2100"`
	Developer   *string `json:"developer,omitempty" binding:"omitempty,max=100"`
	Genre       *string `json:"genre,omitempty" binding:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
	ConsoleIDs  []int64 `json:"console_ids,omitempty"`
}

// UpdateGameDTO used for PUT /api/games/:id (partial updates allowed)
type UpdateGameDTO struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=100"`
	ReleaseYear *int     `json:"release_year,omitempty" binding:"omitempty,min=1950,max=2100"`
	Developer   *string  `json:"developer,omitempty" binding:"omitempty,max=100"`
	Genre       *string  `json:"genre,omitempty" binding:"omitempty,max=50"`
	Description *string  `json:"description,omitempty"`
	ConsoleIDs  *[]int64 `json:"console_ids,omitempty"`
}

// GameResponse DTO for responses
type GameResponse struct {
	ID            int64             `json:"id"`
	Title         string            `json:"title"`
	ReleaseYear   *int              `json:"release_year,omitempty"`
	Developer     *string           `json:"developer,omitempty"`
	Genre         *string           `json:"genre,omitempty"`
	Description   *string           `json:"description,omitempty"`
	CoverImage    *string           `json:"cover_image,omitempty"`
	OwnerUsername *string           `json:"owner_username,omitempty"`
	Consoles      []ConsoleResponse `json:"consoles,omitempty"`
	SupplierLogo  *string           `json:"supplier_logo,omitempty"`
	AverageRating float64           `json:"average_rating"`
	RatingCount   int64             `json:"rating_count"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Converters
func (d CreateGameDTO) ToModel() models.Game {
	return models.Game{
		Title:       d.Title,
		ReleaseYear: d.ReleaseYear,
		Developer:   d.Developer,
		Genre:       d.Genre,
		Description: d.Description,
	}
}

func (d UpdateGameDTO) ApplyTo(g *models.Game) {
	if d.Title != nil {
		g.Title = *d.Title
	}
	if d.ReleaseYear != nil {
		g.ReleaseYear = d.ReleaseYear
	}
	if d.Developer != nil {
		g.Developer = d.Developer
	}
	if d.Genre != nil {
		g.Genre = d.Genre
	}
	if d.Description != nil {
		g.Description = d.Description
	}
}

func FromModelToGameResponse(g *models.Game) *GameResponse {
	resp := &GameResponse{
		ID:          g.ID,
		Title:       g.Title,
		ReleaseYear: g.ReleaseYear,
		Developer:   g.Developer,
		Genre:       g.Genre,
		Description: g.Description,
		CoverImage:  g.CoverImage,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.Owner != nil {
		resp.OwnerUsername = &g.Owner.Username
	}
	for i := range g.Consoles {
		resp.Consoles = append(resp.Consoles, *FromModelToConsoleResponse(&g.Consoles[i]))
	}
	return resp
}

// PaginatedGameResponse for returning paginated games
type PaginatedGameResponse struct {
	Data       []GameResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

func NewPaginatedGameResponse(data []GameResponse, total, page, pageSize int) *PaginatedGameResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedGameResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
