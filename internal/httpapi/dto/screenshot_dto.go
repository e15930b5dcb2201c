package dto

import (
	"time"

	"gamesarchive/internal/httpapi/models"
)

// ScreenshotResponse for returning screenshot information
type ScreenshotResponse struct {
	ID        int64     `json:"id"`
	GameID    int64     `json:"game_id"`
	Username  string    `json:"username"`
	Picture   string    `json:"picture"`
	Slug      string    `json:"slug"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ScreenshotDetailResponse adds prev/next slugs for the gallery view.
type ScreenshotDetailResponse struct {
	ScreenshotResponse
	PrevSlug *string `json:"prev_slug,omitempty"`
	NextSlug *string `json:"next_slug,omitempty"`
}

// FromModelToScreenshotResponse converts a Screenshot model to its DTO
func FromModelToScreenshotResponse(s *models.Screenshot) *ScreenshotResponse {
	return &ScreenshotResponse{
		ID:        s.ID,
		GameID:    s.GameID,
		Username:  s.User.Username,
		Picture:   s.Picture,
		Slug:      s.Slug,
		Width:     s.Width,
		Height:    s.Height,
		CreatedAt: s.CreatedAt,
	}
}
