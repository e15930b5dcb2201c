package dto

import (
	"time"

	"gamesarchive/internal/httpapi/models"
)

// CreateRatingDTO for creating or updating a rating
type CreateRatingDTO struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RatingResponse for returning rating information (for list view - without IDs)
type RatingResponse struct {
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO
func FromModelToRatingResponse(rating *models.Rating) *RatingResponse {
	return &RatingResponse{
		Username:  rating.User.Username,
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
}

// RateResponse is returned after a rating submission; it echoes the stored
// score together with the entity's recomputed average.
type RateResponse struct {
	Message       string  `json:"message"`
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"average_rating"`
}

// UserRatingResponse for returning user's own rating
type UserRatingResponse struct {
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummaryResponse carries the aggregate shown next to an entity.
type RatingSummaryResponse struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}
