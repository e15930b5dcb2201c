package dto

import (
	"time"

	"gamesarchive/internal/httpapi/models"
)

// CreateCommentForm for the form-encoded comment submission
type CreateCommentForm struct {
	Comment string `form:"comment" binding:"required"`
}

// CommentResponse for returning comment information (for list view - without IDs)
type CommentResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Username:  comment.User.Username,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}
}

// StashedCommentResponse is the rejected submission replayed into the page.
type StashedCommentResponse struct {
	Comment string `json:"comment"`
	Error   string `json:"error"`
}

// PaginatedCommentResponse for returning paginated comments
type PaginatedCommentResponse struct {
	Data       []CommentResponse       `json:"data"`
	Stashed    *StashedCommentResponse `json:"stashed,omitempty"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	Total      int                     `json:"total"`
	TotalPages int                     `json:"total_pages"`
}

// NewPaginatedCommentResponse creates a paginated comment response
func NewPaginatedCommentResponse(data []CommentResponse, total, page, pageSize int) *PaginatedCommentResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedCommentResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
