package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewEmpty    = errors.New("review must not be empty")
	ErrReviewTooLong  = errors.New("review must be at most 2500 characters")
	ErrReviewNotFound = errors.New("review not found")
)

type ReviewService interface {
	// SubmitReview creates or replaces the user's review of a game. One
	// review per (user, game); resubmitting overwrites the content.
	SubmitReview(userID string, gameID int64, content string) (*dto.ReviewResponse, error)
	GetUserReview(userID string, gameID int64) (*dto.ReviewResponse, error)
	GetGameReviews(gameID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	DeleteReview(reviewID int64, actor *Claims) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	gameRepo   repository.GameRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, gameRepo repository.GameRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, gameRepo: gameRepo}
}

func (s *reviewService) SubmitReview(userID string, gameID int64, content string) (*dto.ReviewResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrReviewEmpty
	}
	if utf8.RuneCountInString(content) > models.MaxReviewLength {
		return nil, ErrReviewTooLong
	}

	if _, err := s.gameRepo.FindByID(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	existing, err := s.reviewRepo.GetByUserAndGame(userID, gameID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Content = content
		if err := s.reviewRepo.Update(existing); err != nil {
			return nil, err
		}
	} else {
		review := &models.Review{
			UserID:  userID,
			GameID:  gameID,
			Content: content,
		}
		err := s.reviewRepo.Create(review)
		if errors.Is(err, repository.ErrDuplicate) {
			// Concurrent submission from the same user; retry as update.
			existing, err = s.reviewRepo.GetByUserAndGame(userID, gameID)
			if err != nil {
				return nil, err
			}
			existing.Content = content
			if err := s.reviewRepo.Update(existing); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
	}

	// Reload with user data
	review, err := s.reviewRepo.GetByUserAndGame(userID, gameID)
	if err != nil {
		return nil, err
	}
	full, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(full), nil
}

func (s *reviewService) GetUserReview(userID string, gameID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByUserAndGame(userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	full, err := s.reviewRepo.FindByID(review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(full), nil
}

func (s *reviewService) GetGameReviews(gameID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.gameRepo.FindByID(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.GetByGame(gameID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return dto.NewPaginatedReviewResponse(responses, int(total), page, pageSize), nil
}

func (s *reviewService) DeleteReview(reviewID int64, actor *Claims) error {
	review, err := s.reviewRepo.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if actor == nil || (!actor.Staff && review.UserID != actor.UserID) {
		return ErrNotOwner
	}

	return s.reviewRepo.Delete(reviewID)
}
