package service

import (
	"errors"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"

	"gorm.io/gorm"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrRatingNotFound = errors.New("rating not found")
)

type RatingService interface {
	RateEntity(userID string, kind models.EntityKind, entityID int64, value int) (*dto.RateResponse, error)
	GetUserRating(userID string, kind models.EntityKind, entityID int64) (*dto.UserRatingResponse, error)
	GetEntityRatings(kind models.EntityKind, entityID int64) ([]dto.RatingResponse, error)
	GetEntitySummary(kind models.EntityKind, entityID int64) (*dto.RatingSummaryResponse, error)
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	gameRepo    repository.GameRepository
	consoleRepo repository.ConsoleRepository
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	gameRepo repository.GameRepository,
	consoleRepo repository.ConsoleRepository,
) RatingService {
	return &ratingService{
		ratingRepo:  ratingRepo,
		gameRepo:    gameRepo,
		consoleRepo: consoleRepo,
	}
}

// RateEntity records the user's score, replacing any earlier score for the
// same entity. A second submission never produces a second row.
func (s *ratingService) RateEntity(userID string, kind models.EntityKind, entityID int64, value int) (*dto.RateResponse, error) {
	if value < models.MinRatingValue || value > models.MaxRatingValue {
		return nil, ErrInvalidRating
	}

	if err := s.entityExists(kind, entityID); err != nil {
		return nil, err
	}

	existing, err := s.ratingRepo.GetByUserAndEntity(userID, kind, entityID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var rating *models.Rating
	if existing != nil {
		existing.Rating = value
		if err := s.ratingRepo.Update(existing); err != nil {
			return nil, err
		}
		rating = existing
	} else {
		newRating := &models.Rating{
			UserID:     userID,
			EntityKind: kind,
			EntityID:   entityID,
			Rating:     value,
		}
		err := s.ratingRepo.Create(newRating)
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent submission from the same user.
			// The row exists now, so retry as an update.
			existing, err = s.ratingRepo.GetByUserAndEntity(userID, kind, entityID)
			if err != nil {
				return nil, err
			}
			existing.Rating = value
			if err := s.ratingRepo.Update(existing); err != nil {
				return nil, err
			}
			rating = existing
		} else if err != nil {
			return nil, err
		} else {
			rating = newRating
		}
	}

	avg, err := s.ratingRepo.CalculateAverage(kind, entityID)
	if err != nil {
		return nil, err
	}

	return &dto.RateResponse{
		Message:       "rating saved",
		Rating:        rating.Rating,
		AverageRating: avg,
	}, nil
}

// GetUserRating retrieves the user's own rating for an entity.
func (s *ratingService) GetUserRating(userID string, kind models.EntityKind, entityID int64) (*dto.UserRatingResponse, error) {
	rating, err := s.ratingRepo.GetByUserAndEntity(userID, kind, entityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}

	return &dto.UserRatingResponse{
		Rating:    rating.Rating,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}, nil
}

// GetEntityRatings retrieves all ratings for an entity.
func (s *ratingService) GetEntityRatings(kind models.EntityKind, entityID int64) ([]dto.RatingResponse, error) {
	if err := s.entityExists(kind, entityID); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.GetByEntity(kind, entityID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&ratings[i]))
	}
	return responses, nil
}

// GetEntitySummary returns the average (0 when unrated) and the vote count.
func (s *ratingService) GetEntitySummary(kind models.EntityKind, entityID int64) (*dto.RatingSummaryResponse, error) {
	if err := s.entityExists(kind, entityID); err != nil {
		return nil, err
	}

	avg, err := s.ratingRepo.CalculateAverage(kind, entityID)
	if err != nil {
		return nil, err
	}
	count, err := s.ratingRepo.CountByEntity(kind, entityID)
	if err != nil {
		return nil, err
	}

	return &dto.RatingSummaryResponse{AverageRating: avg, RatingCount: count}, nil
}

func (s *ratingService) entityExists(kind models.EntityKind, entityID int64) error {
	var err error
	switch kind {
	case models.KindGame:
		_, err = s.gameRepo.FindByID(entityID)
	case models.KindConsole:
		_, err = s.consoleRepo.FindByID(entityID)
	default:
		return ErrEntityNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEntityNotFound
	}
	return err
}
