package repository

import (
	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating data operations.
type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	GetByUserAndEntity(userID string, kind models.EntityKind, entityID int64) (*models.Rating, error)
	GetByEntity(kind models.EntityKind, entityID int64) ([]models.Rating, error)
	CalculateAverage(kind models.EntityKind, entityID int64) (float64, error)
	CountByEntity(kind models.EntityKind, entityID int64) (int64, error)
	Delete(id int64) error
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *models.Rating) error {
	return translateError(r.db.Create(rating).Error)
}

func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Model(rating).Update("rating", rating.Rating).Error
}

func (r *ratingRepository) GetByUserAndEntity(userID string, kind models.EntityKind, entityID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND entity_kind = ? AND entity_id = ?", userID, kind, entityID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetByEntity(kind models.EntityKind, entityID int64) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.Preload("User").
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Order("updated_at desc").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// CalculateAverage returns the mean score for the entity, 0 when nobody has
// rated it yet.
func (r *ratingRepository) CalculateAverage(kind models.EntityKind, entityID int64) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Rating{}).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *ratingRepository) CountByEntity(kind models.EntityKind, entityID int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ratingRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Rating{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
