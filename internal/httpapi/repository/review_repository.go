package repository

import (
	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations.
type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	GetByUserAndGame(userID string, gameID int64) (*models.Review, error)
	GetByGame(gameID int64, page, pageSize int) ([]models.Review, int64, error)
	FindByID(id int64) (*models.Review, error)
	Delete(id int64) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return translateError(r.db.Create(review).Error)
}

func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Model(review).Update("content", review.Content).Error
}

func (r *reviewRepository) GetByUserAndGame(userID string, gameID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByGame(gameID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	q := r.db.Model(&models.Review{}).Where("game_id = ?", gameID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Preload("User").
		Where("game_id = ?", gameID).
		Order("updated_at desc, id desc").
		Limit(pageSize).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) FindByID(id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
