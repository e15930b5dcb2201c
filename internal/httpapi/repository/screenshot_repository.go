package repository

import (
	"errors"

	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// ScreenshotRepository defines the interface for screenshot data operations.
type ScreenshotRepository interface {
	Create(screenshot *models.Screenshot) error
	// SetKeyAndSlug fills in the object key and slug, both of which need the
	// generated id and so cannot be part of the insert.
	SetKeyAndSlug(id int64, key, slug string) error
	SetDimensions(id int64, width, height int) error
	FindByID(id int64) (*models.Screenshot, error)
	FindBySlug(slug string) (*models.Screenshot, error)
	GetByGame(gameID int64) ([]models.Screenshot, error)
	// Neighbor returns the screenshot adjacent to the given one within the
	// same game, or nil when there is none in that direction.
	Neighbor(screenshot *models.Screenshot, next bool) (*models.Screenshot, error)
	Delete(id int64) error
}

type screenshotRepository struct {
	db *gorm.DB
}

func NewScreenshotRepository(db *gorm.DB) ScreenshotRepository {
	return &screenshotRepository{db: db}
}

func (r *screenshotRepository) Create(screenshot *models.Screenshot) error {
	return translateError(r.db.Create(screenshot).Error)
}

func (r *screenshotRepository) SetKeyAndSlug(id int64, key, slug string) error {
	return translateError(r.db.Model(&models.Screenshot{}).
		Where("id = ?", id).
		Updates(map[string]any{"picture": key, "slug": slug}).Error)
}

func (r *screenshotRepository) SetDimensions(id int64, width, height int) error {
	return r.db.Model(&models.Screenshot{}).
		Where("id = ?", id).
		Updates(map[string]any{"width": width, "height": height}).Error
}

func (r *screenshotRepository) FindByID(id int64) (*models.Screenshot, error) {
	var screenshot models.Screenshot
	err := r.db.Preload("User").Preload("Game").First(&screenshot, id).Error
	if err != nil {
		return nil, err
	}
	return &screenshot, nil
}

func (r *screenshotRepository) FindBySlug(slug string) (*models.Screenshot, error) {
	var screenshot models.Screenshot
	err := r.db.Preload("User").Preload("Game").
		Where("slug = ?", slug).First(&screenshot).Error
	if err != nil {
		return nil, err
	}
	return &screenshot, nil
}

func (r *screenshotRepository) GetByGame(gameID int64) ([]models.Screenshot, error) {
	var screenshots []models.Screenshot
	err := r.db.Preload("User").
		Where("game_id = ?", gameID).
		Order("id asc").
		Find(&screenshots).Error
	if err != nil {
		return nil, err
	}
	return screenshots, nil
}

func (r *screenshotRepository) Neighbor(screenshot *models.Screenshot, next bool) (*models.Screenshot, error) {
	var neighbor models.Screenshot
	q := r.db.Where("game_id = ?", screenshot.GameID)
	if next {
		q = q.Where("id > ?", screenshot.ID).Order("id asc")
	} else {
		q = q.Where("id < ?", screenshot.ID).Order("id desc")
	}
	err := q.First(&neighbor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &neighbor, nil
}

func (r *screenshotRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Screenshot{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
