package repository

import (
	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByEntity(kind models.EntityKind, entityID int64, page, pageSize int) ([]models.Comment, int64, error)
	GetByUser(userID string, page, pageSize int) ([]models.Comment, int64, error)
	FindByID(id int64) (*models.Comment, error)
	Delete(id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return translateError(r.db.Create(comment).Error)
}

func (r *commentRepository) GetByEntity(kind models.EntityKind, entityID int64, page, pageSize int) ([]models.Comment, int64, error) {
	q := r.db.Model(&models.Comment{}).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID)
	return r.page(q, page, pageSize)
}

func (r *commentRepository) GetByUser(userID string, page, pageSize int) ([]models.Comment, int64, error) {
	q := r.db.Model(&models.Comment{}).Where("user_id = ?", userID)
	return r.page(q, page, pageSize)
}

func (r *commentRepository) FindByID(id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) page(q *gorm.DB, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("User").
		Order("created_at desc, id desc").
		Limit(pageSize).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
