package repository

import (
	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// ConsoleRepository defines the interface for console data operations.
type ConsoleRepository interface {
	Create(console *models.Console) error
	Update(console *models.Console) error
	Delete(id int64) error
	FindByID(id int64) (*models.Console, error)
	FindByIDs(ids []int64) ([]models.Console, error)
	List(page, pageSize int) ([]models.Console, int64, error)
	Search(query string, page, pageSize int) ([]models.Console, int64, error)
}

type consoleRepository struct {
	db *gorm.DB
}

func NewConsoleRepository(db *gorm.DB) ConsoleRepository {
	return &consoleRepository{db: db}
}

func (r *consoleRepository) Create(console *models.Console) error {
	return translateError(r.db.Create(console).Error)
}

func (r *consoleRepository) Update(console *models.Console) error {
	return translateError(r.db.Save(console).Error)
}

// Delete removes the console and its kind-scoped ratings and comments in one
// transaction. Games linked through the join table stay; only the link rows
// are dropped.
func (r *consoleRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_kind = ? AND entity_id = ?", models.KindConsole, id).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entity_kind = ? AND entity_id = ?", models.KindConsole, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		console := models.Console{ID: id}
		if err := tx.Model(&console).Association("Games").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&models.Console{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *consoleRepository) FindByID(id int64) (*models.Console, error) {
	var console models.Console
	err := r.db.Preload("Owner").Preload("Games").First(&console, id).Error
	if err != nil {
		return nil, err
	}
	return &console, nil
}

func (r *consoleRepository) FindByIDs(ids []int64) ([]models.Console, error) {
	var consoles []models.Console
	if len(ids) == 0 {
		return consoles, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&consoles).Error; err != nil {
		return nil, err
	}
	return consoles, nil
}

func (r *consoleRepository) List(page, pageSize int) ([]models.Console, int64, error) {
	return r.page(r.db.Model(&models.Console{}), page, pageSize)
}

// Search matches name and manufacturer case-insensitively, newest-first.
func (r *consoleRepository) Search(query string, page, pageSize int) ([]models.Console, int64, error) {
	p := "%" + query + "%"
	q := r.db.Model(&models.Console{}).
		Where("name ILIKE ? OR COALESCE(manufacturer,'') ILIKE ?", p, p)
	return r.page(q, page, pageSize)
}

func (r *consoleRepository) page(q *gorm.DB, page, pageSize int) ([]models.Console, int64, error) {
	var consoles []models.Console
	var total int64

	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Owner").
		Order("id desc").
		Limit(pageSize).Offset(offset).
		Find(&consoles).Error
	if err != nil {
		return nil, 0, err
	}
	return consoles, total, nil
}
