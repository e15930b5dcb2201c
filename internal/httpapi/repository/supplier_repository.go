package repository

import (
	"errors"

	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// SupplierRepository defines the interface for supplier data operations.
type SupplierRepository interface {
	Create(supplier *models.Supplier) error
	Update(supplier *models.Supplier) error
	Delete(id int64) error
	FindByID(id int64) (*models.Supplier, error)
	FindByNameSubstring(name string) (*models.Supplier, error)
	List(page, pageSize int) ([]models.Supplier, int64, error)
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(supplier *models.Supplier) error {
	return translateError(r.db.Create(supplier).Error)
}

func (r *supplierRepository) Update(supplier *models.Supplier) error {
	return translateError(r.db.Save(supplier).Error)
}

func (r *supplierRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Supplier{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *supplierRepository) FindByID(id int64) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// FindByNameSubstring returns the supplier whose name contains the given text
// case-insensitively. Several suppliers can match; the one with the lowest id
// wins so the result is stable. A miss returns (nil, nil), not an error, since
// catalog entries without branding are normal.
func (r *supplierRepository) FindByNameSubstring(name string) (*models.Supplier, error) {
	if name == "" {
		return nil, nil
	}
	var supplier models.Supplier
	err := r.db.Where("name ILIKE ?", "%"+name+"%").
		Order("id asc").
		First(&supplier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) List(page, pageSize int) ([]models.Supplier, int64, error) {
	var suppliers []models.Supplier
	var total int64

	if err := r.db.Model(&models.Supplier{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("id desc").Limit(pageSize).Offset(offset).Find(&suppliers).Error
	if err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}
