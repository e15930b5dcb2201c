package repository

import (
	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindFallbackOwner(excludeID string) (*models.User, error)
	List(page, pageSize int, search string) ([]models.User, int64, error)
	DeleteAndReassign(userID, fallbackOwnerID string) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return translateUserError(r.db.Create(user).Error)
}

func (r *userRepository) Update(user *models.User) error {
	return translateUserError(r.db.Save(user).Error)
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindFallbackOwner returns the longest-standing staff user other than
// excludeID. Catalog entities are reassigned to this account when their
// owner's account is deleted.
func (r *userRepository) FindFallbackOwner(excludeID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("staff = ? AND id <> ?", true, excludeID).
		Order("created_at asc").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(page, pageSize int, search string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	q := r.db.Model(&models.User{})
	if search != "" {
		p := "%" + search + "%"
		q = q.Where("username ILIKE ? OR email ILIKE ? OR COALESCE(first_name,'') ILIKE ? OR COALESCE(last_name,'') ILIKE ?", p, p, p, p)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := q.Order("id desc").Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// DeleteAndReassign removes the user while handing their catalog entries over
// to the fallback owner in the same transaction. The user's ratings, comments,
// reviews and screenshots go away with the row via FK cascade; games and
// consoles survive account deletion.
func (r *userRepository) DeleteAndReassign(userID, fallbackOwnerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Game{}).Where("owner_id = ?", userID).
			Update("owner_id", fallbackOwnerID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Console{}).Where("owner_id = ?", userID).
			Update("owner_id", fallbackOwnerID).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, "id = ?", userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
