package repository

import (
	"gamesarchive/internal/httpapi/models"

	"gorm.io/gorm"
)

// GameRepository defines the interface for game data operations.
type GameRepository interface {
	Create(game *models.Game) error
	Update(game *models.Game) error
	Delete(id int64) error
	FindByID(id int64) (*models.Game, error)
	List(page, pageSize int) ([]models.Game, int64, error)
	Search(query string, page, pageSize int) ([]models.Game, int64, error)
	ReplaceConsoles(game *models.Game, consoles []models.Console) error
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(game *models.Game) error {
	return translateError(r.db.Create(game).Error)
}

func (r *gameRepository) Update(game *models.Game) error {
	return translateError(r.db.Save(game).Error)
}

// Delete removes the game together with its kind-scoped ratings and comments,
// which are not covered by foreign keys because the entity id column is shared
// between games and consoles. Reviews and screenshots cascade via FK.
func (r *gameRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_kind = ? AND entity_id = ?", models.KindGame, id).
			Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entity_kind = ? AND entity_id = ?", models.KindGame, id).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		game := models.Game{ID: id}
		if err := tx.Model(&game).Association("Consoles").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&models.Game{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *gameRepository) FindByID(id int64) (*models.Game, error) {
	var game models.Game
	err := r.db.Preload("Owner").Preload("Consoles").First(&game, id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) List(page, pageSize int) ([]models.Game, int64, error) {
	return r.page(r.db.Model(&models.Game{}), page, pageSize)
}

// Search matches the query as a case-insensitive substring against the game's
// title, developer, genre, the names of linked consoles and the owner's
// username. Results come back newest-first by id.
func (r *gameRepository) Search(query string, page, pageSize int) ([]models.Game, int64, error) {
	p := "%" + query + "%"
	q := r.db.Model(&models.Game{}).
		Joins("LEFT JOIN game_consoles gc ON gc.game_id = games.id").
		Joins("LEFT JOIN consoles c ON c.id = gc.console_id").
		Joins("LEFT JOIN users u ON u.id = games.owner_id").
		Where(`games.title ILIKE ? OR COALESCE(games.developer,'') ILIKE ?
			OR COALESCE(games.genre,'') ILIKE ? OR c.name ILIKE ?
			OR u.username ILIKE ?`, p, p, p, p, p).
		Distinct("games.*")
	return r.page(q, page, pageSize)
}

func (r *gameRepository) page(q *gorm.DB, page, pageSize int) ([]models.Game, int64, error) {
	var games []models.Game
	var total int64

	countQ := q.Session(&gorm.Session{})
	if err := countQ.Distinct("games.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := q.Preload("Owner").Preload("Consoles").
		Order("games.id desc").
		Limit(pageSize).Offset(offset).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

func (r *gameRepository) ReplaceConsoles(game *models.Game, consoles []models.Console) error {
	return r.db.Model(game).Association("Consoles").Replace(consoles)
}
