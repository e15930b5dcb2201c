package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"
	"gamesarchive/internal/storage/s3"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrTitleInUse     = errors.New("a game with this title already exists")
	ErrNotOwner       = errors.New("you don't have permission to modify this entry")
	ErrUnknownConsole = errors.New("one or more console ids do not exist")
)

type GameService interface {
	CreateGame(ownerID string, create dto.CreateGameDTO) (*dto.GameResponse, error)
	UpdateGame(gameID int64, actor *Claims, update dto.UpdateGameDTO) (*dto.GameResponse, error)
	DeleteGame(gameID int64, actor *Claims) error
	GetGame(gameID int64) (*dto.GameResponse, error)
	ListGames(query string, page, pageSize int) (*dto.PaginatedGameResponse, error)
	UploadCover(ctx context.Context, gameID int64, actor *Claims, body io.Reader, contentType string) (*dto.GameResponse, error)
}

type gameService struct {
	gameRepo     repository.GameRepository
	consoleRepo  repository.ConsoleRepository
	supplierRepo repository.SupplierRepository
	ratingRepo   repository.RatingRepository
	store        s3.ObjectStore
}

func NewGameService(
	gameRepo repository.GameRepository,
	consoleRepo repository.ConsoleRepository,
	supplierRepo repository.SupplierRepository,
	ratingRepo repository.RatingRepository,
	store s3.ObjectStore,
) GameService {
	return &gameService{
		gameRepo:     gameRepo,
		consoleRepo:  consoleRepo,
		supplierRepo: supplierRepo,
		ratingRepo:   ratingRepo,
		store:        store,
	}
}

// CreateGame adds a new game owned by the calling user.
func (s *gameService) CreateGame(ownerID string, create dto.CreateGameDTO) (*dto.GameResponse, error) {
	game := create.ToModel()
	game.OwnerID = &ownerID

	if len(create.ConsoleIDs) > 0 {
		consoles, err := s.consoleRepo.FindByIDs(create.ConsoleIDs)
		if err != nil {
			return nil, err
		}
		if len(consoles) != len(create.ConsoleIDs) {
			return nil, ErrUnknownConsole
		}
		game.Consoles = consoles
	}

	if err := s.gameRepo.Create(&game); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTitleInUse
		}
		return nil, err
	}

	return s.GetGame(game.ID)
}

// UpdateGame applies a partial update. Only the owner or staff may edit.
func (s *gameService) UpdateGame(gameID int64, actor *Claims, update dto.UpdateGameDTO) (*dto.GameResponse, error) {
	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if !canModify(game.OwnerID, actor) {
		return nil, ErrNotOwner
	}

	update.ApplyTo(game)

	if update.ConsoleIDs != nil {
		consoles, err := s.consoleRepo.FindByIDs(*update.ConsoleIDs)
		if err != nil {
			return nil, err
		}
		if len(consoles) != len(*update.ConsoleIDs) {
			return nil, ErrUnknownConsole
		}
		if err := s.gameRepo.ReplaceConsoles(game, consoles); err != nil {
			return nil, err
		}
	}

	if err := s.gameRepo.Update(game); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTitleInUse
		}
		return nil, err
	}

	return s.GetGame(gameID)
}

func (s *gameService) DeleteGame(gameID int64, actor *Claims) error {
	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	if !canModify(game.OwnerID, actor) {
		return ErrNotOwner
	}

	return s.gameRepo.Delete(gameID)
}

// GetGame returns the game decorated with its rating aggregate and, when the
// developer matches a supplier, that supplier's logo.
func (s *gameService) GetGame(gameID int64) (*dto.GameResponse, error) {
	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToGameResponse(game)
	if err := s.decorate(resp, game); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListGames returns a page of games, filtered when query is non-empty.
func (s *gameService) ListGames(query string, page, pageSize int) (*dto.PaginatedGameResponse, error) {
	var (
		games []models.Game
		total int64
		err   error
	)
	if query != "" {
		games, total, err = s.gameRepo.Search(query, page, pageSize)
	} else {
		games, total, err = s.gameRepo.List(page, pageSize)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GameResponse, 0, len(games))
	for i := range games {
		resp := dto.FromModelToGameResponse(&games[i])
		if err := s.decorate(resp, &games[i]); err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return dto.NewPaginatedGameResponse(responses, int(total), page, pageSize), nil
}

func (s *gameService) UploadCover(ctx context.Context, gameID int64, actor *Claims, body io.Reader, contentType string) (*dto.GameResponse, error) {
	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if !canModify(game.OwnerID, actor) {
		return nil, ErrNotOwner
	}

	key := fmt.Sprintf("games/%d/cover/%s", gameID, uuid.New().String())
	if err := s.store.Upload(ctx, key, body, contentType); err != nil {
		return nil, err
	}

	game.CoverImage = &key
	if err := s.gameRepo.Update(game); err != nil {
		return nil, err
	}

	return s.GetGame(gameID)
}

func (s *gameService) decorate(resp *dto.GameResponse, game *models.Game) error {
	avg, err := s.ratingRepo.CalculateAverage(models.KindGame, game.ID)
	if err != nil {
		return err
	}
	count, err := s.ratingRepo.CountByEntity(models.KindGame, game.ID)
	if err != nil {
		return err
	}
	resp.AverageRating = avg
	resp.RatingCount = count

	if game.Developer != nil {
		supplier, err := s.supplierRepo.FindByNameSubstring(*game.Developer)
		if err != nil {
			return err
		}
		if supplier != nil {
			resp.SupplierLogo = &supplier.Logo
		}
	}
	return nil
}

// canModify reports whether the actor owns the entry or is staff. Entries
// without an owner are staff-managed.
func canModify(ownerID *string, actor *Claims) bool {
	if actor == nil {
		return false
	}
	if actor.Staff {
		return true
	}
	return ownerID != nil && *ownerID == actor.UserID
}
