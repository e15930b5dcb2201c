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
	ErrConsoleNotFound  = errors.New("console not found")
	ErrConsoleNameInUse = errors.New("a console with this name already exists")
)

type ConsoleService interface {
	CreateConsole(ownerID string, create dto.CreateConsoleDTO) (*dto.ConsoleResponse, error)
	UpdateConsole(consoleID int64, actor *Claims, update dto.UpdateConsoleDTO) (*dto.ConsoleResponse, error)
	DeleteConsole(consoleID int64, actor *Claims) error
	GetConsole(consoleID int64) (*dto.ConsoleResponse, error)
	ListConsoles(query string, page, pageSize int) (*dto.PaginatedConsoleResponse, error)
	UploadCover(ctx context.Context, consoleID int64, actor *Claims, body io.Reader, contentType string) (*dto.ConsoleResponse, error)
	UploadLogo(ctx context.Context, consoleID int64, actor *Claims, body io.Reader, contentType string) (*dto.ConsoleResponse, error)
}

type consoleService struct {
	consoleRepo  repository.ConsoleRepository
	supplierRepo repository.SupplierRepository
	ratingRepo   repository.RatingRepository
	store        s3.ObjectStore
}

func NewConsoleService(
	consoleRepo repository.ConsoleRepository,
	supplierRepo repository.SupplierRepository,
	ratingRepo repository.RatingRepository,
	store s3.ObjectStore,
) ConsoleService {
	return &consoleService{
		consoleRepo:  consoleRepo,
		supplierRepo: supplierRepo,
		ratingRepo:   ratingRepo,
		store:        store,
	}
}

func (s *consoleService) CreateConsole(ownerID string, create dto.CreateConsoleDTO) (*dto.ConsoleResponse, error) {
	console := create.ToModel()
	console.OwnerID = &ownerID

	if err := s.consoleRepo.Create(&console); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConsoleNameInUse
		}
		return nil, err
	}
	return s.GetConsole(console.ID)
}

func (s *consoleService) UpdateConsole(consoleID int64, actor *Claims, update dto.UpdateConsoleDTO) (*dto.ConsoleResponse, error) {
	console, err := s.consoleRepo.FindByID(consoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsoleNotFound
		}
		return nil, err
	}

	if !canModify(console.OwnerID, actor) {
		return nil, ErrNotOwner
	}

	update.ApplyTo(console)
	if err := s.consoleRepo.Update(console); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConsoleNameInUse
		}
		return nil, err
	}
	return s.GetConsole(consoleID)
}

func (s *consoleService) DeleteConsole(consoleID int64, actor *Claims) error {
	console, err := s.consoleRepo.FindByID(consoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConsoleNotFound
		}
		return err
	}

	if !canModify(console.OwnerID, actor) {
		return ErrNotOwner
	}

	return s.consoleRepo.Delete(consoleID)
}

func (s *consoleService) GetConsole(consoleID int64) (*dto.ConsoleResponse, error) {
	console, err := s.consoleRepo.FindByID(consoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsoleNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToConsoleResponse(console)
	if err := s.decorate(resp, console); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *consoleService) ListConsoles(query string, page, pageSize int) (*dto.PaginatedConsoleResponse, error) {
	var (
		consoles []models.Console
		total    int64
		err      error
	)
	if query != "" {
		consoles, total, err = s.consoleRepo.Search(query, page, pageSize)
	} else {
		consoles, total, err = s.consoleRepo.List(page, pageSize)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ConsoleResponse, 0, len(consoles))
	for i := range consoles {
		resp := dto.FromModelToConsoleResponse(&consoles[i])
		if err := s.decorate(resp, &consoles[i]); err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return dto.NewPaginatedConsoleResponse(responses, int(total), page, pageSize), nil
}

func (s *consoleService) UploadCover(ctx context.Context, consoleID int64, actor *Claims, body io.Reader, contentType string) (*dto.ConsoleResponse, error) {
	return s.uploadImage(ctx, consoleID, actor, body, contentType, "cover")
}

func (s *consoleService) UploadLogo(ctx context.Context, consoleID int64, actor *Claims, body io.Reader, contentType string) (*dto.ConsoleResponse, error) {
	return s.uploadImage(ctx, consoleID, actor, body, contentType, "logo")
}

func (s *consoleService) uploadImage(ctx context.Context, consoleID int64, actor *Claims, body io.Reader, contentType, kind string) (*dto.ConsoleResponse, error) {
	console, err := s.consoleRepo.FindByID(consoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConsoleNotFound
		}
		return nil, err
	}

	if !canModify(console.OwnerID, actor) {
		return nil, ErrNotOwner
	}

	key := fmt.Sprintf("consoles/%d/%s/%s", consoleID, kind, uuid.New().String())
	if err := s.store.Upload(ctx, key, body, contentType); err != nil {
		return nil, err
	}

	if kind == "logo" {
		console.Logo = &key
	} else {
		console.CoverImage = &key
	}
	if err := s.consoleRepo.Update(console); err != nil {
		return nil, err
	}
	return s.GetConsole(consoleID)
}

func (s *consoleService) decorate(resp *dto.ConsoleResponse, console *models.Console) error {
	avg, err := s.ratingRepo.CalculateAverage(models.KindConsole, console.ID)
	if err != nil {
		return err
	}
	count, err := s.ratingRepo.CountByEntity(models.KindConsole, console.ID)
	if err != nil {
		return err
	}
	resp.AverageRating = avg
	resp.RatingCount = count

	if console.Manufacturer != nil {
		supplier, err := s.supplierRepo.FindByNameSubstring(*console.Manufacturer)
		if err != nil {
			return err
		}
		if supplier != nil {
			resp.SupplierLogo = &supplier.Logo
		}
	}
	return nil
}
