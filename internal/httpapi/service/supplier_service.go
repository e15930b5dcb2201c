package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/repository"
	"gamesarchive/internal/storage/s3"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSupplierNotFound = errors.New("supplier not found")

type SupplierService interface {
	CreateSupplier(create dto.CreateSupplierDTO) (*dto.SupplierResponse, error)
	UpdateSupplier(id int64, update dto.UpdateSupplierDTO) (*dto.SupplierResponse, error)
	DeleteSupplier(id int64) error
	GetSupplier(id int64) (*dto.SupplierResponse, error)
	ListSuppliers(page, pageSize int) (*dto.PaginatedSupplierResponse, error)
	UploadLogo(ctx context.Context, id int64, body io.Reader, contentType string) (*dto.SupplierResponse, error)
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	store        s3.ObjectStore
}

func NewSupplierService(supplierRepo repository.SupplierRepository, store s3.ObjectStore) SupplierService {
	return &supplierService{supplierRepo: supplierRepo, store: store}
}

func (s *supplierService) CreateSupplier(create dto.CreateSupplierDTO) (*dto.SupplierResponse, error) {
	supplier := create.ToModel()
	if err := s.supplierRepo.Create(&supplier); err != nil {
		return nil, err
	}
	return dto.FromModelToSupplierResponse(&supplier), nil
}

func (s *supplierService) UpdateSupplier(id int64, update dto.UpdateSupplierDTO) (*dto.SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		supplier.Name = *update.Name
	}
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return dto.FromModelToSupplierResponse(supplier), nil
}

func (s *supplierService) DeleteSupplier(id int64) error {
	err := s.supplierRepo.Delete(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSupplierNotFound
	}
	return err
}

func (s *supplierService) GetSupplier(id int64) (*dto.SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}
	return dto.FromModelToSupplierResponse(supplier), nil
}

func (s *supplierService) ListSuppliers(page, pageSize int) (*dto.PaginatedSupplierResponse, error) {
	suppliers, total, err := s.supplierRepo.List(page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, *dto.FromModelToSupplierResponse(&suppliers[i]))
	}
	return dto.NewPaginatedSupplierResponse(responses, int(total), page, pageSize), nil
}

func (s *supplierService) UploadLogo(ctx context.Context, id int64, body io.Reader, contentType string) (*dto.SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("suppliers/%d/logo/%s", id, uuid.New().String())
	if err := s.store.Upload(ctx, key, body, contentType); err != nil {
		return nil, err
	}

	supplier.Logo = key
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return dto.FromModelToSupplierResponse(supplier), nil
}
