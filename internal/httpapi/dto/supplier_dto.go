package dto

import (
	"gamesarchive/internal/httpapi/models"
)

// CreateSupplierDTO used for POST /api/suppliers (staff only)
type CreateSupplierDTO struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateSupplierDTO used for PUT /api/suppliers/:id
type UpdateSupplierDTO struct {
	Name *string `json:"name,omitempty" binding:"omitempty,max=100"`
}

// SupplierResponse DTO for responses
type SupplierResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

func (d CreateSupplierDTO) ToModel() models.Supplier {
	return models.Supplier{Name: d.Name}
}

func FromModelToSupplierResponse(s *models.Supplier) *SupplierResponse {
	return &SupplierResponse{ID: s.ID, Name: s.Name, Logo: s.Logo}
}

// PaginatedSupplierResponse for returning paginated suppliers
type PaginatedSupplierResponse struct {
	Data       []SupplierResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

func NewPaginatedSupplierResponse(data []SupplierResponse, total, page, pageSize int) *PaginatedSupplierResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return &PaginatedSupplierResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
