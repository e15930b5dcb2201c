package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	supplierService service.SupplierService
	maxUploadBytes  int64
}

func NewSupplierHandler(supplierService service.SupplierService, maxUploadBytes int64) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// RegisterRoutes registers supplier routes. Reads are public; writes belong
// on a staff-only group.
func (h *SupplierHandler) RegisterRoutes(public, staff *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:supplier_id", h.Get)

	staff.POST("", h.Create)
	staff.PUT("/:supplier_id", h.Update)
	staff.DELETE("/:supplier_id", h.Delete)
	staff.POST("/:supplier_id/logo", h.UploadLogo)
}

// List returns suppliers
// GET /api/suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	suppliers, err := h.supplierService.ListSuppliers(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list suppliers"})
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// Get returns one supplier
// GET /api/suppliers/:supplier_id
func (h *SupplierHandler) Get(c *gin.Context) {
	supplierID, err := strconv.ParseInt(c.Param("supplier_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	supplier, err := h.supplierService.GetSupplier(supplierID)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load supplier"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// Create adds a supplier (staff only)
// POST /api/suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := h.supplierService.CreateSupplier(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// Update renames a supplier (staff only)
// PUT /api/suppliers/:supplier_id
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, err := strconv.ParseInt(c.Param("supplier_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	var req dto.UpdateSupplierDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(supplierID, req)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update supplier"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// Delete removes a supplier (staff only)
// DELETE /api/suppliers/:supplier_id
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, err := strconv.ParseInt(c.Param("supplier_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	if err := h.supplierService.DeleteSupplier(supplierID); err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "supplier deleted"})
}

// UploadLogo replaces the supplier's logo (staff only)
// POST /api/suppliers/:supplier_id/logo
func (h *SupplierHandler) UploadLogo(c *gin.Context) {
	supplierID, err := strconv.ParseInt(c.Param("supplier_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier ID"})
		return
	}

	file, header, err := openImageUpload(c, h.maxUploadBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	supplier, err := h.supplierService.UploadLogo(c.Request.Context(), supplierID, file, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload logo"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}
