package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/middleware"
	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ConsoleHandler struct {
	consoleService service.ConsoleService
	maxUploadBytes int64
}

func NewConsoleHandler(consoleService service.ConsoleService, maxUploadBytes int64) *ConsoleHandler {
	return &ConsoleHandler{
		consoleService: consoleService,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers console catalog routes.
func (h *ConsoleHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:console_id", h.Get)

	authed.POST("", h.Create)
	authed.PUT("/:console_id", h.Update)
	authed.DELETE("/:console_id", h.Delete)
	authed.POST("/:console_id/cover", h.UploadCover)
	authed.POST("/:console_id/logo", h.UploadLogo)
}

// List returns consoles, filtered by ?q= as a case-insensitive substring
// GET /api/consoles?q=nintendo&page=1&page_size=20
func (h *ConsoleHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	query := c.Query("q")

	consoles, err := h.consoleService.ListConsoles(query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list consoles"})
		return
	}

	c.JSON(http.StatusOK, consoles)
}

// Get returns one console with its rating aggregate
// GET /api/consoles/:console_id
func (h *ConsoleHandler) Get(c *gin.Context) {
	consoleID, err := strconv.ParseInt(c.Param("console_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid console ID"})
		return
	}

	console, err := h.consoleService.GetConsole(consoleID)
	if err != nil {
		if errors.Is(err, service.ErrConsoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load console"})
		return
	}

	c.JSON(http.StatusOK, console)
}

// Create adds a console owned by the caller
// POST /api/consoles
func (h *ConsoleHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateConsoleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	console, err := h.consoleService.CreateConsole(userID.(string), req)
	if err != nil {
		if errors.Is(err, service.ErrConsoleNameInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create console"})
		return
	}

	c.JSON(http.StatusCreated, console)
}

// Update applies a partial update; owner or staff only
// PUT /api/consoles/:console_id
func (h *ConsoleHandler) Update(c *gin.Context) {
	consoleID, err := strconv.ParseInt(c.Param("console_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid console ID"})
		return
	}

	var req dto.UpdateConsoleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	console, err := h.consoleService.UpdateConsole(consoleID, middleware.ClaimsFromContext(c), req)
	if err != nil {
		writeConsoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, console)
}

// Delete removes a console; owner or staff only
// DELETE /api/consoles/:console_id
func (h *ConsoleHandler) Delete(c *gin.Context) {
	consoleID, err := strconv.ParseInt(c.Param("console_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid console ID"})
		return
	}

	if err := h.consoleService.DeleteConsole(consoleID, middleware.ClaimsFromContext(c)); err != nil {
		writeConsoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "console deleted"})
}

// UploadCover replaces the console's cover image
// POST /api/consoles/:console_id/cover
func (h *ConsoleHandler) UploadCover(c *gin.Context) {
	h.uploadImage(c, false)
}

// UploadLogo replaces the console's logo
// POST /api/consoles/:console_id/logo
func (h *ConsoleHandler) UploadLogo(c *gin.Context) {
	h.uploadImage(c, true)
}

func (h *ConsoleHandler) uploadImage(c *gin.Context, logo bool) {
	consoleID, err := strconv.ParseInt(c.Param("console_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid console ID"})
		return
	}

	file, header, err := openImageUpload(c, h.maxUploadBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	actor := middleware.ClaimsFromContext(c)
	contentType := header.Header.Get("Content-Type")

	var console *dto.ConsoleResponse
	if logo {
		console, err = h.consoleService.UploadLogo(c.Request.Context(), consoleID, actor, file, contentType)
	} else {
		console, err = h.consoleService.UploadCover(c.Request.Context(), consoleID, actor, file, contentType)
	}
	if err != nil {
		writeConsoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, console)
}

func writeConsoleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrConsoleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConsoleNameInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
