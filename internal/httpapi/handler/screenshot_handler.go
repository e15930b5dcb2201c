package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gamesarchive/internal/httpapi/middleware"
	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ScreenshotHandler struct {
	screenshotService service.ScreenshotService
	maxUploadBytes    int64
}

func NewScreenshotHandler(screenshotService service.ScreenshotService, maxUploadBytes int64) *ScreenshotHandler {
	return &ScreenshotHandler{
		screenshotService: screenshotService,
		maxUploadBytes:    maxUploadBytes,
	}
}

// RegisterGameRoutes mounts the per-game gallery routes.
func (h *ScreenshotHandler) RegisterGameRoutes(public, authed *gin.RouterGroup) {
	public.GET("/:game_id/screenshots", h.ListForGame)
	authed.POST("/:game_id/screenshots", h.Upload)
}

// RegisterRoutes mounts slug lookup and deletion.
func (h *ScreenshotHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/screenshots/:slug", h.GetBySlug)
	authed.DELETE("/screenshots/id/:screenshot_id", h.Delete)
}

// Upload stores a screenshot and queues it for dimension processing
// POST /api/games/:game_id/screenshots
func (h *ScreenshotHandler) Upload(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	file, header, err := openImageUpload(c, h.maxUploadBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	screenshot, err := h.screenshotService.Upload(c.Request.Context(), userID.(string), gameID, file, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload screenshot"})
		return
	}

	c.JSON(http.StatusCreated, screenshot)
}

// GetBySlug returns one screenshot with its gallery neighbors
// GET /api/screenshots/:slug
func (h *ScreenshotHandler) GetBySlug(c *gin.Context) {
	screenshot, err := h.screenshotService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrScreenshotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load screenshot"})
		return
	}

	c.JSON(http.StatusOK, screenshot)
}

// ListForGame returns the game's gallery in upload order
// GET /api/games/:game_id/screenshots
func (h *ScreenshotHandler) ListForGame(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	screenshots, err := h.screenshotService.GetGameScreenshots(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load screenshots"})
		return
	}

	c.JSON(http.StatusOK, screenshots)
}

// Delete removes a screenshot and redirects to a neighboring one in the
// gallery, or back to the game page when the gallery is empty
// DELETE /api/screenshots/id/:screenshot_id
func (h *ScreenshotHandler) Delete(c *gin.Context) {
	screenshotID, err := strconv.ParseInt(c.Param("screenshot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screenshot ID"})
		return
	}

	landing, err := h.screenshotService.Delete(screenshotID, middleware.ClaimsFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScreenshotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete screenshot"})
		}
		return
	}

	resp := gin.H{"message": "screenshot deleted"}
	if landing != "" {
		resp["next"] = fmt.Sprintf("/screenshots/%s", landing)
	}
	c.JSON(http.StatusOK, resp)
}
