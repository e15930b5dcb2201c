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

type GameHandler struct {
	gameService    service.GameService
	maxUploadBytes int64
}

func NewGameHandler(gameService service.GameService, maxUploadBytes int64) *GameHandler {
	return &GameHandler{
		gameService:    gameService,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers game catalog routes. public carries
// OptionalAuthMiddleware, authed carries AuthMiddleware; both must share the
// /games prefix.
func (h *GameHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:game_id", h.Get)

	authed.POST("", h.Create)
	authed.PUT("/:game_id", h.Update)
	authed.DELETE("/:game_id", h.Delete)
	authed.POST("/:game_id/cover", h.UploadCover)
}

// List returns games, filtered by ?q= as a case-insensitive substring
// GET /api/games?q=mario&page=1&page_size=20
func (h *GameHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	query := c.Query("q")

	games, err := h.gameService.ListGames(query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list games"})
		return
	}

	c.JSON(http.StatusOK, games)
}

// Get returns one game with its rating aggregate
// GET /api/games/:game_id
func (h *GameHandler) Get(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	game, err := h.gameService.GetGame(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load game"})
		return
	}

	c.JSON(http.StatusOK, game)
}

// Create adds a game owned by the caller
// POST /api/games
func (h *GameHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateGameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(userID.(string), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleInUse):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownConsole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create game"})
		}
		return
	}

	c.JSON(http.StatusCreated, game)
}

// Update applies a partial update; owner or staff only
// PUT /api/games/:game_id
func (h *GameHandler) Update(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	var req dto.UpdateGameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.UpdateGame(gameID, middleware.ClaimsFromContext(c), req)
	if err != nil {
		writeGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

// Delete removes a game and everything attached to it; owner or staff only
// DELETE /api/games/:game_id
func (h *GameHandler) Delete(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	if err := h.gameService.DeleteGame(gameID, middleware.ClaimsFromContext(c)); err != nil {
		writeGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "game deleted"})
}

// UploadCover replaces the game's cover image; owner or staff only
// POST /api/games/:game_id/cover
func (h *GameHandler) UploadCover(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	file, header, err := openImageUpload(c, h.maxUploadBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	game, err := h.gameService.UploadCover(c.Request.Context(), gameID, middleware.ClaimsFromContext(c), file, header.Header.Get("Content-Type"))
	if err != nil {
		writeGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func writeGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTitleInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownConsole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pagination parses ?page= and ?page_size= with sane bounds.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
