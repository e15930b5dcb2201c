package handler

import (
	"net/http"

	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the read-only staff surface: browse accounts and the
// whole catalog without the public filtering.
type AdminHandler struct {
	userService    service.UserService
	gameService    service.GameService
	consoleService service.ConsoleService
}

func NewAdminHandler(
	userService service.UserService,
	gameService service.GameService,
	consoleService service.ConsoleService,
) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		gameService:    gameService,
		consoleService: consoleService,
	}
}

// RegisterRoutes registers the admin routes. The group must carry
// AuthMiddleware and RequireStaff.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/games", h.ListGames)
		admin.GET("/consoles", h.ListConsoles)
	}
}

// ListUsers returns accounts, filtered by ?q= against name and email fields
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pagination(c)

	users, err := h.userService.ListUsers(page, pageSize, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListGames returns the game catalog for staff
// GET /api/admin/games
func (h *AdminHandler) ListGames(c *gin.Context) {
	page, pageSize := pagination(c)

	games, err := h.gameService.ListGames(c.Query("q"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list games"})
		return
	}

	c.JSON(http.StatusOK, games)
}

// ListConsoles returns the console catalog for staff
// GET /api/admin/consoles
func (h *AdminHandler) ListConsoles(c *gin.Context) {
	page, pageSize := pagination(c)

	consoles, err := h.consoleService.ListConsoles(c.Query("q"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list consoles"})
		return
	}

	c.JSON(http.StatusOK, consoles)
}
