package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// RatingHandler serves ratings for both games and consoles; RegisterRoutes is
// called once per entity kind with that group's id parameter name.
type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating routes under an entity group.
func (h *RatingHandler) RegisterRoutes(public, authed *gin.RouterGroup, kind models.EntityKind, param string) {
	public.GET("/:"+param+"/ratings", h.list(kind, param))
	public.GET("/:"+param+"/ratings/average", h.average(kind, param))

	authed.POST("/:"+param+"/rate", h.rate(kind, param))
	authed.GET("/:"+param+"/ratings/me", h.mine(kind, param))
}

// rate records the caller's 1-5 score, replacing any previous one
// POST /api/games/:game_id/rate
func (h *RatingHandler) rate(kind models.EntityKind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
			return
		}

		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		var req dto.CreateRatingDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rating, err := h.ratingService.RateEntity(userID.(string), kind, entityID, req.Rating)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEntityNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, service.ErrInvalidRating):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save rating"})
			}
			return
		}

		c.JSON(http.StatusOK, rating)
	}
}

// mine returns the caller's own rating
// GET /api/games/:game_id/ratings/me
func (h *RatingHandler) mine(kind models.EntityKind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
			return
		}

		userID, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}

		rating, err := h.ratingService.GetUserRating(userID.(string), kind, entityID)
		if err != nil {
			if errors.Is(err, service.ErrRatingNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rating"})
			return
		}

		c.JSON(http.StatusOK, rating)
	}
}

// list returns every rating for the entity
// GET /api/games/:game_id/ratings
func (h *RatingHandler) list(kind models.EntityKind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
			return
		}

		ratings, err := h.ratingService.GetEntityRatings(kind, entityID)
		if err != nil {
			if errors.Is(err, service.ErrEntityNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ratings"})
			return
		}

		c.JSON(http.StatusOK, ratings)
	}
}

// average returns the mean score (0 when unrated) and the vote count
// GET /api/games/:game_id/ratings/average
func (h *RatingHandler) average(kind models.EntityKind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
			return
		}

		summary, err := h.ratingService.GetEntitySummary(kind, entityID)
		if err != nil {
			if errors.Is(err, service.ErrEntityNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rating summary"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
