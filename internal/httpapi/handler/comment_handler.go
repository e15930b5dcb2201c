package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/middleware"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves comments for both games and consoles. Submission is
// form-encoded and browser-shaped: every outcome is a 303 redirect back to
// the entity page, with a URL fragment steering the browser to the right
// spot. Rejected text survives exactly one redirect via the form stash.
type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment routes under an entity group. The public
// group must carry OptionalAuthMiddleware: the submit route handles
// anonymous callers itself by redirecting to the login page.
func (h *CommentHandler) RegisterRoutes(public *gin.RouterGroup, kind models.EntityKind, param string) {
	public.GET("/:"+param+"/comments", h.list(kind, param))
	public.POST("/:"+param+"/comments", h.submit(kind, param))
}

// RegisterUserRoutes registers the caller's own comment listing. The group
// must carry AuthMiddleware.
func (h *CommentHandler) RegisterUserRoutes(authed *gin.RouterGroup) {
	authed.GET("/users/me/comments", h.ListMine)
}

// entityPage is the frontend path the browser is sent back to.
func entityPage(kind models.EntityKind, entityID int64) string {
	if kind == models.KindConsole {
		return fmt.Sprintf("/consoles/%d", entityID)
	}
	return fmt.Sprintf("/games/%d", entityID)
}

// submit stores a comment and redirects back to the entity page
// POST /api/games/:game_id/comments
func (h *CommentHandler) submit(kind models.EntityKind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
			return
		}

		page := entityPage(kind, entityID)

		userID, exists := c.Get("userID")
		if !exists {
			// Anonymous submission: send the browser to the login page and
			// back here afterwards.
			c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(page))
			return
		}

		var form dto.CreateCommentForm
		// A missing field is handled by the service as an empty comment so
		// the rejection flows through the stash like any other.
		_ = c.ShouldBind(&form)

		comment, err := h.commentService.SubmitComment(c.Request.Context(), userID.(string), kind, entityID, form.Comment)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCommentEmpty), errors.Is(err, service.ErrCommentTooLong):
				// The rejected text is stashed; the fragment lands the
				// browser on the form where it will be replayed.
				c.Redirect(http.StatusSeeOther, page+"#comment-form")
			case errors.Is(err, service.ErrEntityNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save comment"})
			}
			return
		}

		c.Redirect(http.StatusSeeOther, fmt.Sprintf("%s#comment-%d", page, comment.ID))
	}
}

// list returns the entity's comments newest-first, attaching the viewer's
// stashed rejected submission (if any) exactly once
// GET /api/games/:game_id/comments
func (h *CommentHandler) list(kind models.EntityKind, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
			return
		}

		page, pageSize := pagination(c)

		viewerID := ""
		if userID, exists := c.Get("userID"); exists {
			viewerID = userID.(string)
		}

		comments, err := h.commentService.GetEntityComments(c.Request.Context(), viewerID, kind, entityID, page, pageSize)
		if err != nil {
			if errors.Is(err, service.ErrEntityNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
			return
		}

		c.JSON(http.StatusOK, comments)
	}
}

// ListMine returns the caller's comments across all entities, newest-first
// GET /api/users/me/comments
func (h *CommentHandler) ListMine(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, pageSize := pagination(c)

	comments, err := h.commentService.GetUserComments(userID.(string), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment removes a comment; author or staff only
// DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("comment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	if err := h.commentService.DeleteComment(commentID, middleware.ClaimsFromContext(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
