package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gamesarchive/internal/formstash"
	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"

	"gorm.io/gorm"
)

var (
	ErrCommentEmpty    = errors.New("comment must not be empty")
	ErrCommentTooLong  = errors.New("comment must be at most 700 characters")
	ErrCommentNotFound = errors.New("comment not found")
)

type CommentService interface {
	// SubmitComment validates and stores the comment. On a validation
	// failure the raw submission is stashed for the next page load and the
	// validation error is returned.
	SubmitComment(ctx context.Context, userID string, kind models.EntityKind, entityID int64, text string) (*dto.CommentResponse, error)
	// GetEntityComments lists the entity's comments newest-first and, when
	// the viewer has a stashed rejected submission for this entity,
	// attaches it (consuming the stash).
	GetEntityComments(ctx context.Context, viewerID string, kind models.EntityKind, entityID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	GetUserComments(userID string, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	DeleteComment(commentID int64, actor *Claims) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	gameRepo    repository.GameRepository
	consoleRepo repository.ConsoleRepository
	stash       *formstash.Stash
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	gameRepo repository.GameRepository,
	consoleRepo repository.ConsoleRepository,
	stash *formstash.Stash,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		gameRepo:    gameRepo,
		consoleRepo: consoleRepo,
		stash:       stash,
	}
}

func (s *commentService) SubmitComment(ctx context.Context, userID string, kind models.EntityKind, entityID int64, text string) (*dto.CommentResponse, error) {
	if err := s.entityExists(kind, entityID); err != nil {
		return nil, err
	}

	if vErr := validateComment(text); vErr != nil {
		// Keep the rejected text so the form can be re-rendered with it
		// exactly once.
		entry := formstash.Entry{Comment: text, Error: vErr.Error()}
		if err := s.stash.Put(ctx, userID, kind, entityID, entry); err != nil {
			return nil, err
		}
		return nil, vErr
	}

	comment := &models.Comment{
		UserID:     userID,
		EntityKind: kind,
		EntityID:   entityID,
		Comment:    text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// Reload with user data
	comment, err := s.commentRepo.FindByID(comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) GetEntityComments(ctx context.Context, viewerID string, kind models.EntityKind, entityID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if err := s.entityExists(kind, entityID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.GetByEntity(kind, entityID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	resp := dto.NewPaginatedCommentResponse(responses, int(total), page, pageSize)

	if viewerID != "" {
		entry, err := s.stash.Take(ctx, viewerID, kind, entityID)
		if err != nil {
			return nil, err
		}
		if entry != nil {
			resp.Stashed = &dto.StashedCommentResponse{
				Comment: entry.Comment,
				Error:   entry.Error,
			}
		}
	}

	return resp, nil
}

func (s *commentService) GetUserComments(userID string, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	comments, total, err := s.commentRepo.GetByUser(userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedCommentResponse(responses, int(total), page, pageSize), nil
}

// DeleteComment removes the comment if the actor wrote it or is staff.
func (s *commentService) DeleteComment(commentID int64, actor *Claims) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if actor == nil || (!actor.Staff && comment.UserID != actor.UserID) {
		return ErrNotOwner
	}

	return s.commentRepo.Delete(commentID)
}

func validateComment(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrCommentEmpty
	}
	if utf8.RuneCountInString(text) > models.MaxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

func (s *commentService) entityExists(kind models.EntityKind, entityID int64) error {
	var err error
	switch kind {
	case models.KindGame:
		_, err = s.gameRepo.FindByID(entityID)
	case models.KindConsole:
		_, err = s.consoleRepo.FindByID(entityID)
	default:
		return ErrEntityNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEntityNotFound
	}
	return err
}
