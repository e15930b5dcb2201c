package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"
	"gamesarchive/internal/messaging"
	"gamesarchive/internal/storage/s3"

	"gorm.io/gorm"
)

var ErrScreenshotNotFound = errors.New("screenshot not found")

type ScreenshotService interface {
	// Upload stores the image, creates the record with a slug derived from
	// the game title, uploader and id, and queues a job for the dimension
	// worker.
	Upload(ctx context.Context, userID string, gameID int64, body io.Reader, contentType string) (*dto.ScreenshotResponse, error)
	GetBySlug(slug string) (*dto.ScreenshotDetailResponse, error)
	GetGameScreenshots(gameID int64) ([]dto.ScreenshotResponse, error)
	// Delete removes the screenshot and returns the slug of a neighbor in
	// the same game's gallery (next preferred, then previous) so the caller
	// can land somewhere sensible, or "" when the gallery is now empty.
	Delete(id int64, actor *Claims) (string, error)
}

type screenshotService struct {
	screenshotRepo repository.ScreenshotRepository
	gameRepo       repository.GameRepository
	userRepo       repository.UserRepository
	store          s3.ObjectStore
	publisher      messaging.Publisher
}

func NewScreenshotService(
	screenshotRepo repository.ScreenshotRepository,
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	store s3.ObjectStore,
	publisher messaging.Publisher,
) ScreenshotService {
	return &screenshotService{
		screenshotRepo: screenshotRepo,
		gameRepo:       gameRepo,
		userRepo:       userRepo,
		store:          store,
		publisher:      publisher,
	}
}

func (s *screenshotService) Upload(ctx context.Context, userID string, gameID int64, body io.Reader, contentType string) (*dto.ScreenshotResponse, error) {
	game, err := s.gameRepo.FindByID(gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	screenshot := &models.Screenshot{
		GameID: gameID,
		UserID: userID,
	}
	if err := s.screenshotRepo.Create(screenshot); err != nil {
		return nil, err
	}

	// The slug and object key need the generated id, so they are filled in
	// after the insert.
	key := fmt.Sprintf("screenshots/%d/%d", gameID, screenshot.ID)
	if err := s.store.Upload(ctx, key, body, contentType); err != nil {
		if delErr := s.screenshotRepo.Delete(screenshot.ID); delErr != nil {
			return nil, errors.Join(err, fmt.Errorf("remove orphaned screenshot %d: %w", screenshot.ID, delErr))
		}
		return nil, err
	}

	slug := slugify(fmt.Sprintf("%s %s %d", game.Title, user.Username, screenshot.ID))
	if err := s.screenshotRepo.SetKeyAndSlug(screenshot.ID, key, slug); err != nil {
		return nil, err
	}

	job := messaging.ScreenshotJob{ScreenshotID: screenshot.ID, ObjectKey: key}
	if err := s.publisher.PublishScreenshotJob(ctx, job); err != nil {
		return nil, err
	}

	full, err := s.screenshotRepo.FindByID(screenshot.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToScreenshotResponse(full), nil
}

func (s *screenshotService) GetBySlug(slug string) (*dto.ScreenshotDetailResponse, error) {
	screenshot, err := s.screenshotRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScreenshotNotFound
		}
		return nil, err
	}

	resp := &dto.ScreenshotDetailResponse{
		ScreenshotResponse: *dto.FromModelToScreenshotResponse(screenshot),
	}

	prev, err := s.screenshotRepo.Neighbor(screenshot, false)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		resp.PrevSlug = &prev.Slug
	}

	next, err := s.screenshotRepo.Neighbor(screenshot, true)
	if err != nil {
		return nil, err
	}
	if next != nil {
		resp.NextSlug = &next.Slug
	}

	return resp, nil
}

func (s *screenshotService) GetGameScreenshots(gameID int64) ([]dto.ScreenshotResponse, error) {
	if _, err := s.gameRepo.FindByID(gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	screenshots, err := s.screenshotRepo.GetByGame(gameID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ScreenshotResponse, 0, len(screenshots))
	for i := range screenshots {
		responses = append(responses, *dto.FromModelToScreenshotResponse(&screenshots[i]))
	}
	return responses, nil
}

func (s *screenshotService) Delete(id int64, actor *Claims) (string, error) {
	screenshot, err := s.screenshotRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrScreenshotNotFound
		}
		return "", err
	}

	if actor == nil || (!actor.Staff && screenshot.UserID != actor.UserID) {
		return "", ErrNotOwner
	}

	var landing string
	next, err := s.screenshotRepo.Neighbor(screenshot, true)
	if err != nil {
		return "", err
	}
	if next != nil {
		landing = next.Slug
	} else {
		prev, err := s.screenshotRepo.Neighbor(screenshot, false)
		if err != nil {
			return "", err
		}
		if prev != nil {
			landing = prev.Slug
		}
	}

	if err := s.screenshotRepo.Delete(id); err != nil {
		return "", err
	}
	return landing, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
