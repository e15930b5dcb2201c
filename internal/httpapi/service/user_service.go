package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"
	"gamesarchive/internal/middleware/auth"
	"gamesarchive/internal/storage/s3"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrInvalidGender    = errors.New("invalid gender value")
	ErrNoFallbackOwner  = errors.New("no staff account available to take over catalog entries")
	ErrLastStaffAccount = errors.New("the last staff account cannot be deleted")
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, update dto.UpdateProfileDTO) (*dto.UserResponse, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	UploadProfilePicture(ctx context.Context, userID string, body io.Reader, contentType string) (*dto.UserResponse, error)
	DeleteAccount(userID string) error
	ListUsers(page, pageSize int, search string) (*dto.PaginatedUserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	store    s3.ObjectStore
}

func NewUserService(userRepo repository.UserRepository, store s3.ObjectStore) UserService {
	return &userService{userRepo: userRepo, store: store}
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) UpdateProfile(userID string, update dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if update.Gender != nil {
		switch *update.Gender {
		case models.GenderMale, models.GenderFemale, models.GenderNotShown:
		default:
			return nil, ErrInvalidGender
		}
	}

	update.ApplyTo(user)
	if err := s.userRepo.Update(user); err != nil {
		// Email is the only unique column a profile update can touch.
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := auth.VerifyPassword(user.Password, currentPassword); err != nil {
		return ErrWrongPassword
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Update(user)
}

func (s *userService) UploadProfilePicture(ctx context.Context, userID string, body io.Reader, contentType string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("profiles/%s/%s", userID, uuid.New().String())
	if err := s.store.Upload(ctx, key, body, contentType); err != nil {
		return nil, err
	}

	user.ProfilePicture = &key
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// DeleteAccount removes the user; their games and consoles pass to the
// longest-standing staff account instead of disappearing from the catalog.
func (s *userService) DeleteAccount(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	fallback, err := s.userRepo.FindFallbackOwner(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if user.Staff {
				return ErrLastStaffAccount
			}
			return ErrNoFallbackOwner
		}
		return err
	}

	return s.userRepo.DeleteAndReassign(user.ID, fallback.ID)
}

func (s *userService) ListUsers(page, pageSize int, search string) (*dto.PaginatedUserResponse, error) {
	users, total, err := s.userRepo.List(page, pageSize, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginatedUserResponse(responses, int(total), page, pageSize), nil
}
