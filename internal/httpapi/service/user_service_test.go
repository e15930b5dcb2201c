package service

import (
	"context"
	"io"
	"testing"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindFallbackOwner(excludeID string) (*models.User, error) {
	args := m.Called(excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(page, pageSize int, search string) ([]models.User, int64, error) {
	args := m.Called(page, pageSize, search)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) DeleteAndReassign(userID, fallbackOwnerID string) error {
	return m.Called(userID, fallbackOwnerID).Error(0)
}

// nopObjectStore satisfies s3.ObjectStore for tests that never touch storage.
type nopObjectStore struct{}

func (nopObjectStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	return nil
}

func (nopObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, nil
}

func (nopObjectStore) Delete(ctx context.Context, key string) error {
	return nil
}

func TestDeleteAccount_ReassignsCatalogToFallbackOwner(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nopObjectStore{})

	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1"}, nil)
	userRepo.On("FindFallbackOwner", "user-1").Return(&models.User{ID: "staff-1", Staff: true}, nil)
	userRepo.On("DeleteAndReassign", "user-1", "staff-1").Return(nil)

	err := svc.DeleteAccount("user-1")
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestDeleteAccount_NoFallbackOwner(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nopObjectStore{})

	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1"}, nil)
	userRepo.On("FindFallbackOwner", "user-1").Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteAccount("user-1")
	assert.ErrorIs(t, err, ErrNoFallbackOwner)
	userRepo.AssertNotCalled(t, "DeleteAndReassign", mock.Anything, mock.Anything)
}

func TestDeleteAccount_LastStaffAccountIsRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nopObjectStore{})

	userRepo.On("FindByID", "staff-1").Return(&models.User{ID: "staff-1", Staff: true}, nil)
	userRepo.On("FindFallbackOwner", "staff-1").Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteAccount("staff-1")
	assert.ErrorIs(t, err, ErrLastStaffAccount)
	userRepo.AssertNotCalled(t, "DeleteAndReassign", mock.Anything, mock.Anything)
}

func TestUpdateProfile_RejectsUnknownGender(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo, nopObjectStore{})

	userRepo.On("FindByID", "user-1").Return(&models.User{ID: "user-1"}, nil)

	bad := "Other"
	_, err := svc.UpdateProfile("user-1", dto.UpdateProfileDTO{Gender: &bad})
	assert.ErrorIs(t, err, ErrInvalidGender)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}
