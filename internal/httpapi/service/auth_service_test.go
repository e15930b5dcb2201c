package service

import (
	"testing"
	"time"

	"gamesarchive/internal/config"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(token *models.RefreshToken) error {
	return m.Called(token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(token string) (*models.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(token string) error {
	return m.Called(token).Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired() error {
	return m.Called().Error(0)
}

func newAuthService(userRepo repository.UserRepository, rtRepo repository.RefreshTokenRepository) AuthService {
	return NewAuthService(userRepo, rtRepo, &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

// The register pre-checks race with concurrent registrations, so the insert
// itself can still hit either unique index. Each one must map to the matching
// conflict error.
func TestRegister_DuplicateUsernameAtInsert(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockRefreshTokenRepository))

	userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Register("alice", "password123", "alice@example.com")
	assert.ErrorIs(t, err, ErrNameInUse)
}

func TestRegister_DuplicateEmailAtInsert(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo, new(MockRefreshTokenRepository))

	userRepo.On("FindByUsername", "alice").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything).Return(repository.ErrDuplicateEmail)

	_, err := svc.Register("alice", "password123", "alice@example.com")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLogoutAll_RevokesEveryToken(t *testing.T) {
	rtRepo := new(MockRefreshTokenRepository)
	svc := newAuthService(new(MockUserRepository), rtRepo)

	rtRepo.On("RevokeAllForUser", "user-1").Return(nil)

	assert.NoError(t, svc.LogoutAll("user-1"))
	rtRepo.AssertExpectations(t)
}

func TestPurgeExpiredTokens(t *testing.T) {
	rtRepo := new(MockRefreshTokenRepository)
	svc := newAuthService(new(MockUserRepository), rtRepo)

	rtRepo.On("DeleteExpired").Return(nil)

	assert.NoError(t, svc.PurgeExpiredTokens())
	rtRepo.AssertExpectations(t)
}
