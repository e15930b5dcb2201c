package service

import (
	"testing"

	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRatingService(t *testing.T) (RatingService, *MockRatingRepository, *MockGameRepository, *MockConsoleRepository) {
	t.Helper()
	ratingRepo := new(MockRatingRepository)
	gameRepo := new(MockGameRepository)
	consoleRepo := new(MockConsoleRepository)
	return NewRatingService(ratingRepo, gameRepo, consoleRepo), ratingRepo, gameRepo, consoleRepo
}

func TestRateEntity_CreatesFirstRating(t *testing.T) {
	svc, ratingRepo, gameRepo, _ := newRatingService(t)

	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1, Title: "Tetris"}, nil)
	ratingRepo.On("GetByUserAndEntity", "user-1", models.KindGame, int64(1)).
		Return(nil, gorm.ErrRecordNotFound)
	ratingRepo.On("Create", mock.MatchedBy(func(r *models.Rating) bool {
		return r.UserID == "user-1" && r.EntityKind == models.KindGame && r.EntityID == 1 && r.Rating == 4
	})).Return(nil)
	ratingRepo.On("CalculateAverage", models.KindGame, int64(1)).Return(4.0, nil)

	resp, err := svc.RateEntity("user-1", models.KindGame, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, 4.0, resp.AverageRating)

	ratingRepo.AssertExpectations(t)
}

func TestRateEntity_SecondSubmissionUpdatesInPlace(t *testing.T) {
	svc, ratingRepo, gameRepo, _ := newRatingService(t)

	existing := &models.Rating{
		ID:         10,
		UserID:     "user-1",
		EntityKind: models.KindGame,
		EntityID:   1,
		Rating:     2,
	}
	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1}, nil)
	ratingRepo.On("GetByUserAndEntity", "user-1", models.KindGame, int64(1)).Return(existing, nil)
	ratingRepo.On("Update", existing).Return(nil)
	ratingRepo.On("CalculateAverage", models.KindGame, int64(1)).Return(5.0, nil)

	resp, err := svc.RateEntity("user-1", models.KindGame, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)

	// Create must never be called for a user who already rated the entity.
	ratingRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRateEntity_LostCreateRaceRetriesAsUpdate(t *testing.T) {
	svc, ratingRepo, gameRepo, _ := newRatingService(t)

	raced := &models.Rating{
		ID:         11,
		UserID:     "user-1",
		EntityKind: models.KindGame,
		EntityID:   1,
		Rating:     3,
	}
	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1}, nil)
	ratingRepo.On("GetByUserAndEntity", "user-1", models.KindGame, int64(1)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	ratingRepo.On("Create", mock.Anything).Return(repository.ErrDuplicate)
	ratingRepo.On("GetByUserAndEntity", "user-1", models.KindGame, int64(1)).
		Return(raced, nil).Once()
	ratingRepo.On("Update", raced).Return(nil)
	ratingRepo.On("CalculateAverage", models.KindGame, int64(1)).Return(5.0, nil)

	resp, err := svc.RateEntity("user-1", models.KindGame, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)

	ratingRepo.AssertExpectations(t)
}

func TestRateEntity_RejectsOutOfRangeValues(t *testing.T) {
	svc, ratingRepo, _, _ := newRatingService(t)

	for _, value := range []int{0, 6, -1, 100} {
		_, err := svc.RateEntity("user-1", models.KindGame, 1, value)
		assert.ErrorIs(t, err, ErrInvalidRating, "value %d", value)
	}

	ratingRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRateEntity_UnknownEntity(t *testing.T) {
	svc, _, gameRepo, consoleRepo := newRatingService(t)

	gameRepo.On("FindByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)
	consoleRepo.On("FindByID", int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RateEntity("user-1", models.KindGame, 99, 3)
	assert.ErrorIs(t, err, ErrEntityNotFound)

	_, err = svc.RateEntity("user-1", models.KindConsole, 99, 3)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestGetEntitySummary_ZeroWhenUnrated(t *testing.T) {
	svc, ratingRepo, _, consoleRepo := newRatingService(t)

	consoleRepo.On("FindByID", int64(7)).Return(&models.Console{ID: 7}, nil)
	ratingRepo.On("CalculateAverage", models.KindConsole, int64(7)).Return(0.0, nil)
	ratingRepo.On("CountByEntity", models.KindConsole, int64(7)).Return(int64(0), nil)

	summary, err := svc.GetEntitySummary(models.KindConsole, 7)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.AverageRating)
	assert.Equal(t, int64(0), summary.RatingCount)
}

func TestGetEntitySummary_Average(t *testing.T) {
	svc, ratingRepo, gameRepo, _ := newRatingService(t)

	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1}, nil)
	ratingRepo.On("CalculateAverage", models.KindGame, int64(1)).Return(4.5, nil)
	ratingRepo.On("CountByEntity", models.KindGame, int64(1)).Return(int64(2), nil)

	summary, err := svc.GetEntitySummary(models.KindGame, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.5, summary.AverageRating)
	assert.Equal(t, int64(2), summary.RatingCount)
}
