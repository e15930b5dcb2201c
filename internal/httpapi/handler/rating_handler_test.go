package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) RateEntity(userID string, kind models.EntityKind, entityID int64, value int) (*dto.RateResponse, error) {
	args := m.Called(userID, kind, entityID, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RateResponse), args.Error(1)
}

func (m *MockRatingService) GetUserRating(userID string, kind models.EntityKind, entityID int64) (*dto.UserRatingResponse, error) {
	args := m.Called(userID, kind, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserRatingResponse), args.Error(1)
}

func (m *MockRatingService) GetEntityRatings(kind models.EntityKind, entityID int64) ([]dto.RatingResponse, error) {
	args := m.Called(kind, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.RatingResponse), args.Error(1)
}

func (m *MockRatingService) GetEntitySummary(kind models.EntityKind, entityID int64) (*dto.RatingSummaryResponse, error) {
	args := m.Called(kind, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingSummaryResponse), args.Error(1)
}

// setupRatingRouter mounts the game-flavoured rating routes with the given
// user already authenticated (empty userID means anonymous).
func setupRatingRouter(svc service.RatingService, userID string) *gin.Engine {
	router := setupRouter()
	group := router.Group("/games")
	if userID != "" {
		group.Use(func(c *gin.Context) {
			c.Set("userID", userID)
		})
	}
	h := NewRatingHandler(svc)
	h.RegisterRoutes(group, group, models.KindGame, "game_id")
	return router
}

func TestRate_Success(t *testing.T) {
	mockSvc := new(MockRatingService)
	router := setupRatingRouter(mockSvc, "user-1")

	mockSvc.On("RateEntity", "user-1", models.KindGame, int64(1), 4).
		Return(&dto.RateResponse{Message: "rating saved", Rating: 4, AverageRating: 4.5}, nil)

	body, _ := json.Marshal(dto.CreateRatingDTO{Rating: 4})
	req, _ := http.NewRequest("POST", "/games/1/rate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RateResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 4, response.Rating)
	assert.Equal(t, 4.5, response.AverageRating)

	mockSvc.AssertExpectations(t)
}

func TestRate_OutOfRangeRejectedByBinding(t *testing.T) {
	mockSvc := new(MockRatingService)
	router := setupRatingRouter(mockSvc, "user-1")

	for _, value := range []int{0, 6} {
		body, _ := json.Marshal(map[string]int{"rating": value})
		req, _ := http.NewRequest("POST", "/games/1/rate", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "rating %d", value)
	}

	mockSvc.AssertNotCalled(t, "RateEntity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRate_UnknownEntity(t *testing.T) {
	mockSvc := new(MockRatingService)
	router := setupRatingRouter(mockSvc, "user-1")

	mockSvc.On("RateEntity", "user-1", models.KindGame, int64(99), 3).
		Return(nil, service.ErrEntityNotFound)

	body, _ := json.Marshal(dto.CreateRatingDTO{Rating: 3})
	req, _ := http.NewRequest("POST", "/games/99/rate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestRate_Anonymous(t *testing.T) {
	mockSvc := new(MockRatingService)
	router := setupRatingRouter(mockSvc, "")

	body, _ := json.Marshal(dto.CreateRatingDTO{Rating: 3})
	req, _ := http.NewRequest("POST", "/games/1/rate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "RateEntity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAverage_ZeroWhenUnrated(t *testing.T) {
	mockSvc := new(MockRatingService)
	router := setupRatingRouter(mockSvc, "")

	mockSvc.On("GetEntitySummary", models.KindGame, int64(1)).
		Return(&dto.RatingSummaryResponse{AverageRating: 0, RatingCount: 0}, nil)

	req, _ := http.NewRequest("GET", "/games/1/ratings/average", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RatingSummaryResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, 0.0, response.AverageRating)
	assert.Equal(t, int64(0), response.RatingCount)
}
