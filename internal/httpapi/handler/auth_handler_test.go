package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamesarchive/internal/httpapi/dto"
	"gamesarchive/internal/httpapi/models"
	"gamesarchive/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(username, password, email string) (*models.User, error) {
	args := m.Called(username, password, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(username, password string) (string, string, *models.User, error) {
	args := m.Called(username, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(refreshToken string) error {
	return m.Called(refreshToken).Error(0)
}

func (m *MockAuthService) LogoutAll(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockAuthService) PurgeExpiredTokens() error {
	return m.Called().Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) AccessTokenTTL() time.Duration {
	return 15 * time.Minute
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRegister_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", h.Register)

	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
	}

	mockAuthService.On("Register", "testuser", "password123", "test@example.com").Return(user, nil)

	reqBody := dto.RegisterRequest{
		Username: "testuser",
		Password: "password123",
		Email:    "test@example.com",
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "testuser", response["username"])

	mockAuthService.AssertExpectations(t)
}

func TestRegister_UsernameInUse(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", h.Register)

	mockAuthService.On("Register", "testuser", "password123", "test@example.com").
		Return(nil, service.ErrNameInUse)

	reqBody := dto.RegisterRequest{
		Username: "testuser",
		Password: "password123",
		Email:    "test@example.com",
	}
	body, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRegister_ShortPasswordRejected(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/register", h.Register)

	body, _ := json.Marshal(dto.RegisterRequest{
		Username: "testuser",
		Password: "short",
		Email:    "test@example.com",
	})

	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/login", h.Login)

	user := &models.User{ID: "user-123", Username: "testuser"}
	mockAuthService.On("Login", "testuser", "password123").
		Return("access-token", "refresh-token", user, nil)

	body, _ := json.Marshal(dto.LoginRequest{Username: "testuser", Password: "password123"})

	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AuthResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "refresh-token", response.RefreshToken)
	assert.Equal(t, "user-123", response.UserID)

	mockAuthService.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/login", h.Login)

	mockAuthService.On("Login", "testuser", "wrong").
		Return("", "", nil, service.ErrInvalidCredentials)

	body, _ := json.Marshal(dto.LoginRequest{Username: "testuser", Password: "wrong"})

	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestLogoutAll_RevokesAllSessions(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/logout-all", func(c *gin.Context) {
		c.Set("userID", "user-123")
	}, h.LogoutAll)

	mockAuthService.On("LogoutAll", "user-123").Return(nil)

	req, _ := http.NewRequest("POST", "/logout-all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestRefresh_InvalidToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	h := NewAuthHandler(mockAuthService)
	router := setupRouter()
	router.POST("/refresh", h.Refresh)

	mockAuthService.On("RefreshAccessToken", "bogus").Return("", service.ErrInvalidToken)

	body, _ := json.Marshal(dto.RefreshTokenRequest{RefreshToken: "bogus"})

	req, _ := http.NewRequest("POST", "/refresh", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}
