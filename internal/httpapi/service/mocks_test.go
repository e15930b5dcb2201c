package service

import (
	"gamesarchive/internal/httpapi/models"

	"github.com/stretchr/testify/mock"
)

// Repository mocks shared by the service tests.

type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(game *models.Game) error {
	return m.Called(game).Error(0)
}

func (m *MockGameRepository) Update(game *models.Game) error {
	return m.Called(game).Error(0)
}

func (m *MockGameRepository) Delete(id int64) error {
	return m.Called(id).Error(0)
}

func (m *MockGameRepository) FindByID(id int64) (*models.Game, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) List(page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) Search(query string, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(query, page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) ReplaceConsoles(game *models.Game, consoles []models.Console) error {
	return m.Called(game, consoles).Error(0)
}

type MockConsoleRepository struct {
	mock.Mock
}

func (m *MockConsoleRepository) Create(console *models.Console) error {
	return m.Called(console).Error(0)
}

func (m *MockConsoleRepository) Update(console *models.Console) error {
	return m.Called(console).Error(0)
}

func (m *MockConsoleRepository) Delete(id int64) error {
	return m.Called(id).Error(0)
}

func (m *MockConsoleRepository) FindByID(id int64) (*models.Console, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Console), args.Error(1)
}

func (m *MockConsoleRepository) FindByIDs(ids []int64) ([]models.Console, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.Console), args.Error(1)
}

func (m *MockConsoleRepository) List(page, pageSize int) ([]models.Console, int64, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]models.Console), args.Get(1).(int64), args.Error(2)
}

func (m *MockConsoleRepository) Search(query string, page, pageSize int) ([]models.Console, int64, error) {
	args := m.Called(query, page, pageSize)
	return args.Get(0).([]models.Console), args.Get(1).(int64), args.Error(2)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(rating *models.Rating) error {
	return m.Called(rating).Error(0)
}

func (m *MockRatingRepository) Update(rating *models.Rating) error {
	return m.Called(rating).Error(0)
}

func (m *MockRatingRepository) GetByUserAndEntity(userID string, kind models.EntityKind, entityID int64) (*models.Rating, error) {
	args := m.Called(userID, kind, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByEntity(kind models.EntityKind, entityID int64) ([]models.Rating, error) {
	args := m.Called(kind, entityID)
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) CalculateAverage(kind models.EntityKind, entityID int64) (float64, error) {
	args := m.Called(kind, entityID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRatingRepository) CountByEntity(kind models.EntityKind, entityID int64) (int64, error) {
	args := m.Called(kind, entityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRatingRepository) Delete(id int64) error {
	return m.Called(id).Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	return m.Called(comment).Error(0)
}

func (m *MockCommentRepository) GetByEntity(kind models.EntityKind, entityID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(kind, entityID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetByUser(userID string, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(userID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) FindByID(id int64) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(id int64) error {
	return m.Called(id).Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(review *models.Review) error {
	return m.Called(review).Error(0)
}

func (m *MockReviewRepository) Update(review *models.Review) error {
	return m.Called(review).Error(0)
}

func (m *MockReviewRepository) GetByUserAndGame(userID string, gameID int64) (*models.Review, error) {
	args := m.Called(userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByGame(gameID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(gameID, page, pageSize)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindByID(id int64) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(id int64) error {
	return m.Called(id).Error(0)
}
