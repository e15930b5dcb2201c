package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"gamesarchive/internal/formstash"
	"gamesarchive/internal/httpapi/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeStashClient is an in-memory formstash.Client so the tests can exercise
// the real stash logic without redis.
type fakeStashClient struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeStashClient() *fakeStashClient {
	return &fakeStashClient{data: make(map[string]string)}
}

func (f *fakeStashClient) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeStashClient) GetDel(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	delete(f.data, key)
	return redis.NewStringResult(val, nil)
}

func newCommentService(t *testing.T) (CommentService, *MockCommentRepository, *MockGameRepository, *MockConsoleRepository) {
	t.Helper()
	commentRepo := new(MockCommentRepository)
	gameRepo := new(MockGameRepository)
	consoleRepo := new(MockConsoleRepository)
	stash := formstash.New(newFakeStashClient(), time.Minute)
	return NewCommentService(commentRepo, gameRepo, consoleRepo, stash), commentRepo, gameRepo, consoleRepo
}

func TestSubmitComment_Valid(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentService(t)

	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1}, nil)
	commentRepo.On("Create", mock.MatchedBy(func(c *models.Comment) bool {
		return c.UserID == "user-1" && c.EntityKind == models.KindGame && c.EntityID == 1
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Comment).ID = 42
	}).Return(nil)
	commentRepo.On("FindByID", int64(42)).Return(&models.Comment{
		ID:      42,
		UserID:  "user-1",
		Comment: "great game",
		User:    models.User{Username: "alice"},
	}, nil)

	resp, err := svc.SubmitComment(context.Background(), "user-1", models.KindGame, 1, "great game")
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "alice", resp.Username)
}

func TestSubmitComment_TooLongIsStashedOnce(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentService(t)
	ctx := context.Background()

	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1}, nil)
	commentRepo.On("GetByEntity", models.KindGame, int64(1), 1, 20).
		Return([]models.Comment{}, int64(0), nil)

	tooLong := strings.Repeat("x", models.MaxCommentLength+1)
	_, err := svc.SubmitComment(ctx, "user-1", models.KindGame, 1, tooLong)
	assert.ErrorIs(t, err, ErrCommentTooLong)

	// Nothing was persisted.
	commentRepo.AssertNotCalled(t, "Create", mock.Anything)

	// First listing replays the rejected text with the error...
	list, err := svc.GetEntityComments(ctx, "user-1", models.KindGame, 1, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, list.Stashed)
	assert.Equal(t, tooLong, list.Stashed.Comment)
	assert.Equal(t, ErrCommentTooLong.Error(), list.Stashed.Error)

	// ...and the second one starts clean.
	list, err = svc.GetEntityComments(ctx, "user-1", models.KindGame, 1, 1, 20)
	require.NoError(t, err)
	assert.Nil(t, list.Stashed)
}

func TestSubmitComment_ExactLimitIsAccepted(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentService(t)

	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1}, nil)
	commentRepo.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Comment).ID = 7
	}).Return(nil)
	commentRepo.On("FindByID", int64(7)).Return(&models.Comment{ID: 7, User: models.User{Username: "alice"}}, nil)

	atLimit := strings.Repeat("y", models.MaxCommentLength)
	_, err := svc.SubmitComment(context.Background(), "user-1", models.KindGame, 1, atLimit)
	assert.NoError(t, err)
}

func TestSubmitComment_EmptyIsStashed(t *testing.T) {
	svc, commentRepo, _, consoleRepo := newCommentService(t)
	ctx := context.Background()

	consoleRepo.On("FindByID", int64(3)).Return(&models.Console{ID: 3}, nil)
	commentRepo.On("GetByEntity", models.KindConsole, int64(3), 1, 20).
		Return([]models.Comment{}, int64(0), nil)

	_, err := svc.SubmitComment(ctx, "user-1", models.KindConsole, 3, "   ")
	assert.ErrorIs(t, err, ErrCommentEmpty)

	list, err := svc.GetEntityComments(ctx, "user-1", models.KindConsole, 3, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, list.Stashed)
	assert.Equal(t, "   ", list.Stashed.Comment)
}

func TestGetEntityComments_StashIsPerViewer(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentService(t)
	ctx := context.Background()

	gameRepo.On("FindByID", int64(1)).Return(&models.Game{ID: 1}, nil)
	commentRepo.On("GetByEntity", models.KindGame, int64(1), 1, 20).
		Return([]models.Comment{}, int64(0), nil)

	tooLong := strings.Repeat("x", models.MaxCommentLength+1)
	_, err := svc.SubmitComment(ctx, "user-1", models.KindGame, 1, tooLong)
	assert.ErrorIs(t, err, ErrCommentTooLong)

	// A different viewer never sees user-1's stash.
	list, err := svc.GetEntityComments(ctx, "user-2", models.KindGame, 1, 1, 20)
	require.NoError(t, err)
	assert.Nil(t, list.Stashed)

	// Anonymous viewers don't either.
	list, err = svc.GetEntityComments(ctx, "", models.KindGame, 1, 1, 20)
	require.NoError(t, err)
	assert.Nil(t, list.Stashed)
}

func TestDeleteComment_OnlyAuthorOrStaff(t *testing.T) {
	svc, commentRepo, _, _ := newCommentService(t)

	comment := &models.Comment{ID: 5, UserID: "author"}
	commentRepo.On("FindByID", int64(5)).Return(comment, nil)
	commentRepo.On("Delete", int64(5)).Return(nil)

	err := svc.DeleteComment(5, &Claims{UserID: "someone-else"})
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.DeleteComment(5, &Claims{UserID: "author"})
	assert.NoError(t, err)

	err = svc.DeleteComment(5, &Claims{UserID: "someone-else", Staff: true})
	assert.NoError(t, err)
}
