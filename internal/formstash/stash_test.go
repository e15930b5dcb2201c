package formstash

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamesarchive/internal/httpapi/models"
)

// fakeClient is an in-memory stand-in for redis. TTLs are ignored; the tests
// only exercise the read-once contract.
type fakeClient struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: make(map[string]string)}
}

func (f *fakeClient) Set(ctx context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
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

func (f *fakeClient) GetDel(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	delete(f.data, key)
	return redis.NewStringResult(val, nil)
}

func TestStashTakeReturnsEntryOnce(t *testing.T) {
	stash := New(newFakeClient(), time.Minute)
	ctx := context.Background()

	entry := Entry{Comment: "way too long...", Error: "comment must be at most 700 characters"}
	require.NoError(t, stash.Put(ctx, "user-1", models.KindGame, 42, entry))

	got, err := stash.Take(ctx, "user-1", models.KindGame, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry, *got)

	// second read is a miss
	got, err = stash.Take(ctx, "user-1", models.KindGame, 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStashMissReturnsNil(t *testing.T) {
	stash := New(newFakeClient(), time.Minute)

	got, err := stash.Take(context.Background(), "user-1", models.KindConsole, 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStashKeysAreScopedPerEntity(t *testing.T) {
	stash := New(newFakeClient(), time.Minute)
	ctx := context.Background()

	require.NoError(t, stash.Put(ctx, "user-1", models.KindGame, 1, Entry{Comment: "a"}))
	require.NoError(t, stash.Put(ctx, "user-1", models.KindConsole, 1, Entry{Comment: "b"}))

	got, err := stash.Take(ctx, "user-1", models.KindGame, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Comment)

	got, err = stash.Take(ctx, "user-1", models.KindConsole, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.Comment)
}

func TestStashPutReplacesPrevious(t *testing.T) {
	stash := New(newFakeClient(), time.Minute)
	ctx := context.Background()

	require.NoError(t, stash.Put(ctx, "user-1", models.KindGame, 1, Entry{Comment: "first"}))
	require.NoError(t, stash.Put(ctx, "user-1", models.KindGame, 1, Entry{Comment: "second"}))

	got, err := stash.Take(ctx, "user-1", models.KindGame, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Comment)
}
