package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

type memoryStore struct {
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]string)}
}

func (s *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		s.data[key] = string(v)
	case string:
		s.data[key] = v
	}
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

type staticKeyer struct{}

func (staticKeyer) AccessSessionKey(accessID string) string {
	return "ps:session:access:" + accessID
}

func testManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: staticKeyer{}, ttl: time.Hour}, store
}

func testRecord() Record {
	return Record{
		AccessToken:  "upstream-access",
		RefreshToken: "upstream-refresh",
		User: SessionUser{
			ID:    uuid.New(),
			Email: "user@example.com",
			Role:  enums.UserRoleUser,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	mgr, _ := testManager()
	ctx := context.Background()

	record := testRecord()
	require.NoError(t, mgr.Save(ctx, "jti-1", record))

	loaded, err := mgr.Load(ctx, "jti-1")
	require.NoError(t, err)
	require.Equal(t, record.AccessToken, loaded.AccessToken)
	require.Equal(t, record.RefreshToken, loaded.RefreshToken)
	require.Equal(t, record.User.Email, loaded.User.Email)

	ok, err := mgr.HasSession(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLoadMissingSession(t *testing.T) {
	mgr, _ := testManager()
	ctx := context.Background()

	_, err := mgr.Load(ctx, "nope")
	require.ErrorIs(t, err, ErrSessionNotFound)

	ok, err := mgr.HasSession(ctx, "nope")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRotateReplacesRecord(t *testing.T) {
	mgr, store := testManager()
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "old-jti", testRecord()))

	rotated := testRecord()
	rotated.AccessToken = "fresh-access"
	newID, err := mgr.Rotate(ctx, "old-jti", rotated)
	require.NoError(t, err)
	require.NotEqual(t, "old-jti", newID)

	_, err = mgr.Load(ctx, "old-jti")
	require.ErrorIs(t, err, ErrSessionNotFound)

	loaded, err := mgr.Load(ctx, newID)
	require.NoError(t, err)
	require.Equal(t, "fresh-access", loaded.AccessToken)
	require.Len(t, store.data, 1)
}

func TestRotateUnknownSession(t *testing.T) {
	mgr, _ := testManager()
	_, err := mgr.Rotate(context.Background(), "ghost", testRecord())
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRevoke(t *testing.T) {
	mgr, _ := testManager()
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "jti-2", testRecord()))
	require.NoError(t, mgr.Revoke(ctx, "jti-2"))

	ok, err := mgr.HasSession(ctx, "jti-2")
	require.NoError(t, err)
	require.False(t, ok)
}
