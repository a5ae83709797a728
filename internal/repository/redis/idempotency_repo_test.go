package redis

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/cfg"
	"github.com/DRSN-tech/stock-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/clients"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*IdempotencyRepo, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := clients.NewRedisClient(&cfg.RedisCfg{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewIdempotencyRepo(client, converter.IdempotencyConverter{}, ttl), mr
}

func TestIdempotencyRepo_Lifecycle(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	resp, err := repo.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, resp)

	ok, err := repo.Reserve(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Reserve(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Get(ctx, "k1")
	assert.ErrorIs(t, err, e.ErrSubmissionInProgress)

	stored := &usecase.StoredResponse{Status: 201, ContentType: "application/json", Body: []byte(`{"ok":true}`)}
	require.NoError(t, repo.Save(ctx, "k1", stored))

	resp, err = repo.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, stored, resp)
}

func TestIdempotencyRepo_ReleaseAllowsRetry(t *testing.T) {
	repo, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	ok, err := repo.Reserve(ctx, "k2")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.Release(ctx, "k2"))

	ok, err = repo.Reserve(ctx, "k2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyRepo_KeyExpires(t *testing.T) {
	repo, mr := newTestRepo(t, 10*time.Second)
	ctx := context.Background()

	ok, err := repo.Reserve(ctx, "k3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("idempotency:k3"))
	assert.Equal(t, 10*time.Second, mr.TTL("idempotency:k3"))

	mr.FastForward(11 * time.Second)

	ok, err = repo.Reserve(ctx, "k3")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyRepo_RedisDown(t *testing.T) {
	repo, mr := newTestRepo(t, time.Minute)
	mr.Close()

	_, err := repo.Reserve(context.Background(), "k4")
	assert.Error(t, err)
}
