package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = Rdb.Close() })
	return mr
}

func TestValues(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	v, err := GetValue(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, SetValue(ctx, "k", "v"))
	v, err = GetValue(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestLockOwnership(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	ok, err := TryLock(ctx, "lock:a", "owner-1", time.Minute, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TryLock(ctx, "lock:a", "owner-2", time.Minute, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	// 非持有者释放无效
	require.NoError(t, UnLock(ctx, "lock:a", "owner-2"))
	assert.True(t, mr.Exists("lock:a"))

	require.NoError(t, UnLock(ctx, "lock:a", "owner-1"))
	assert.False(t, mr.Exists("lock:a"))

	ok, err = TryLock(ctx, "lock:a", "owner-2", time.Minute, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLockExpires(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	ok, err := TryLock(ctx, "lock:b", "owner-1", time.Second, 0)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)
	ok, err = TryLock(ctx, "lock:b", "owner-2", time.Second, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}
