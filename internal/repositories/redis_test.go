package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(context.Background()) })

	host, err := redisC.Host(ctx)
	require.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())

	return rdb
}

func TestExchangeRateCacheRepository(t *testing.T) {
	rdb := setupRedisContainer(t)
	ctx := context.Background()
	repo := NewExchangeRateCacheRepository(rdb, 2*time.Second)

	t.Run("Set and Get exchange rate", func(t *testing.T) {
		rate := float32(0.00065)

		require.NoError(t, repo.SetExchangeRateForCurrency(ctx, "NGN", "USD", rate))

		got, err := repo.GetExchangeRateForCurrency(ctx, "NGN", "USD")
		assert.NoError(t, err)
		assert.Equal(t, rate, got)
	})

	t.Run("Get missing key returns ErrRateNotCached", func(t *testing.T) {
		_, err := repo.GetExchangeRateForCurrency(ctx, "ABC", "XYZ")
		assert.ErrorIs(t, err, ErrRateNotCached)
	})

	t.Run("Cached value expires", func(t *testing.T) {
		require.NoError(t, repo.SetExchangeRateForCurrency(ctx, "GBP", "NGN", 1900))

		time.Sleep(3 * time.Second)

		_, err := repo.GetExchangeRateForCurrency(ctx, "GBP", "NGN")
		assert.ErrorIs(t, err, ErrRateNotCached)
	})
}

func TestVelocityRedisRepository(t *testing.T) {
	rdb := setupRedisContainer(t)
	ctx := context.Background()
	repo := NewVelocityRedisRepository(rdb)
	now := time.Now()

	_, ok, err := repo.AverageAmount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Record(ctx, "u1", now.Add(-2*time.Hour), 100))
	require.NoError(t, repo.Record(ctx, "u1", now.Add(-10*time.Minute), 300))
	require.NoError(t, repo.Record(ctx, "u1", now, 600))

	n, err := repo.CountSince(ctx, "u1", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	total, err := repo.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	avg, ok, err := repo.AverageAmount(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 400.0, avg, 0.001) // ((100+300)/2+600)/2

	assert.NoError(t, repo.Ping(ctx))
}
