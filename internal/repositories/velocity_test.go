package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVelocityMemoryRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewVelocityMemoryRepository()
	repo.now = func() time.Time { return now }

	_, ok, err := repo.AverageAmount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Record(ctx, "u1", now.Add(-2*time.Hour), 100))
	require.NoError(t, repo.Record(ctx, "u1", now.Add(-10*time.Minute), 300))
	require.NoError(t, repo.Record(ctx, "u1", now, 600))
	require.NoError(t, repo.Record(ctx, "u2", now, 5))

	n, err := repo.CountSince(ctx, "u1", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	total, err := repo.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	avg, ok, err := repo.AverageAmount(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 400.0, avg, 0.001)
}

func TestVelocityMemoryRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewVelocityMemoryRepository()
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Record(ctx, "u1", now, 50))

	now = now.Add(VelocityRetention + time.Minute)
	total, err := repo.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	_, ok, err := repo.AverageAmount(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok, "average outlives the event window")

	now = now.Add(AverageRetention)
	_, ok, err = repo.AverageAmount(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}
