package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
)

const (
	// VelocityRetention is how long individual transaction events are kept.
	VelocityRetention = 24 * time.Hour
	// AverageRetention is how long a user's rolling average amount survives without updates.
	AverageRetention = 30 * 24 * time.Hour
)

// VelocityMemoryRepository tracks per-user transaction events in memory.
type VelocityMemoryRepository struct {
	mu       sync.Mutex
	events   map[string][]time.Time
	averages map[string]rollingAverage
	now      func() time.Time
}

type rollingAverage struct {
	value     float64
	updatedAt time.Time
}

// NewVelocityMemoryRepository creates an empty in-memory velocity store.
func NewVelocityMemoryRepository() *VelocityMemoryRepository {
	return &VelocityMemoryRepository{
		events:   make(map[string][]time.Time),
		averages: make(map[string]rollingAverage),
		now:      time.Now,
	}
}

// Record stores a transaction event and folds the amount into the rolling average.
func (r *VelocityMemoryRepository) Record(ctx context.Context, userID string, at time.Time, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-VelocityRetention)
	kept := r.events[userID][:0]
	for _, ts := range r.events[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	r.events[userID] = append(kept, at)

	avg, ok := r.average(userID)
	if ok {
		avg = (avg + amount) / 2
	} else {
		avg = amount
	}
	r.averages[userID] = rollingAverage{value: avg, updatedAt: r.now()}
	return nil
}

// CountSince returns the number of events recorded for the user at or after since.
func (r *VelocityMemoryRepository) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, ts := range r.events[userID] {
		if !ts.Before(since) {
			n++
		}
	}
	return n, nil
}

// Count returns the number of retained events for the user.
func (r *VelocityMemoryRepository) Count(ctx context.Context, userID string) (int64, error) {
	return r.CountSince(ctx, userID, r.now().Add(-VelocityRetention))
}

// AverageAmount returns the user's rolling average amount, if any.
func (r *VelocityMemoryRepository) AverageAmount(ctx context.Context, userID string) (float64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	avg, ok := r.average(userID)
	return avg, ok, nil
}

func (r *VelocityMemoryRepository) average(userID string) (float64, bool) {
	avg, ok := r.averages[userID]
	if !ok || r.now().Sub(avg.updatedAt) > AverageRetention {
		return 0, false
	}
	return avg.value, true
}

// rollingAverageScript updates the average atomically: the first amount
// becomes the average, later ones are halved into it.
var rollingAverageScript = redis.NewScript(`
	local current = redis.call('GET', KEYS[1])
	local amount = tonumber(ARGV[1])
	local avg = amount
	if current then
		avg = (tonumber(current) + amount) / 2
	end
	redis.call('SET', KEYS[1], tostring(avg), 'PX', ARGV[2])
	return tostring(avg)
`)

// VelocityRedisRepository tracks per-user transaction events in Redis sorted sets.
type VelocityRedisRepository struct {
	client *redis.Client
}

// NewVelocityRedisRepository creates a new repository instance.
func NewVelocityRedisRepository(client *redis.Client) *VelocityRedisRepository {
	return &VelocityRedisRepository{client: client}
}

func eventsKey(userID string) string  { return fmt.Sprintf("velocity:transactions:%s", userID) }
func averageKey(userID string) string { return fmt.Sprintf("velocity:avg_amount:%s", userID) }

func score(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// Record stores a transaction event and folds the amount into the rolling average.
func (r *VelocityRedisRepository) Record(ctx context.Context, userID string, at time.Time, amount float64) error {
	key := eventsKey(userID)
	cutoff := score(time.Now().Add(-VelocityRetention))

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: score(at), Member: uuid.NewString()})
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatFloat(cutoff, 'f', -1, 64))
		pipe.Expire(ctx, key, VelocityRetention)
		return nil
	})

	logger.Log.Debugw(
		"redis velocity record",
		"key", key,
		"score", score(at),
		"result", "zadd",
		"error", err,
	)
	if err != nil {
		return err
	}

	avg, err := rollingAverageScript.Run(ctx, r.client, []string{averageKey(userID)},
		strconv.FormatFloat(amount, 'f', -1, 64), AverageRetention.Milliseconds()).Text()

	logger.Log.Debugw(
		"redis rolling average update",
		"key", averageKey(userID),
		"amount", amount,
		"result", avg,
		"error", err,
	)

	return err
}

// CountSince returns the number of events recorded for the user at or after since.
func (r *VelocityRedisRepository) CountSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	key := eventsKey(userID)
	n, err := r.client.ZCount(ctx, key, strconv.FormatFloat(score(since), 'f', -1, 64), "+inf").Result()

	logger.Log.Debugw(
		"redis velocity count since",
		"key", key,
		"since", since,
		"result", n,
		"error", err,
	)

	return n, err
}

// Count returns the number of retained events for the user.
func (r *VelocityRedisRepository) Count(ctx context.Context, userID string) (int64, error) {
	key := eventsKey(userID)
	n, err := r.client.ZCard(ctx, key).Result()

	logger.Log.Debugw(
		"redis velocity count",
		"key", key,
		"result", n,
		"error", err,
	)

	return n, err
}

// AverageAmount returns the user's rolling average amount, if any.
func (r *VelocityRedisRepository) AverageAmount(ctx context.Context, userID string) (float64, bool, error) {
	key := averageKey(userID)
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		logger.Log.Errorw("redis rolling average read failed", "key", key, "error", err)
		return 0, false, err
	}

	avg, err := strconv.ParseFloat(val, 64)

	logger.Log.Debugw(
		"redis rolling average read",
		"key", key,
		"value", val,
		"result", avg,
		"error", err,
	)

	if err != nil {
		return 0, false, err
	}
	return avg, true, nil
}

// Ping checks Redis connectivity.
func (r *VelocityRedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
