package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
)

// ErrRateNotCached is returned when the requested currency pair is not in the cache.
var ErrRateNotCached = errors.New("exchange rate not cached")

// ExchangeRateCacheRepository caches gw-exchanger rates in Redis for cross currency cash-outs.
type ExchangeRateCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached rates
}

// NewExchangeRateCacheRepository creates a new repository instance with the given TTL
func NewExchangeRateCacheRepository(client *redis.Client, expiration time.Duration) *ExchangeRateCacheRepository {
	return &ExchangeRateCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func rateKey(fromCurrency, toCurrency string) string {
	return fmt.Sprintf("exchange_rate:%s:%s", fromCurrency, toCurrency)
}

// GetExchangeRateForCurrency returns the cached rate for a currency pair.
// A miss is reported as ErrRateNotCached.
func (r *ExchangeRateCacheRepository) GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (float32, error) {
	key := rateKey(fromCurrency, toCurrency)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("%w for %s->%s", ErrRateNotCached, fromCurrency, toCurrency)
	}
	if err != nil {
		logger.Log.Errorw("failed to read cached exchange rate", "key", key, "error", err)
		return 0, err
	}

	rate, err := strconv.ParseFloat(val, 32)
	if err != nil {
		logger.Log.Errorw("corrupt cached exchange rate", "key", key, "value", val, "error", err)
		return 0, err
	}

	logger.Log.Debugw("exchange rate cache hit", "key", key, "rate", rate)
	return float32(rate), nil
}

// SetExchangeRateForCurrency stores a rate until the configured TTL runs out.
func (r *ExchangeRateCacheRepository) SetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string, rate float32) error {
	key := rateKey(fromCurrency, toCurrency)
	if err := r.client.Set(ctx, key, strconv.FormatFloat(float64(rate), 'f', -1, 32), r.exp).Err(); err != nil {
		return err
	}

	logger.Log.Debugw("exchange rate cached", "key", key, "rate", rate, "ttl", r.exp)
	return nil
}
