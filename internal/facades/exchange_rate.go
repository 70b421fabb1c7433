package facades

import (
	"context"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
)

const defaultRateTimeout = 3 * time.Second

// ExchangeRatesGRPCFacade reads exchange rates from the gw-exchanger service.
type ExchangeRatesGRPCFacade struct {
	client  pb.ExchangeServiceClient
	timeout time.Duration
}

// NewExchangeRatesGRPCFacade creates a new facade with a gRPC client.
// A non-positive timeout falls back to three seconds.
func NewExchangeRatesGRPCFacade(client pb.ExchangeServiceClient, timeout time.Duration) *ExchangeRatesGRPCFacade {
	if timeout <= 0 {
		timeout = defaultRateTimeout
	}
	return &ExchangeRatesGRPCFacade{client: client, timeout: timeout}
}

// GetExchangeRateForCurrency fetches the rate that converts one unit of
// fromCurrency into toCurrency. Identical currencies short-circuit to 1.
func (f *ExchangeRatesGRPCFacade) GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (float32, error) {
	fromCurrency, toCurrency = strings.ToUpper(fromCurrency), strings.ToUpper(toCurrency)
	if fromCurrency == toCurrency {
		return 1, nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.client.GetExchangeRateForCurrency(ctx, &pb.CurrencyRequest{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
	})
	if err != nil {
		logger.Log.Errorw("failed to fetch exchange rate via gRPC",
			"from", fromCurrency, "to", toCurrency, "error", err)
		return 0, err
	}

	return resp.Rate, nil
}
