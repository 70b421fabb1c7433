package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDriverRequest wraps validation failures of driver requests.
	ErrInvalidDriverRequest = errors.New("invalid driver request")
	// ErrConversionUnavailable is returned when a cash-out asks for another
	// currency but no exchange rate source is configured.
	ErrConversionUnavailable = errors.New("currency conversion unavailable")
	// ErrExchangeFailed is returned when the exchange rate source fails.
	ErrExchangeFailed = errors.New("exchange rate lookup failed")
)

// driverRejectReasons are picked at random for failed verifications.
var driverRejectReasons = []string{
	"license_number_mismatch",
	"document_unreadable",
	"face_match_failed",
	"license_expired",
}

// TransactionCreator creates transactions through the regular pipeline.
type TransactionCreator interface {
	Create(ctx context.Context, fromUser string, in CreateTransactionInput) (*models.Transaction, error)
}

// ExchangeRateReader retrieves exchange rates.
type ExchangeRateReader interface {
	GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (float32, error)
}

// ExchangeRateCache caches exchange rates.
type ExchangeRateCache interface {
	GetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string) (float32, error)
	SetExchangeRateForCurrency(ctx context.Context, fromCurrency, toCurrency string, rate float32) error
}

// VerifyDriverInput is a driver verification request.
type VerifyDriverInput struct {
	DriverID      string
	LicenseNumber string
	PhoneNumber   string
}

// CashoutInput is a driver payout request.
type CashoutInput struct {
	DriverID       string
	Amount         float64
	Currency       string
	TargetCurrency string
	Method         string
}

// BoltService simulates the Bolt driver integration.
type BoltService struct {
	txns              TransactionCreator
	rates             ExchangeRateReader
	cache             ExchangeRateCache
	rnd               Randomizer
	verifyProbability float64
	feePercent        decimal.Decimal
	now               func() time.Time
}

// NewBoltService creates a new BoltService. rates and cache may be nil; without
// rates, cash-outs into another currency fail with ErrConversionUnavailable.
func NewBoltService(
	txns TransactionCreator,
	rates ExchangeRateReader,
	cache ExchangeRateCache,
	rnd Randomizer,
	verifyProbability float64,
	feePercent float64,
) *BoltService {
	return &BoltService{
		txns:              txns,
		rates:             rates,
		cache:             cache,
		rnd:               rnd,
		verifyProbability: verifyProbability,
		feePercent:        decimal.NewFromFloat(feePercent),
		now:               time.Now,
	}
}

// VerifyDriver simulates a document check that succeeds with the configured probability.
func (s *BoltService) VerifyDriver(ctx context.Context, in VerifyDriverInput) (*models.DriverVerification, error) {
	in.DriverID = strings.TrimSpace(in.DriverID)
	in.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	if in.DriverID == "" || in.LicenseNumber == "" {
		return nil, fmt.Errorf("%w: driverId and licenseNumber are required", ErrInvalidDriverRequest)
	}

	v := &models.DriverVerification{
		VerificationID: uuid.NewString(),
		DriverID:       in.DriverID,
		Timestamp:      s.now().UTC(),
	}
	if chance(s.rnd, s.verifyProbability) {
		v.Verified = true
		v.Status = models.DriverVerified
	} else {
		v.Status = models.DriverFailed
		v.Reason = pick(s.rnd, driverRejectReasons)
	}

	logger.Log.Infow("driver verification",
		"driver_id", v.DriverID,
		"verification_id", v.VerificationID,
		"status", v.Status,
		"reason", v.Reason,
	)

	return v, nil
}

// Cashout pays a driver out, charging the configured fee and optionally
// converting the net amount. The payout is recorded as a cashout transaction.
func (s *BoltService) Cashout(ctx context.Context, userID string, in CashoutInput) (*models.Cashout, error) {
	in.DriverID = strings.TrimSpace(in.DriverID)
	if in.DriverID == "" {
		return nil, fmt.Errorf("%w: driverId is required", ErrInvalidDriverRequest)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidDriverRequest)
	}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = models.DefaultCurrency
	}
	in.TargetCurrency = strings.ToUpper(strings.TrimSpace(in.TargetCurrency))
	if !isCurrencyCode(in.Currency) {
		return nil, fmt.Errorf("%w: currency must be a 3 letter code", ErrInvalidDriverRequest)
	}
	if in.TargetCurrency != "" && !isCurrencyCode(in.TargetCurrency) {
		return nil, fmt.Errorf("%w: targetCurrency must be a 3 letter code", ErrInvalidDriverRequest)
	}
	if in.Method == "" {
		in.Method = "bank_transfer"
	}

	amount := decimal.NewFromFloat(in.Amount)
	fee := amount.Mul(s.feePercent).Div(decimal.NewFromInt(100)).Round(2)
	net := amount.Sub(fee)

	result := &models.Cashout{
		Fee:       fee.InexactFloat64(),
		NetAmount: net.InexactFloat64(),
	}
	metadata := models.Metadata{
		"driverId":  in.DriverID,
		"method":    in.Method,
		"fee":       result.Fee,
		"netAmount": result.NetAmount,
	}

	if in.TargetCurrency != "" && in.TargetCurrency != in.Currency {
		rate, err := s.exchangeRate(ctx, in.Currency, in.TargetCurrency)
		if err != nil {
			return nil, err
		}
		exchanged := net.Mul(decimal.NewFromFloat32(rate)).Round(2)

		result.TargetCurrency = in.TargetCurrency
		result.ExchangeRate = float64(rate)
		result.ExchangedAmount = exchanged.InexactFloat64()

		metadata["targetCurrency"] = result.TargetCurrency
		metadata["exchangeRate"] = result.ExchangeRate
		metadata["exchangedAmount"] = result.ExchangedAmount
	}

	txn, err := s.txns.Create(ctx, userID, CreateTransactionInput{
		Amount:   in.Amount,
		Currency: in.Currency,
		Type:     models.TransactionCashout,
		ToUser:   "driver:" + in.DriverID,
		Metadata: metadata,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransaction) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDriverRequest, err)
		}
		logger.Log.Errorw("failed to record cashout", "driver_id", in.DriverID, "error", err)
		return nil, err
	}
	result.Transaction = *txn

	return result, nil
}

// exchangeRate reads the rate from the cache, falling back to the rate source.
func (s *BoltService) exchangeRate(ctx context.Context, from, to string) (float32, error) {
	if s.cache != nil {
		rate, err := s.cache.GetExchangeRateForCurrency(ctx, from, to)
		if err == nil {
			return rate, nil
		}
		logger.Log.Debugw("exchange rate cache miss", "from", from, "to", to, "error", err)
	}

	if s.rates == nil {
		return 0, ErrConversionUnavailable
	}

	rate, err := s.rates.GetExchangeRateForCurrency(ctx, from, to)
	if err != nil {
		logger.Log.Errorw("failed to get exchange rate", "from", from, "to", to, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("%w: non-positive rate %v for %s->%s", ErrExchangeFailed, rate, from, to)
	}

	if s.cache != nil {
		if err := s.cache.SetExchangeRateForCurrency(ctx, from, to, rate); err != nil {
			logger.Log.Errorw("failed to cache exchange rate", "from", from, "to", to, "rate", rate, "error", err)
		}
	}

	return rate, nil
}
