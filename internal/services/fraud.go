package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
)

var (
	// ErrAlertNotFound is returned when an alert ID is unknown.
	ErrAlertNotFound = errors.New("fraud alert not found")
	// ErrInvalidAlertStatus is returned for status values outside models.AlertStatuses.
	ErrInvalidAlertStatus = errors.New("invalid fraud alert status")
)

// AlertRepository stores fraud alerts.
type AlertRepository interface {
	Save(ctx context.Context, alert models.FraudAlert) error
	List(ctx context.Context, filter models.AlertFilter) ([]models.FraudAlert, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.FraudAlert, error)
}

// TransactionReader looks transactions up by ID.
type TransactionReader interface {
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
}

// FraudService lists fraud alerts and runs the simulated per-transaction analysis.
type FraudService struct {
	alerts           AlertRepository
	txns             TransactionReader
	publisher        EventPublisher
	rnd              Randomizer
	alertProbability float64
	now              func() time.Time
}

// NewFraudService creates a new FraudService. publisher may be nil.
func NewFraudService(
	alerts AlertRepository,
	txns TransactionReader,
	publisher EventPublisher,
	rnd Randomizer,
	alertProbability float64,
) *FraudService {
	return &FraudService{
		alerts:           alerts,
		txns:             txns,
		publisher:        publisher,
		rnd:              rnd,
		alertProbability: alertProbability,
		now:              time.Now,
	}
}

// ListAlerts returns alerts matching the filter, newest first.
func (s *FraudService) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.FraudAlert, error) {
	alerts, err := s.alerts.List(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to list fraud alerts", "filter", filter, "error", err)
		return nil, err
	}
	return alerts, nil
}

// Analyze flips a weighted coin for the transaction. On a hit a new alert
// with random type and severity is stored and returned; otherwise the
// result is nil with no error.
func (s *FraudService) Analyze(ctx context.Context, transactionID string) (*models.FraudAlert, error) {
	txn, err := s.txns.GetByID(ctx, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to load transaction for analysis", "transaction_id", transactionID, "error", err)
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}

	if !chance(s.rnd, s.alertProbability) {
		logger.Log.Infow("analysis found nothing", "transaction_id", transactionID)
		return nil, nil
	}

	alertType := pick(s.rnd, models.AlertTypes)
	alert := models.FraudAlert{
		ID:            uuid.NewString(),
		TransactionID: txn.ID,
		Type:          alertType,
		Severity:      pick(s.rnd, models.Severities),
		Description:   describeAlert(alertType, txn),
		Timestamp:     s.now().UTC(),
		Status:        models.AlertOpen,
		Metadata: models.Metadata{
			"riskScore": 50 + s.rnd.IntN(51),
			"source":    "simulation",
		},
	}

	if err := s.alerts.Save(ctx, alert); err != nil {
		logger.Log.Errorw("failed to save fraud alert", "transaction_id", txn.ID, "error", err)
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, alert.ID, alert)
	}

	logger.Log.Infow("fraud alert raised",
		"alert_id", alert.ID,
		"transaction_id", txn.ID,
		"type", alert.Type,
		"severity", alert.Severity,
	)

	return &alert, nil
}

// UpdateAlertStatus moves an alert through its review workflow.
func (s *FraudService) UpdateAlertStatus(ctx context.Context, id, status string) (*models.FraudAlert, error) {
	if !slices.Contains(models.AlertStatuses, status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlertStatus, status)
	}

	alert, err := s.alerts.UpdateStatus(ctx, id, status)
	if err != nil {
		logger.Log.Errorw("failed to update fraud alert", "alert_id", id, "status", status, "error", err)
		return nil, err
	}
	if alert == nil {
		return nil, ErrAlertNotFound
	}
	return alert, nil
}

func describeAlert(alertType string, txn *models.Transaction) string {
	switch alertType {
	case models.AlertVelocity:
		return fmt.Sprintf("Unusual transaction velocity for %s", txn.FromUser)
	case models.AlertAmount:
		return fmt.Sprintf("Transaction amount %.2f %s is unusual for this account", txn.Amount, txn.Currency)
	case models.AlertLocation:
		return "Transaction from unusual location"
	default:
		return "Suspicious transaction pattern detected"
	}
}
