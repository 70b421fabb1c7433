package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
)

var (
	// ErrInvalidTransaction wraps every validation failure of a new transaction.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrTransactionNotFound is returned when a transaction ID is unknown.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionRepository stores transactions.
type TransactionRepository interface {
	Save(ctx context.Context, txn models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
}

// VelocityRecorder receives every accepted transaction for velocity analysis.
type VelocityRecorder interface {
	Record(ctx context.Context, userID string, at time.Time, amount float64) error
}

// EventPublisher publishes domain records to the event stream.
type EventPublisher interface {
	Publish(ctx context.Context, key string, v any)
}

// CreateTransactionInput carries the client supplied fields of a new transaction.
type CreateTransactionInput struct {
	Amount   float64
	Currency string
	Type     string
	ToUser   string
	Metadata models.Metadata
}

// TransactionService creates and lists transactions.
type TransactionService struct {
	repo            TransactionRepository
	velocity        VelocityRecorder
	publisher       EventPublisher
	rnd             Randomizer
	flagProbability float64
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService.
// velocity and publisher may be nil.
func NewTransactionService(
	repo TransactionRepository,
	velocity VelocityRecorder,
	publisher EventPublisher,
	rnd Randomizer,
	flagProbability float64,
) *TransactionService {
	return &TransactionService{
		repo:            repo,
		velocity:        velocity,
		publisher:       publisher,
		rnd:             rnd,
		flagProbability: flagProbability,
		now:             time.Now,
	}
}

// List returns transactions matching the filter, newest first.
func (s *TransactionService) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	txns, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "filter", filter, "error", err)
		return nil, err
	}
	return txns, nil
}

// Get returns a single transaction.
func (s *TransactionService) Get(ctx context.Context, id string) (*models.Transaction, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get transaction", "id", id, "error", err)
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	return txn, nil
}

// Create validates the input, scores it with a random risk score, flags it
// with the configured probability and stores it.
func (s *TransactionService) Create(ctx context.Context, fromUser string, in CreateTransactionInput) (*models.Transaction, error) {
	in, err := normalizeTransactionInput(in)
	if err != nil {
		return nil, err
	}

	status := models.StatusCompleted
	if chance(s.rnd, s.flagProbability) {
		status = models.StatusFlagged
	}

	metadata := models.Metadata{}
	for k, v := range in.Metadata {
		metadata[k] = v
	}

	txn := models.Transaction{
		ID:        uuid.NewString(),
		Amount:    in.Amount,
		Currency:  in.Currency,
		Type:      in.Type,
		Status:    status,
		Timestamp: s.now().UTC(),
		FromUser:  fromUser,
		ToUser:    in.ToUser,
		RiskScore: s.rnd.IntN(101),
		Metadata:  metadata,
	}

	if err := s.repo.Save(ctx, txn); err != nil {
		logger.Log.Errorw("failed to save transaction", "transaction_id", txn.ID, "error", err)
		return nil, err
	}

	if s.velocity != nil && fromUser != "" {
		if err := s.velocity.Record(ctx, fromUser, txn.Timestamp, txn.Amount); err != nil {
			logger.Log.Warnw("failed to record transaction velocity", "transaction_id", txn.ID, "error", err)
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(ctx, txn.ID, txn)
	}

	logger.Log.Infow("transaction created",
		"transaction_id", txn.ID,
		"amount", txn.Amount,
		"currency", txn.Currency,
		"status", txn.Status,
		"risk_score", txn.RiskScore,
	)

	return &txn, nil
}

func normalizeTransactionInput(in CreateTransactionInput) (CreateTransactionInput, error) {
	if in.Amount <= 0 {
		return in, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}

	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = models.DefaultCurrency
	}
	if !isCurrencyCode(in.Currency) {
		return in, fmt.Errorf("%w: currency must be a 3 letter code", ErrInvalidTransaction)
	}

	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.Type == "" {
		in.Type = models.TransactionTransfer
	}
	if !slices.Contains(models.TransactionTypes, in.Type) {
		return in, fmt.Errorf("%w: unsupported type %q", ErrInvalidTransaction, in.Type)
	}

	return in, nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
