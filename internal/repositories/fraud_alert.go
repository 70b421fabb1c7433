package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
)

// FraudAlertMemoryRepository keeps fraud alerts in process memory.
type FraudAlertMemoryRepository struct {
	mu    sync.RWMutex
	items []models.FraudAlert
}

// NewFraudAlertMemoryRepository creates a repository seeded with the given alerts.
func NewFraudAlertMemoryRepository(seed []models.FraudAlert) *FraudAlertMemoryRepository {
	items := make([]models.FraudAlert, len(seed))
	copy(items, seed)
	return &FraudAlertMemoryRepository{items: items}
}

// Save appends an alert.
func (r *FraudAlertMemoryRepository) Save(ctx context.Context, alert models.FraudAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, alert)
	return nil
}

// List returns matching alerts, newest first.
func (r *FraudAlertMemoryRepository) List(ctx context.Context, filter models.AlertFilter) ([]models.FraudAlert, error) {
	r.mu.RLock()
	out := make([]models.FraudAlert, 0, len(r.items))
	for _, a := range r.items {
		if filter.Match(a) {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// UpdateStatus sets the status of an alert and returns the updated record,
// or nil if the alert does not exist.
func (r *FraudAlertMemoryRepository) UpdateStatus(ctx context.Context, id, status string) (*models.FraudAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			alert := r.items[i]
			return &alert, nil
		}
	}
	return nil, nil
}

// FraudAlertPostgresRepository stores fraud alerts in PostgreSQL.
type FraudAlertPostgresRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewFraudAlertPostgresRepository creates a new repository instance.
func NewFraudAlertPostgresRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FraudAlertPostgresRepository {
	return &FraudAlertPostgresRepository{db: db, txGetter: txGetter}
}

// Save inserts an alert.
func (r *FraudAlertPostgresRepository) Save(ctx context.Context, alert models.FraudAlert) error {
	const query = `
		INSERT INTO fraud_alerts (id, transaction_id, type, severity, description, created_at, status, metadata)
		VALUES (:id, :transaction_id, :type, :severity, :description, :created_at, :status, :metadata)
	`

	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db, r.txGetter), query, alert)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{alert.ID, alert.TransactionID, alert.Type, alert.Severity},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// List returns matching alerts, newest first.
func (r *FraudAlertPostgresRepository) List(ctx context.Context, filter models.AlertFilter) ([]models.FraudAlert, error) {
	const query = `
		SELECT id, transaction_id, type, severity, description, created_at, status, metadata
		FROM fraud_alerts
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR severity = $2)
		ORDER BY created_at DESC
	`
	args := []any{filter.Status, filter.Severity}

	var alerts []models.FraudAlert
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &alerts, query, args...)

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", len(alerts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []models.FraudAlert{}
	}
	return alerts, nil
}

// UpdateStatus sets the status of an alert and returns the updated record,
// or nil if the alert does not exist.
func (r *FraudAlertPostgresRepository) UpdateStatus(ctx context.Context, id, status string) (*models.FraudAlert, error) {
	const query = `
		UPDATE fraud_alerts
		SET status = $2
		WHERE id = $1
		RETURNING id, transaction_id, type, severity, description, created_at, status, metadata
	`

	var alert models.FraudAlert
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &alert, query, id, status)

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, status},
		"result", alert.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &alert, nil
}
