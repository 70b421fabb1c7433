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

// TransactionMemoryRepository keeps transactions in process memory.
// Records are lost on restart.
type TransactionMemoryRepository struct {
	mu    sync.RWMutex
	items []models.Transaction
}

// NewTransactionMemoryRepository creates a repository seeded with the given transactions.
func NewTransactionMemoryRepository(seed []models.Transaction) *TransactionMemoryRepository {
	items := make([]models.Transaction, len(seed))
	copy(items, seed)
	return &TransactionMemoryRepository{items: items}
}

// Save appends a transaction.
func (r *TransactionMemoryRepository) Save(ctx context.Context, txn models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, txn)
	return nil
}

// GetByID returns the transaction with the given ID, or nil if there is none.
func (r *TransactionMemoryRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.items {
		if r.items[i].ID == id {
			txn := r.items[i]
			return &txn, nil
		}
	}
	return nil, nil
}

// List returns matching transactions, newest first.
func (r *TransactionMemoryRepository) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	r.mu.RLock()
	out := make([]models.Transaction, 0, len(r.items))
	for _, txn := range r.items {
		if filter.Match(txn) {
			out = append(out, txn)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// TransactionPostgresRepository stores transactions in PostgreSQL.
type TransactionPostgresRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewTransactionPostgresRepository creates a new repository instance.
// txGetter may be nil; when it returns a transaction, every query joins it.
func NewTransactionPostgresRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionPostgresRepository {
	return &TransactionPostgresRepository{db: db, txGetter: txGetter}
}

// Save inserts a transaction.
func (r *TransactionPostgresRepository) Save(ctx context.Context, txn models.Transaction) error {
	const query = `
		INSERT INTO transactions (id, amount, currency, type, status, created_at, from_user, to_user, risk_score, metadata)
		VALUES (:id, :amount, :currency, :type, :status, :created_at, :from_user, :to_user, :risk_score, :metadata)
	`

	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db, r.txGetter), query, txn)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{txn.ID, txn.Amount, txn.Currency, txn.Type, txn.Status},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// GetByID returns the transaction with the given ID, or nil if there is none.
func (r *TransactionPostgresRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	const query = `
		SELECT id, amount, currency, type, status, created_at, from_user, to_user, risk_score, metadata
		FROM transactions
		WHERE id = $1
	`

	var txn models.Transaction
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &txn, query, id)

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", txn.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// List returns matching transactions, newest first.
func (r *TransactionPostgresRepository) List(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	const query = `
		SELECT id, amount, currency, type, status, created_at, from_user, to_user, risk_score, metadata
		FROM transactions
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC
		LIMIT NULLIF($3::INT, 0)
	`
	args := []any{filter.Status, filter.Type, filter.Limit}

	var txns []models.Transaction
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &txns, query, args...)

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	return txns, nil
}

// executor picks the request scoped transaction when one is present.
func executor(ctx context.Context, db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}
