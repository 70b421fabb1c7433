package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		user_id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'user',
		kyc_status VARCHAR(32) NOT NULL DEFAULT 'pending',
		password_hash VARCHAR(255) NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		amount DOUBLE PRECISION NOT NULL,
		currency VARCHAR(8) NOT NULL,
		type VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		from_user TEXT NOT NULL DEFAULT '',
		to_user TEXT NOT NULL DEFAULT '',
		risk_score INT NOT NULL DEFAULT 0,
		metadata JSONB NOT NULL DEFAULT '{}'::JSONB
	);

	CREATE INDEX IF NOT EXISTS transactions_created_at_idx ON transactions (created_at DESC);

	CREATE TABLE IF NOT EXISTS fraud_alerts (
		id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL,
		type VARCHAR(32) NOT NULL,
		severity VARCHAR(16) NOT NULL,
		description TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status VARCHAR(32) NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}'::JSONB
	);
`

// Migrate creates the tables used by the Postgres repositories.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)

	logger.Log.Infow(
		"postgres query",
		"query", "migrate schema",
		"result", err == nil,
		"error", err,
	)

	return err
}

// Seed inserts the demo records, leaving existing rows untouched.
func Seed(ctx context.Context, db *sqlx.DB, users []models.User, txns []models.Transaction, alerts []models.FraudAlert) error {
	const insertUser = `
		INSERT INTO users (user_id, email, name, role, kyc_status, password_hash)
		VALUES (:user_id, :email, :name, :role, :kyc_status, :password_hash)
		ON CONFLICT DO NOTHING
	`
	const insertTransaction = `
		INSERT INTO transactions (id, amount, currency, type, status, created_at, from_user, to_user, risk_score, metadata)
		VALUES (:id, :amount, :currency, :type, :status, :created_at, :from_user, :to_user, :risk_score, :metadata)
		ON CONFLICT (id) DO NOTHING
	`
	const insertAlert = `
		INSERT INTO fraud_alerts (id, transaction_id, type, severity, description, created_at, status, metadata)
		VALUES (:id, :transaction_id, :type, :severity, :description, :created_at, :status, :metadata)
		ON CONFLICT (id) DO NOTHING
	`

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range users {
		if err := namedExec(ctx, tx, insertUser, u); err != nil {
			return err
		}
	}
	for _, t := range txns {
		if err := namedExec(ctx, tx, insertTransaction, t); err != nil {
			return err
		}
	}
	for _, a := range alerts {
		if err := namedExec(ctx, tx, insertAlert, a); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func namedExec(ctx context.Context, tx *sqlx.Tx, query string, arg any) error {
	_, err := tx.NamedExecContext(ctx, query, arg)

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"result", err == nil,
		"error", err,
	)

	return err
}
