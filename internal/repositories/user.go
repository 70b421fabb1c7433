package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
)

// UserMemoryRepository keeps users in process memory.
type UserMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
}

// NewUserMemoryRepository creates a repository holding the given users.
func NewUserMemoryRepository(users []models.User) *UserMemoryRepository {
	r := &UserMemoryRepository{
		byID:    make(map[uuid.UUID]models.User, len(users)),
		byEmail: make(map[string]uuid.UUID, len(users)),
	}
	for _, u := range users {
		r.byID[u.ID] = u
		r.byEmail[strings.ToLower(u.Email)] = u.ID
	}
	return r
}

// GetByEmail returns the user with the given email, or nil if there is none.
func (r *UserMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	u := r.byID[id]
	return &u, nil
}

// GetByID returns the user with the given ID, or nil if there is none.
func (r *UserMemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// Delete removes a user. Tokens issued for it stop resolving.
func (r *UserMemoryRepository) Delete(ctx context.Context, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, strings.ToLower(u.Email))
		delete(r.byID, id)
	}
}

// UserPostgresRepository reads users from PostgreSQL.
type UserPostgresRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

// NewUserPostgresRepository creates a new repository instance.
// txGetter may be nil; when it returns a transaction, lookups join it.
func NewUserPostgresRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserPostgresRepository {
	return &UserPostgresRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with the given email, or nil if there is none.
func (r *UserPostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
		SELECT user_id, email, name, role, kyc_status, password_hash
		FROM users
		WHERE LOWER(email) = LOWER($1)
		LIMIT 1
	`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with the given ID, or nil if there is none.
func (r *UserPostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const query = `
		SELECT user_id, email, name, role, kyc_status, password_hash
		FROM users
		WHERE user_id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *UserPostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)

	logger.Log.Infow(
		"postgres query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{arg},
		"result", user.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
