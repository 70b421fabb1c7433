package repositories

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionColumns = []string{"id", "amount", "currency", "type", "status", "created_at", "from_user", "to_user", "risk_score", "metadata"}

func TestTransactionMemoryRepository_SaveAndList(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	repo := NewTransactionMemoryRepository([]models.Transaction{
		{ID: "old", Status: models.StatusCompleted, Type: models.TransactionTransfer, Timestamp: now.Add(-time.Hour)},
		{ID: "flagged", Status: models.StatusFlagged, Type: models.TransactionPayment, Timestamp: now.Add(-time.Minute)},
	})

	before, err := repo.List(ctx, models.TransactionFilter{})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, models.Transaction{ID: "new", Status: models.StatusCompleted, Type: models.TransactionTransfer, Timestamp: now}))

	after, err := repo.List(ctx, models.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
	assert.Equal(t, "new", after[0].ID, "newest first")

	flagged, err := repo.List(ctx, models.TransactionFilter{Status: models.StatusFlagged})
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, "flagged", flagged[0].ID)

	limited, err := repo.List(ctx, models.TransactionFilter{Type: models.TransactionTransfer, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)

	got, err := repo.GetByID(ctx, "old")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusCompleted, got.Status)

	missing, err := repo.GetByID(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionMemoryRepository_ConcurrentSave(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionMemoryRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Save(ctx, models.Transaction{Timestamp: time.Now()})
		}()
	}
	wg.Wait()

	all, err := repo.List(ctx, models.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func TestTransactionPostgresRepository_Save(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTransactionPostgresRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), models.Transaction{
		ID: "t1", Amount: 10, Currency: "NGN", Type: models.TransactionTransfer,
		Status: models.StatusCompleted, Timestamp: time.Now(), Metadata: models.Metadata{"k": "v"},
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionPostgresRepository_SaveUsesRequestTx(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	repo := NewTransactionPostgresRepository(db, func(ctx context.Context) *sqlx.Tx { return tx })
	require.NoError(t, repo.Save(context.Background(), models.Transaction{ID: "t1", Timestamp: time.Now()}))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionPostgresRepository_List(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTransactionPostgresRepository(db, nil)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions")).
		WithArgs(models.StatusFlagged, "", 5).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow("t1", 99.5, "NGN", models.TransactionTransfer, models.StatusFlagged, now, "u1", "u2", 80, []byte(`{"location":"Lagos"}`)))

	txns, err := repo.List(context.Background(), models.TransactionFilter{Status: models.StatusFlagged, Limit: 5})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, 80, txns[0].RiskScore)
	assert.Equal(t, "Lagos", txns[0].Metadata["location"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionPostgresRepository_ListError(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTransactionPostgresRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions")).WillReturnError(errors.New("db down"))

	txns, err := repo.List(context.Background(), models.TransactionFilter{})
	assert.Error(t, err)
	assert.Nil(t, txns)
}

func TestTransactionPostgresRepository_GetByID(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := NewTransactionPostgresRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE id = $1")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow("t1", 10.0, "NGN", models.TransactionPayment, models.StatusCompleted, time.Now(), "u1", "u2", 3, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE id = $1")).
		WithArgs("t2").
		WillReturnRows(sqlmock.NewRows(transactionColumns))

	txn, err := repo.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, models.Metadata{}, txn.Metadata)

	txn, err = repo.GetByID(context.Background(), "t2")
	assert.NoError(t, err)
	assert.Nil(t, txn)

	assert.NoError(t, mock.ExpectationsWereMet())
}
