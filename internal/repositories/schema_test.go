package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sbilibin2017/gw-fintech-demo/internal/mockdata"
	"github.com/sbilibin2017/gw-fintech-demo/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMigrate(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed(t *testing.T) {
	db, mock := newSQLMock(t)
	now := time.Now()
	users := []models.User{{ID: mockdata.DemoUserID, Email: "demo@fintech.dev", PasswordHash: "x"}}
	txns := mockdata.Transactions(now)
	alerts := mockdata.FraudAlerts(now)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnResult(sqlmock.NewResult(0, 1))
	for range txns {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	for range alerts {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fraud_alerts")).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	assert.NoError(t, Seed(context.Background(), db, users, txns, alerts))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_RollsBackOnError(t *testing.T) {
	db, mock := newSQLMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := Seed(context.Background(), db, []models.User{{ID: mockdata.DemoUserID}}, nil, nil)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
