package wallet

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGetByOwnerID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "balance", "currency", "created_at", "updated_at"}).
			AddRow(1, 7, "107.99", "USD", now, now))

	w, err := repo.GetByOwnerID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 7, w.OwnerID)
	assert.True(t, dec("107.99").Equal(w.Balance))
}

func TestGetByOwnerID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "balance", "currency", "created_at", "updated_at"}))

	_, err := repo.GetByOwnerID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestGetOrCreate_CreatesWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "balance", "currency", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallets")).
		WithArgs(7, "USD").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "balance", "currency", "created_at", "updated_at"}).
			AddRow(1, 7, "0", "USD", now, now))

	w, err := repo.GetOrCreate(context.Background(), 7, "USD")

	require.NoError(t, err)
	assert.Equal(t, 1, w.ID)
	assert.True(t, w.Balance.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTransactions_NoWalletReturnsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM wallets")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	txs, err := repo.ListTransactions(context.Background(), 7, 50, 0)

	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestListTransactions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	ref := 42

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM wallets")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallet_transactions")).
		WithArgs(1, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_id", "type", "amount", "description", "status", "reference", "created_at"}).
			AddRow(2, 1, "COMMISSION", "-12.00", "Platform commission for booking PK-1A2B3C4D", StatusCompleted, ref, now).
			AddRow(1, 1, "CREDIT", "119.99", "Earnings from booking PK-1A2B3C4D", StatusCompleted, ref, now))

	txs, err := repo.ListTransactions(context.Background(), 7, 50, 0)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, TypeCommission, txs[0].Type)
	assert.True(t, dec("-12.00").Equal(txs[0].Amount))
	assert.Equal(t, TypeCredit, txs[1].Type)
	assert.True(t, dec("119.99").Equal(txs[1].Amount))
	require.NotNil(t, txs[0].Reference)
	assert.Equal(t, 42, *txs[0].Reference)
}
