package finance

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
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

func walletRows(balance string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "owner_id", "balance", "currency", "created_at", "updated_at"}).
		AddRow(1, 7, balance, "USD", now, now)
}

func creditParamsFixture() CreditParams {
	return CreditParams{
		OwnerID:          7,
		BookingID:        42,
		ConfirmationCode: "PK-1A2B3C4D",
		Currency:         "USD",
		Total:            dec("119.99"),
		Commission:       dec("12.00"),
		Net:              dec("107.99"),
	}
}

func TestCreditBooking_FreshBookingWritesLedgerPair(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(walletRows("100.00"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs("CREDIT", 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wallet_transactions")).
		WithArgs(1, "CREDIT", sqlmock.AnyArg(), "Earnings from booking PK-1A2B3C4D", "COMPLETED", 42).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wallet_transactions")).
		WithArgs(1, "COMMISSION", sqlmock.AnyArg(), "Platform commission for booking PK-1A2B3C4D", "COMPLETED", 42).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets")).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, applied, err := repo.CreditBooking(context.Background(), creditParamsFixture())

	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, dec("207.99").Equal(w.Balance), "balance: %s", w.Balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditBooking_DuplicateBookingWritesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(walletRows("207.99"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs("CREDIT", 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	w, applied, err := repo.CreditBooking(context.Background(), creditParamsFixture())

	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, dec("207.99").Equal(w.Balance))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditBooking_CreatesMissingWallet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "balance", "currency", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO wallets")).
		WithArgs(7, "USD").
		WillReturnRows(walletRows("0"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(")).
		WithArgs("CREDIT", 42).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wallet_transactions")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wallet_transactions")).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, applied, err := repo.CreditBooking(context.Background(), creditParamsFixture())

	require.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, dec("107.99").Equal(w.Balance), "balance: %s", w.Balance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeductRefund_MissingWalletIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "balance", "currency", "created_at", "updated_at"}))
	mock.ExpectRollback()

	applied, err := repo.DeductRefund(context.Background(), 7, 42, dec("50"))

	require.NoError(t, err)
	assert.False(t, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeductRefund_WritesRefundEntry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets")).
		WithArgs(7).
		WillReturnRows(walletRows("207.99"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wallet_transactions")).
		WithArgs(1, "REFUND", sqlmock.AnyArg(), "Refund deduction for booking 42", "COMPLETED", 42).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE wallets")).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := repo.DeductRefund(context.Background(), 7, 42, dec("50"))

	require.NoError(t, err)
	assert.True(t, applied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveRules_OrderedByPriority(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "type", "value", "applies_to",
		"min_booking_value", "max_commission", "priority", "is_active", "created_at", "updated_at",
	}).
		AddRow(2, "Airport premium", "PERCENTAGE", "20", "airport", "100", nil, 10, true, now, now).
		AddRow(1, "Base rate", "PERCENTAGE", "10", "all", nil, nil, 0, true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM commission_rules")).WillReturnRows(rows)

	rules, err := repo.ActiveRules(context.Background())

	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, 2, rules[0].ID)
	require.NotNil(t, rules[0].MinBookingValue)
	assert.True(t, dec("100").Equal(*rules[0].MinBookingValue))
	assert.Nil(t, rules[1].MinBookingValue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingFinance_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings b")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))

	_, err := repo.GetBookingFinance(context.Background(), 42)
	require.ErrorIs(t, err, ErrBookingNotFound)
}
