package finance

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parkease/internal/wallet"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ActiveRules(ctx context.Context) ([]CommissionRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CommissionRule), args.Error(1)
}

func (m *mockRepository) ListRules(ctx context.Context) ([]CommissionRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CommissionRule), args.Error(1)
}

func (m *mockRepository) CreateRule(ctx context.Context, req CreateRuleRequest) (*CommissionRule, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CommissionRule), args.Error(1)
}

func (m *mockRepository) UpdateRule(ctx context.Context, id int, req CreateRuleRequest) (*CommissionRule, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CommissionRule), args.Error(1)
}

func (m *mockRepository) DeleteRule(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) GetBookingFinance(ctx context.Context, bookingID int) (*BookingFinance, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingFinance), args.Error(1)
}

func (m *mockRepository) CreditBooking(ctx context.Context, p CreditParams) (*wallet.Wallet, bool, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*wallet.Wallet), args.Bool(1), args.Error(2)
}

func (m *mockRepository) DeductRefund(ctx context.Context, ownerID, bookingID int, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, ownerID, bookingID, amount)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID int, notifType, title, message string) error {
	args := m.Called(ctx, userID, notifType, title, message)
	return args.Error(0)
}

func bookingFixture() *BookingFinance {
	return &BookingFinance{
		BookingID:        42,
		TotalPrice:       dec("119.99"),
		Currency:         "USD",
		ConfirmationCode: "PK-1A2B3C4D",
		Status:           "completed",
		OwnerID:          7,
		OwnerUserID:      99,
	}
}

func TestCreditEarnings_AppliesNetAndNotifies(t *testing.T) {
	repo := new(mockRepository)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	bf := bookingFixture()
	rules := []CommissionRule{{Type: RulePercentage, Value: dec("10")}}
	w := &wallet.Wallet{ID: 1, OwnerID: 7, Balance: dec("107.99"), Currency: "USD"}

	repo.On("GetBookingFinance", mock.Anything, 42).Return(bf, nil)
	repo.On("ActiveRules", mock.Anything).Return(rules, nil)
	repo.On("CreditBooking", mock.Anything, mock.MatchedBy(func(p CreditParams) bool {
		return p.OwnerID == 7 &&
			p.BookingID == 42 &&
			p.Total.Equal(dec("119.99")) &&
			p.Commission.Equal(dec("12.00")) &&
			p.Net.Equal(dec("107.99"))
	})).Return(w, true, nil)
	notifier.On("Notify", mock.Anything, 99, "earnings_credited", "Earnings Credited", mock.Anything).Return(nil)

	result, err := svc.CreditEarnings(context.Background(), 42)

	require.NoError(t, err)
	assert.False(t, result.AlreadyCredited)
	assert.True(t, result.NetEarnings.Equal(dec("107.99")))
	assert.True(t, result.Commission.Equal(dec("12.00")))
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestCreditEarnings_AlreadyCreditedSkipsNotification(t *testing.T) {
	repo := new(mockRepository)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	w := &wallet.Wallet{ID: 1, OwnerID: 7, Balance: dec("107.99"), Currency: "USD"}

	repo.On("GetBookingFinance", mock.Anything, 42).Return(bookingFixture(), nil)
	repo.On("ActiveRules", mock.Anything).Return([]CommissionRule{}, nil)
	repo.On("CreditBooking", mock.Anything, mock.Anything).Return(w, false, nil)

	result, err := svc.CreditEarnings(context.Background(), 42)

	require.NoError(t, err)
	assert.True(t, result.AlreadyCredited)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreditEarnings_NotifierFailureDoesNotFailCredit(t *testing.T) {
	repo := new(mockRepository)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	w := &wallet.Wallet{ID: 1, OwnerID: 7, Balance: dec("101.99"), Currency: "USD"}

	repo.On("GetBookingFinance", mock.Anything, 42).Return(bookingFixture(), nil)
	repo.On("ActiveRules", mock.Anything).Return([]CommissionRule{}, nil)
	repo.On("CreditBooking", mock.Anything, mock.Anything).Return(w, true, nil)
	notifier.On("Notify", mock.Anything, 99, "earnings_credited", "Earnings Credited", mock.Anything).
		Return(errors.New("smtp down"))

	result, err := svc.CreditEarnings(context.Background(), 42)

	require.NoError(t, err)
	assert.False(t, result.AlreadyCredited)
}

func TestCreditEarnings_NoRulesUsesDefaultRate(t *testing.T) {
	repo := new(mockRepository)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	bf := bookingFixture()
	bf.TotalPrice = dec("200")
	w := &wallet.Wallet{ID: 1, OwnerID: 7, Balance: dec("170"), Currency: "USD"}

	repo.On("GetBookingFinance", mock.Anything, 42).Return(bf, nil)
	repo.On("ActiveRules", mock.Anything).Return([]CommissionRule{}, nil)
	repo.On("CreditBooking", mock.Anything, mock.MatchedBy(func(p CreditParams) bool {
		return p.Commission.Equal(dec("30")) && p.Net.Equal(dec("170"))
	})).Return(w, true, nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreditEarnings(context.Background(), 42)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreditEarnings_BookingNotFound(t *testing.T) {
	repo := new(mockRepository)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetBookingFinance", mock.Anything, 42).Return(nil, ErrBookingNotFound)

	_, err := svc.CreditEarnings(context.Background(), 42)
	require.ErrorIs(t, err, ErrBookingNotFound)
	repo.AssertNotCalled(t, "CreditBooking", mock.Anything, mock.Anything)
}

func TestProcessRefundDeduction_AppliedNotifiesOwner(t *testing.T) {
	repo := new(mockRepository)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetBookingFinance", mock.Anything, 42).Return(bookingFixture(), nil)
	repo.On("DeductRefund", mock.Anything, 7, 42, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(dec("50"))
	})).Return(true, nil)
	notifier.On("Notify", mock.Anything, 99, "refund_deducted", "Refund Deducted", mock.Anything).Return(nil)

	err := svc.ProcessRefundDeduction(context.Background(), 42, dec("50"))

	require.NoError(t, err)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProcessRefundDeduction_NoWalletIsSilentNoop(t *testing.T) {
	repo := new(mockRepository)
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)

	repo.On("GetBookingFinance", mock.Anything, 42).Return(bookingFixture(), nil)
	repo.On("DeductRefund", mock.Anything, 7, 42, mock.Anything).Return(false, nil)

	err := svc.ProcessRefundDeduction(context.Background(), 42, dec("50"))

	require.NoError(t, err)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculateCommission(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, new(mockNotifier))

	repo.On("GetBookingFinance", mock.Anything, 42).Return(bookingFixture(), nil)
	repo.On("ActiveRules", mock.Anything).Return([]CommissionRule{
		{Type: RulePercentage, Value: dec("10")},
	}, nil)

	commission, err := svc.CalculateCommission(context.Background(), 42)

	require.NoError(t, err)
	assert.True(t, dec("12.00").Equal(commission))
}
