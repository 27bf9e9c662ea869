package finance

import (
	"context"

	"github.com/shopspring/decimal"

	"parkease/internal/wallet"
)

// CreditParams carries one booking's resolved amounts into the atomic credit.
type CreditParams struct {
	OwnerID          int
	BookingID        int
	ConfirmationCode string
	Currency         string
	Total            decimal.Decimal
	Commission       decimal.Decimal
	Net              decimal.Decimal
}

type Repository interface {
	ActiveRules(ctx context.Context) ([]CommissionRule, error)
	ListRules(ctx context.Context) ([]CommissionRule, error)
	CreateRule(ctx context.Context, req CreateRuleRequest) (*CommissionRule, error)
	UpdateRule(ctx context.Context, id int, req CreateRuleRequest) (*CommissionRule, error)
	DeleteRule(ctx context.Context, id int) error

	GetBookingFinance(ctx context.Context, bookingID int) (*BookingFinance, error)

	// CreditBooking atomically records the CREDIT/COMMISSION pair and bumps
	// the wallet balance by net. Returns applied=false without writing
	// anything when a CREDIT for the booking already exists.
	CreditBooking(ctx context.Context, p CreditParams) (w *wallet.Wallet, applied bool, err error)

	// DeductRefund atomically records a REFUND entry and decrements the
	// balance. Returns applied=false when the owner has no wallet.
	DeductRefund(ctx context.Context, ownerID, bookingID int, amount decimal.Decimal) (applied bool, err error)
}
