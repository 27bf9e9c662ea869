package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"parkease/internal/wallet"
)

type RuleType string

const (
	RulePercentage RuleType = "PERCENTAGE"
	RuleFixed      RuleType = "FIXED"
)

// CommissionRule is an admin-configured platform cut. Rules are evaluated in
// priority order (highest first); the first active rule whose MinBookingValue
// is unset or satisfied wins. AppliesTo is informational scoping carried from
// the admin UI and does not participate in selection.
type CommissionRule struct {
	ID              int              `db:"id" json:"id"`
	Name            string           `db:"name" json:"name"`
	Type            RuleType         `db:"type" json:"type"`
	Value           decimal.Decimal  `db:"value" json:"value"`
	AppliesTo       string           `db:"applies_to" json:"applies_to"`
	MinBookingValue *decimal.Decimal `db:"min_booking_value" json:"min_booking_value,omitempty"`
	MaxCommission   *decimal.Decimal `db:"max_commission" json:"max_commission,omitempty"`
	Priority        int              `db:"priority" json:"priority"`
	IsActive        bool             `db:"is_active" json:"is_active"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
}

// BookingFinance is the slice of a booking the ledger needs: the gross amount
// and the owner chain it pays out to.
type BookingFinance struct {
	BookingID        int             `db:"booking_id"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	Currency         string          `db:"currency"`
	ConfirmationCode string          `db:"confirmation_code"`
	Status           string          `db:"status"`
	OwnerID          int             `db:"owner_id"`
	OwnerUserID      int             `db:"owner_user_id"`
}

// CreditResult reports the outcome of CreditEarnings. AlreadyCredited is true
// when a prior credit for the booking was found and nothing was written.
type CreditResult struct {
	Wallet          *wallet.Wallet  `json:"wallet"`
	NetEarnings     decimal.Decimal `json:"net_earnings"`
	Commission      decimal.Decimal `json:"commission"`
	AlreadyCredited bool            `json:"already_credited"`
}

type CreateRuleRequest struct {
	Name            string   `json:"name" binding:"required,min=2,max=200"`
	Type            RuleType `json:"type" binding:"required,oneof=PERCENTAGE FIXED"`
	Value           float64  `json:"value" binding:"required,gt=0"`
	AppliesTo       string   `json:"applies_to" binding:"required,oneof=all airport monthly hourly"`
	MinBookingValue *float64 `json:"min_booking_value" binding:"omitempty,gte=0"`
	MaxCommission   *float64 `json:"max_commission" binding:"omitempty,gt=0"`
	Priority        int      `json:"priority"`
	IsActive        *bool    `json:"is_active"`
}
