package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeCredit           TransactionType = "CREDIT"
	TypeDebit            TransactionType = "DEBIT"
	TypeWithdrawal       TransactionType = "WITHDRAWAL"
	TypeRefund           TransactionType = "REFUND"
	TypeCommission       TransactionType = "COMMISSION"
	TypeManualAdjustment TransactionType = "MANUAL_ADJUSTMENT"
)

const StatusCompleted = "COMPLETED"

// Wallet holds an owner's running balance. One wallet per owner; created
// lazily on first credit.
type Wallet struct {
	ID        int             `db:"id" json:"id"`
	OwnerID   int             `db:"owner_id" json:"owner_id"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	Currency  string          `db:"currency" json:"currency"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// Transaction is an append-only ledger entry. Amount is signed: positive for
// CREDIT, negative for COMMISSION, REFUND and WITHDRAWAL. Reference carries
// the booking id for booking-driven entries.
type Transaction struct {
	ID          int             `db:"id" json:"id"`
	WalletID    int             `db:"wallet_id" json:"wallet_id"`
	Type        TransactionType `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description"`
	Status      string          `db:"status" json:"status"`
	Reference   *int            `db:"reference" json:"reference,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
