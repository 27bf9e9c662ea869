package finance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"parkease/internal/wallet"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrRuleNotFound    = errors.New("commission rule not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const ruleColumns = `id, name, type, value, applies_to, min_booking_value, max_commission, priority, is_active, created_at, updated_at`

func (r *repository) ActiveRules(ctx context.Context) ([]CommissionRule, error) {
	var rules []CommissionRule
	err := r.db.SelectContext(ctx, &rules, `
		SELECT `+ruleColumns+`
		FROM commission_rules
		WHERE is_active = TRUE
		ORDER BY priority DESC, id
	`)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) ListRules(ctx context.Context) ([]CommissionRule, error) {
	var rules []CommissionRule
	err := r.db.SelectContext(ctx, &rules, `
		SELECT `+ruleColumns+`
		FROM commission_rules
		ORDER BY priority DESC, id
	`)
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repository) CreateRule(ctx context.Context, req CreateRuleRequest) (*CommissionRule, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var rule CommissionRule
	err := r.db.GetContext(ctx, &rule, `
		INSERT INTO commission_rules (name, type, value, applies_to, min_booking_value, max_commission, priority, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+ruleColumns+`
	`, req.Name, req.Type, req.Value, req.AppliesTo, req.MinBookingValue, req.MaxCommission, req.Priority, isActive)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) UpdateRule(ctx context.Context, id int, req CreateRuleRequest) (*CommissionRule, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	var rule CommissionRule
	err := r.db.GetContext(ctx, &rule, `
		UPDATE commission_rules
		SET name = $1, type = $2, value = $3, applies_to = $4, min_booking_value = $5,
		    max_commission = $6, priority = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+ruleColumns+`
	`, req.Name, req.Type, req.Value, req.AppliesTo, req.MinBookingValue, req.MaxCommission, req.Priority, isActive, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repository) DeleteRule(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM commission_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *repository) GetBookingFinance(ctx context.Context, bookingID int) (*BookingFinance, error) {
	var bf BookingFinance
	err := r.db.GetContext(ctx, &bf, `
		SELECT
			b.id AS booking_id,
			b.total_price,
			b.currency,
			b.confirmation_code,
			b.status,
			o.id AS owner_id,
			o.user_id AS owner_user_id
		FROM bookings b
		JOIN spots s ON b.spot_id = s.id
		JOIN locations l ON s.location_id = l.id
		JOIN owners o ON l.owner_id = o.id
		WHERE b.id = $1
	`, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &bf, nil
}

func (r *repository) CreditBooking(ctx context.Context, p CreditParams) (*wallet.Wallet, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	w, err := lockOrCreateWallet(ctx, tx, p.OwnerID, p.Currency)
	if err != nil {
		return nil, false, err
	}

	// Idempotency guard: the duplicate check runs inside the transaction,
	// under the wallet row lock, and is additionally backed by the partial
	// unique index on (reference) WHERE type = 'CREDIT'.
	var exists bool
	err = tx.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM wallet_transactions
			WHERE type = $1 AND reference = $2
		)
	`, wallet.TypeCredit, p.BookingID)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return w, false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (wallet_id, type, amount, description, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.ID, wallet.TypeCredit, p.Total,
		fmt.Sprintf("Earnings from booking %s", p.ConfirmationCode), wallet.StatusCompleted, p.BookingID)
	if err != nil {
		return nil, false, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (wallet_id, type, amount, description, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.ID, wallet.TypeCommission, p.Commission.Neg(),
		fmt.Sprintf("Platform commission for booking %s", p.ConfirmationCode), wallet.StatusCompleted, p.BookingID)
	if err != nil {
		return nil, false, err
	}

	// Balance moves by net only; the gross credit and the commission debit
	// are bookkeeping detail in the ledger rows.
	newBalance := w.Balance.Add(p.Net)
	_, err = tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = $1, updated_at = NOW()
		WHERE id = $2
	`, newBalance, w.ID)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	w.Balance = newBalance
	return w, true, nil
}

func (r *repository) DeductRefund(ctx context.Context, ownerID, bookingID int, amount decimal.Decimal) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var w wallet.Wallet
	err = tx.QueryRowxContext(ctx, `
		SELECT id, owner_id, balance, currency, created_at, updated_at
		FROM wallets
		WHERE owner_id = $1
		FOR UPDATE
	`, ownerID).StructScan(&w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No wallet, nothing to deduct from. Unlike the credit path the
			// refund path does not create one.
			return false, nil
		}
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (wallet_id, type, amount, description, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.ID, wallet.TypeRefund, amount.Neg(),
		fmt.Sprintf("Refund deduction for booking %d", bookingID), wallet.StatusCompleted, bookingID)
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE wallets
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2
	`, amount, w.ID)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

func lockOrCreateWallet(ctx context.Context, tx *sqlx.Tx, ownerID int, currency string) (*wallet.Wallet, error) {
	var w wallet.Wallet
	err := tx.QueryRowxContext(ctx, `
		SELECT id, owner_id, balance, currency, created_at, updated_at
		FROM wallets
		WHERE owner_id = $1
		FOR UPDATE
	`, ownerID).StructScan(&w)
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO wallets (owner_id, currency)
		VALUES ($1, $2)
		RETURNING id, owner_id, balance, currency, created_at, updated_at
	`, ownerID, currency).StructScan(&w)
	if err != nil {
		return nil, err
	}

	return &w, nil
}
