package finance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"parkease/internal/logger"
	"parkease/internal/metrics"
)

// Notifier delivers out-of-band owner notifications. Delivery failures must
// never affect ledger state; the service logs them and moves on.
type Notifier interface {
	Notify(ctx context.Context, userID int, notifType, title, message string) error
}

type Service interface {
	CalculateCommission(ctx context.Context, bookingID int) (decimal.Decimal, error)
	CreditEarnings(ctx context.Context, bookingID int) (*CreditResult, error)
	ProcessRefundDeduction(ctx context.Context, bookingID int, refundAmount decimal.Decimal) error

	ListRules(ctx context.Context) ([]CommissionRule, error)
	CreateRule(ctx context.Context, req CreateRuleRequest) (*CommissionRule, error)
	UpdateRule(ctx context.Context, id int, req CreateRuleRequest) (*CommissionRule, error)
	DeleteRule(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) CalculateCommission(ctx context.Context, bookingID int) (decimal.Decimal, error) {
	bf, err := s.repo.GetBookingFinance(ctx, bookingID)
	if err != nil {
		return decimal.Zero, err
	}

	rules, err := s.repo.ActiveRules(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return CommissionFor(rules, bf.TotalPrice), nil
}

func (s *service) CreditEarnings(ctx context.Context, bookingID int) (*CreditResult, error) {
	bf, err := s.repo.GetBookingFinance(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	rules, err := s.repo.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}

	commission := CommissionFor(rules, bf.TotalPrice)
	net := bf.TotalPrice.Sub(commission)

	w, applied, err := s.repo.CreditBooking(ctx, CreditParams{
		OwnerID:          bf.OwnerID,
		BookingID:        bf.BookingID,
		ConfirmationCode: bf.ConfirmationCode,
		Currency:         bf.Currency,
		Total:            bf.TotalPrice,
		Commission:       commission,
		Net:              net,
	})
	if err != nil {
		return nil, err
	}

	if !applied {
		logger.Info("earnings already credited, skipping",
			"booking_id", bookingID,
			"owner_id", bf.OwnerID,
		)
		return &CreditResult{Wallet: w, NetEarnings: net, Commission: commission, AlreadyCredited: true}, nil
	}

	metrics.RecordEarningsCredit(commission.InexactFloat64())
	logger.Info("earnings credited",
		"booking_id", bookingID,
		"owner_id", bf.OwnerID,
		"net", net.String(),
		"commission", commission.String(),
	)

	if err := s.notifier.Notify(ctx, bf.OwnerUserID, "earnings_credited",
		"Earnings Credited",
		fmt.Sprintf("Earnings credited: %s %s from booking %s", net.StringFixed(2), bf.Currency, bf.ConfirmationCode),
	); err != nil {
		logger.Error("failed to notify owner of credited earnings", "booking_id", bookingID, "error", err)
	}

	return &CreditResult{Wallet: w, NetEarnings: net, Commission: commission}, nil
}

func (s *service) ProcessRefundDeduction(ctx context.Context, bookingID int, refundAmount decimal.Decimal) error {
	bf, err := s.repo.GetBookingFinance(ctx, bookingID)
	if err != nil {
		return err
	}

	applied, err := s.repo.DeductRefund(ctx, bf.OwnerID, bookingID, refundAmount)
	if err != nil {
		return err
	}

	if !applied {
		logger.Info("refund deduction skipped, owner has no wallet",
			"booking_id", bookingID,
			"owner_id", bf.OwnerID,
		)
		return nil
	}

	metrics.RecordRefundDeduction()
	logger.Info("refund deducted",
		"booking_id", bookingID,
		"owner_id", bf.OwnerID,
		"amount", refundAmount.String(),
	)

	if err := s.notifier.Notify(ctx, bf.OwnerUserID, "refund_deducted",
		"Refund Deducted",
		fmt.Sprintf("%s %s was deducted from your wallet for refunded booking %s", refundAmount.StringFixed(2), bf.Currency, bf.ConfirmationCode),
	); err != nil {
		logger.Error("failed to notify owner of refund deduction", "booking_id", bookingID, "error", err)
	}

	return nil
}

func (s *service) ListRules(ctx context.Context) ([]CommissionRule, error) {
	return s.repo.ListRules(ctx)
}

func (s *service) CreateRule(ctx context.Context, req CreateRuleRequest) (*CommissionRule, error) {
	return s.repo.CreateRule(ctx, req)
}

func (s *service) UpdateRule(ctx context.Context, id int, req CreateRuleRequest) (*CommissionRule, error) {
	return s.repo.UpdateRule(ctx, id, req)
}

func (s *service) DeleteRule(ctx context.Context, id int) error {
	return s.repo.DeleteRule(ctx, id)
}
