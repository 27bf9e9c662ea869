package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"parkease/internal/finance"
	"parkease/internal/location"
	"parkease/internal/logger"
	"parkease/internal/metrics"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSpotNotFound    = errors.New("spot not found")
	ErrSpotInactive    = errors.New("spot is not available for booking")
	ErrSpotOccupied    = errors.New("spot is already booked for this period")
	ErrPastStartTime   = errors.New("cannot book a spot in the past")
	ErrInvalidPeriod   = errors.New("end time must be after start time")
	ErrNotOwnBooking   = errors.New("can only cancel own bookings")
	ErrNotSpotOwner    = errors.New("only the location owner can complete this booking")
)

const defaultCurrency = "USD"

// Notifier mirrors the notification service; failures are logged, never fatal.
type Notifier interface {
	Notify(ctx context.Context, userID int, notifType, title, message string) error
}

type Service interface {
	CreateBooking(ctx context.Context, driverID int, req CreateBookingRequest) (*Booking, error)
	CancelBooking(ctx context.Context, driverID, bookingID int) error
	CompleteBooking(ctx context.Context, actorUserID int, actorRole string, bookingID int) (*finance.CreditResult, error)
	RefundBooking(ctx context.Context, bookingID int, amount decimal.Decimal) error
	GetDriverBookings(ctx context.Context, driverID int) ([]Booking, error)
	GetBookingsByLocation(ctx context.Context, locationID int) ([]BookingWithDetails, error)
}

type service struct {
	repo         Repository
	locationRepo location.Repository
	financeSvc   finance.Service
	notifier     Notifier
}

func NewService(repo Repository, locationRepo location.Repository, financeSvc finance.Service, notifier Notifier) Service {
	return &service{
		repo:         repo,
		locationRepo: locationRepo,
		financeSvc:   financeSvc,
		notifier:     notifier,
	}
}

func (s *service) CreateBooking(ctx context.Context, driverID int, req CreateBookingRequest) (*Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidPeriod
	}
	if req.StartTime.Before(time.Now()) {
		return nil, ErrPastStartTime
	}

	spot, err := s.locationRepo.GetSpotWithLocation(ctx, req.SpotID)
	if err != nil {
		return nil, ErrSpotNotFound
	}
	if !spot.IsActive {
		return nil, ErrSpotInactive
	}

	occupied, err := s.repo.HasOverlappingBooking(ctx, req.SpotID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, ErrSpotOccupied
	}

	total := priceFor(spot.HourlyRate, spot.DailyRate, req.EndTime.Sub(req.StartTime))
	code := newConfirmationCode()

	booking, err := s.repo.CreateBooking(ctx, driverID, req.SpotID, req.StartTime, req.EndTime, total, defaultCurrency, code)
	if err != nil {
		return nil, err
	}

	metrics.RecordBooking(string(StatusConfirmed))

	if err := s.notifier.Notify(ctx, driverID, "booking_confirmed",
		"Booking Confirmed",
		fmt.Sprintf("Your booking %s at %s (%s) is confirmed for %s", code, spot.LocationName, spot.Label, req.StartTime.Format("Jan 2, 2006 at 3:04 PM")),
	); err != nil {
		logger.Error("failed to notify driver of new booking", "booking_id", booking.ID, "error", err)
	}

	return booking, nil
}

func (s *service) CancelBooking(ctx context.Context, driverID, bookingID int) error {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if booking.DriverID != driverID {
		return ErrNotOwnBooking
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, []Status{StatusConfirmed}, StatusCancelled); err != nil {
		return err
	}

	metrics.RecordBooking(string(StatusCancelled))

	if err := s.notifier.Notify(ctx, driverID, "booking_cancelled",
		"Booking Cancelled",
		fmt.Sprintf("Your booking %s has been cancelled", booking.ConfirmationCode),
	); err != nil {
		logger.Error("failed to notify driver of cancellation", "booking_id", bookingID, "error", err)
	}

	return nil
}

// CompleteBooking marks a stay as finished and credits the owner's wallet net
// of commission. Allowed for the location owner and for admins.
func (s *service) CompleteBooking(ctx context.Context, actorUserID int, actorRole string, bookingID int) (*finance.CreditResult, error) {
	booking, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	if actorRole != "admin" {
		spot, err := s.locationRepo.GetSpotWithLocation(ctx, booking.SpotID)
		if err != nil {
			return nil, ErrSpotNotFound
		}
		owner, err := s.locationRepo.GetOwnerByUserID(ctx, actorUserID)
		if err != nil || owner.ID != spot.OwnerID {
			return nil, ErrNotSpotOwner
		}
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, []Status{StatusConfirmed}, StatusCompleted); err != nil {
		return nil, err
	}

	metrics.RecordBooking(string(StatusCompleted))

	result, err := s.financeSvc.CreditEarnings(ctx, bookingID)
	if err != nil {
		logger.Error("booking completed but earnings credit failed", "booking_id", bookingID, "error", err)
		return nil, err
	}

	return result, nil
}

// RefundBooking flips the booking to refunded and deducts the caller-supplied
// amount from the owner's wallet. Refund policy (how much) is decided
// upstream; this path only records the outcome.
func (s *service) RefundBooking(ctx context.Context, bookingID int, amount decimal.Decimal) error {
	if _, err := s.repo.GetBookingByID(ctx, bookingID); err != nil {
		return ErrBookingNotFound
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, []Status{StatusCompleted, StatusCancelled}, StatusRefunded); err != nil {
		return err
	}

	metrics.RecordBooking(string(StatusRefunded))

	return s.financeSvc.ProcessRefundDeduction(ctx, bookingID, amount)
}

func (s *service) GetDriverBookings(ctx context.Context, driverID int) ([]Booking, error) {
	return s.repo.GetDriverBookings(ctx, driverID)
}

func (s *service) GetBookingsByLocation(ctx context.Context, locationID int) ([]BookingWithDetails, error) {
	return s.repo.GetBookingsByLocation(ctx, locationID)
}

// priceFor charges per started hour below one day, per started day above.
func priceFor(hourlyRate, dailyRate decimal.Decimal, duration time.Duration) decimal.Decimal {
	hours := int64(duration / time.Hour)
	if duration%time.Hour > 0 {
		hours++
	}

	if hours >= 24 {
		days := hours / 24
		if hours%24 > 0 {
			days++
		}
		return dailyRate.Mul(decimal.NewFromInt(days)).Round(2)
	}

	return hourlyRate.Mul(decimal.NewFromInt(hours)).Round(2)
}

func newConfirmationCode() string {
	return "PK-" + strings.ToUpper(uuid.NewString()[:8])
}
