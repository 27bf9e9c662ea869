package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var ErrInvalidStatusTransition = errors.New("booking not in a valid status for this transition")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, driver_id, spot_id, status, start_time, end_time, total_price, currency, confirmation_code, created_at, updated_at`

func (r *repository) CreateBooking(ctx context.Context, driverID, spotID int, start, end time.Time, total decimal.Decimal, currency, confirmationCode string) (*Booking, error) {
	query := `
		INSERT INTO bookings (driver_id, spot_id, status, start_time, end_time, total_price, currency, confirmation_code)
		VALUES ($1, $2, 'confirmed', $3, $4, $5, $6, $7)
		RETURNING ` + bookingColumns + `
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, driverID, spotID, start, end, total, currency, confirmationCode)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, from []Status, to Status) error {
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = ANY($3)
	`, to, id, pq.Array(fromStrs))
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrInvalidStatusTransition
	}

	return nil
}

func (r *repository) HasOverlappingBooking(ctx context.Context, spotID int, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE spot_id = $1
			  AND status IN ('confirmed', 'completed')
			  AND start_time < $3
			  AND end_time > $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, spotID, start, end)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) GetDriverBookings(ctx context.Context, driverID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE driver_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, driverID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetBookingsByLocation(ctx context.Context, locationID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.driver_id,
			b.spot_id,
			b.status,
			b.start_time,
			b.end_time,
			b.total_price,
			b.currency,
			b.confirmation_code,
			b.created_at,
			b.updated_at,
			s.label AS spot_label,
			l.name AS location_name,
			u.name AS driver_name,
			u.email AS driver_email
		FROM bookings b
		JOIN spots s ON b.spot_id = s.id
		JOIN locations l ON s.location_id = l.id
		JOIN users u ON b.driver_id = u.id
		WHERE l.id = $1
		ORDER BY b.start_time DESC, b.created_at DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, locationID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
