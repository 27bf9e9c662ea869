package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateBooking(ctx context.Context, driverID, spotID int, start, end time.Time, total decimal.Decimal, currency, confirmationCode string) (*Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	UpdateStatus(ctx context.Context, id int, from []Status, to Status) error
	HasOverlappingBooking(ctx context.Context, spotID int, start, end time.Time) (bool, error)
	GetDriverBookings(ctx context.Context, driverID int) ([]Booking, error)
	GetBookingsByLocation(ctx context.Context, locationID int) ([]BookingWithDetails, error)
}
