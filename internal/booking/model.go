package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

type Booking struct {
	ID               int             `db:"id" json:"id"`
	DriverID         int             `db:"driver_id" json:"driver_id"`
	SpotID           int             `db:"spot_id" json:"spot_id"`
	Status           Status          `db:"status" json:"status"`
	StartTime        time.Time       `db:"start_time" json:"start_time"`
	EndTime          time.Time       `db:"end_time" json:"end_time"`
	TotalPrice       decimal.Decimal `db:"total_price" json:"total_price"`
	Currency         string          `db:"currency" json:"currency"`
	ConfirmationCode string          `db:"confirmation_code" json:"confirmation_code"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

type BookingWithDetails struct {
	Booking
	SpotLabel    string `db:"spot_label" json:"spot_label"`
	LocationName string `db:"location_name" json:"location_name"`
	DriverName   string `db:"driver_name" json:"driver_name"`
	DriverEmail  string `db:"driver_email" json:"driver_email"`
}

type CreateBookingRequest struct {
	SpotID    int       `json:"spot_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required,futuretime"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type RefundRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}
