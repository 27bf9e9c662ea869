package location

import (
	"time"

	"github.com/shopspring/decimal"
)

type LocationKind string

const (
	KindStreet  LocationKind = "street"
	KindGarage  LocationKind = "garage"
	KindAirport LocationKind = "airport"
)

// Owner is the payout profile behind one or more locations. Wallets and
// earnings notifications hang off the owner, not the user account directly.
type Owner struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Location struct {
	ID        int          `db:"id" json:"id"`
	OwnerID   int          `db:"owner_id" json:"owner_id"`
	Name      string       `db:"name" json:"name"`
	Address   string       `db:"address" json:"address"`
	City      string       `db:"city" json:"city"`
	Kind      LocationKind `db:"kind" json:"kind"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

type Spot struct {
	ID         int             `db:"id" json:"id"`
	LocationID int             `db:"location_id" json:"location_id"`
	Label      string          `db:"label" json:"label"`
	SpotType   string          `db:"spot_type" json:"spot_type"`
	HourlyRate decimal.Decimal `db:"hourly_rate" json:"hourly_rate"`
	DailyRate  decimal.Decimal `db:"daily_rate" json:"daily_rate"`
	IsActive   bool            `db:"is_active" json:"is_active"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// SpotWithLocation is the pricing view booking creation works from.
type SpotWithLocation struct {
	Spot
	LocationName string       `db:"location_name" json:"location_name"`
	LocationKind LocationKind `db:"location_kind" json:"location_kind"`
	OwnerID      int          `db:"owner_id" json:"owner_id"`
}

type OnboardRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=2,max=200"`
}

type CreateLocationRequest struct {
	Name    string       `json:"name" binding:"required,min=2,max=200"`
	Address string       `json:"address" binding:"required"`
	City    string       `json:"city" binding:"required"`
	Kind    LocationKind `json:"kind" binding:"required,oneof=street garage airport"`
}

type CreateSpotRequest struct {
	Label      string  `json:"label" binding:"required,max=20"`
	SpotType   string  `json:"spot_type" binding:"required,oneof=standard compact ev accessible"`
	HourlyRate float64 `json:"hourly_rate" binding:"required,gt=0"`
	DailyRate  float64 `json:"daily_rate" binding:"required,gt=0"`
}
