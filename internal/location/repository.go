package location

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrOwnerNotFound    = errors.New("owner profile not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrSpotNotFound     = errors.New("spot not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOwner(ctx context.Context, userID int, companyName string) (*Owner, error) {
	query := `
		INSERT INTO owners (user_id, company_name)
		VALUES ($1, $2)
		RETURNING id, user_id, company_name, created_at
	`

	var owner Owner
	err := r.db.GetContext(ctx, &owner, query, userID, companyName)
	if err != nil {
		return nil, err
	}

	return &owner, nil
}

func (r *repository) GetOwnerByUserID(ctx context.Context, userID int) (*Owner, error) {
	query := `
		SELECT id, user_id, company_name, created_at
		FROM owners
		WHERE user_id = $1
	`

	var owner Owner
	err := r.db.GetContext(ctx, &owner, query, userID)
	if err != nil {
		return nil, err
	}

	return &owner, nil
}

func (r *repository) CreateLocation(ctx context.Context, ownerID int, req CreateLocationRequest) (*Location, error) {
	query := `
		INSERT INTO locations (owner_id, name, address, city, kind)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, owner_id, name, address, city, kind, created_at
	`

	var loc Location
	err := r.db.GetContext(ctx, &loc, query, ownerID, req.Name, req.Address, req.City, req.Kind)
	if err != nil {
		return nil, err
	}

	return &loc, nil
}

func (r *repository) GetLocationByID(ctx context.Context, id int) (*Location, error) {
	query := `
		SELECT id, owner_id, name, address, city, kind, created_at
		FROM locations
		WHERE id = $1
	`

	var loc Location
	err := r.db.GetContext(ctx, &loc, query, id)
	if err != nil {
		return nil, err
	}

	return &loc, nil
}

func (r *repository) ListLocationsByOwner(ctx context.Context, ownerID int) ([]Location, error) {
	query := `
		SELECT id, owner_id, name, address, city, kind, created_at
		FROM locations
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var locations []Location
	err := r.db.SelectContext(ctx, &locations, query, ownerID)
	if err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *repository) ListLocations(ctx context.Context, city string) ([]Location, error) {
	query := `
		SELECT id, owner_id, name, address, city, kind, created_at
		FROM locations
	`
	args := []interface{}{}
	if city != "" {
		query += ` WHERE city ILIKE $1`
		args = append(args, city)
	}
	query += ` ORDER BY name`

	var locations []Location
	err := r.db.SelectContext(ctx, &locations, query, args...)
	if err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *repository) CreateSpot(ctx context.Context, locationID int, req CreateSpotRequest) (*Spot, error) {
	query := `
		INSERT INTO spots (location_id, label, spot_type, hourly_rate, daily_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, location_id, label, spot_type, hourly_rate, daily_rate, is_active, created_at
	`

	var spot Spot
	err := r.db.GetContext(ctx, &spot, query, locationID, req.Label, req.SpotType, req.HourlyRate, req.DailyRate)
	if err != nil {
		return nil, err
	}

	return &spot, nil
}

func (r *repository) GetSpotWithLocation(ctx context.Context, spotID int) (*SpotWithLocation, error) {
	query := `
		SELECT
			s.id,
			s.location_id,
			s.label,
			s.spot_type,
			s.hourly_rate,
			s.daily_rate,
			s.is_active,
			s.created_at,
			l.name AS location_name,
			l.kind AS location_kind,
			l.owner_id AS owner_id
		FROM spots s
		JOIN locations l ON s.location_id = l.id
		WHERE s.id = $1
	`

	var spot SpotWithLocation
	err := r.db.GetContext(ctx, &spot, query, spotID)
	if err != nil {
		return nil, err
	}

	return &spot, nil
}

func (r *repository) ListSpotsByLocation(ctx context.Context, locationID int) ([]Spot, error) {
	query := `
		SELECT id, location_id, label, spot_type, hourly_rate, daily_rate, is_active, created_at
		FROM spots
		WHERE location_id = $1
		ORDER BY label
	`

	var spots []Spot
	err := r.db.SelectContext(ctx, &spots, query, locationID)
	if err != nil {
		return nil, err
	}

	return spots, nil
}

func (r *repository) SetSpotActive(ctx context.Context, spotID int, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE spots SET is_active = $1 WHERE id = $2`, active, spotID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSpotNotFound
	}

	return nil
}
