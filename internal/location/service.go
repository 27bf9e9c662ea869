package location

import (
	"context"
	"errors"
)

var ErrNotLocationOwner = errors.New("location does not belong to owner")

type Service interface {
	Onboard(ctx context.Context, userID int, req OnboardRequest) (*Owner, error)
	GetOwnerByUserID(ctx context.Context, userID int) (*Owner, error)
	CreateLocation(ctx context.Context, userID int, req CreateLocationRequest) (*Location, error)
	ListOwnLocations(ctx context.Context, userID int) ([]Location, error)
	ListLocations(ctx context.Context, city string) ([]Location, error)
	CreateSpot(ctx context.Context, userID, locationID int, req CreateSpotRequest) (*Spot, error)
	ListSpots(ctx context.Context, locationID int) ([]Spot, error)
	SetSpotActive(ctx context.Context, userID, spotID int, active bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Onboard(ctx context.Context, userID int, req OnboardRequest) (*Owner, error) {
	// Onboarding is idempotent: a second call returns the existing profile.
	if owner, err := s.repo.GetOwnerByUserID(ctx, userID); err == nil {
		return owner, nil
	}
	return s.repo.CreateOwner(ctx, userID, req.CompanyName)
}

func (s *service) GetOwnerByUserID(ctx context.Context, userID int) (*Owner, error) {
	owner, err := s.repo.GetOwnerByUserID(ctx, userID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}
	return owner, nil
}

func (s *service) CreateLocation(ctx context.Context, userID int, req CreateLocationRequest) (*Location, error) {
	owner, err := s.repo.GetOwnerByUserID(ctx, userID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}
	return s.repo.CreateLocation(ctx, owner.ID, req)
}

func (s *service) ListOwnLocations(ctx context.Context, userID int) ([]Location, error) {
	owner, err := s.repo.GetOwnerByUserID(ctx, userID)
	if err != nil {
		return nil, ErrOwnerNotFound
	}
	return s.repo.ListLocationsByOwner(ctx, owner.ID)
}

func (s *service) ListLocations(ctx context.Context, city string) ([]Location, error) {
	return s.repo.ListLocations(ctx, city)
}

func (s *service) CreateSpot(ctx context.Context, userID, locationID int, req CreateSpotRequest) (*Spot, error) {
	if err := s.checkLocationOwnership(ctx, userID, locationID); err != nil {
		return nil, err
	}
	return s.repo.CreateSpot(ctx, locationID, req)
}

func (s *service) ListSpots(ctx context.Context, locationID int) ([]Spot, error) {
	return s.repo.ListSpotsByLocation(ctx, locationID)
}

func (s *service) SetSpotActive(ctx context.Context, userID, spotID int, active bool) error {
	spot, err := s.repo.GetSpotWithLocation(ctx, spotID)
	if err != nil {
		return ErrSpotNotFound
	}

	owner, err := s.repo.GetOwnerByUserID(ctx, userID)
	if err != nil {
		return ErrOwnerNotFound
	}
	if spot.OwnerID != owner.ID {
		return ErrNotLocationOwner
	}

	return s.repo.SetSpotActive(ctx, spotID, active)
}

func (s *service) checkLocationOwnership(ctx context.Context, userID, locationID int) error {
	loc, err := s.repo.GetLocationByID(ctx, locationID)
	if err != nil {
		return ErrLocationNotFound
	}

	owner, err := s.repo.GetOwnerByUserID(ctx, userID)
	if err != nil {
		return ErrOwnerNotFound
	}

	if loc.OwnerID != owner.ID {
		return ErrNotLocationOwner
	}

	return nil
}
