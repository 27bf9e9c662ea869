package location

import "context"

type Repository interface {
	CreateOwner(ctx context.Context, userID int, companyName string) (*Owner, error)
	GetOwnerByUserID(ctx context.Context, userID int) (*Owner, error)

	CreateLocation(ctx context.Context, ownerID int, req CreateLocationRequest) (*Location, error)
	GetLocationByID(ctx context.Context, id int) (*Location, error)
	ListLocationsByOwner(ctx context.Context, ownerID int) ([]Location, error)
	ListLocations(ctx context.Context, city string) ([]Location, error)

	CreateSpot(ctx context.Context, locationID int, req CreateSpotRequest) (*Spot, error)
	GetSpotWithLocation(ctx context.Context, spotID int) (*SpotWithLocation, error)
	ListSpotsByLocation(ctx context.Context, locationID int) ([]Spot, error)
	SetSpotActive(ctx context.Context, spotID int, active bool) error
}
