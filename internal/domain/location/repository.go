package location

import "context"

type LocationRepository interface {
	Create(ctx context.Context, location Location) (Location, error)
	GetByCityName(ctx context.Context, cityName string) (Location, error)
	// GetByCityNameForUpdate locks the row until the surrounding transaction ends.
	GetByCityNameForUpdate(ctx context.Context, cityName string) (Location, error)
	List(ctx context.Context) ([]Location, error)
	Update(ctx context.Context, req UpdateLocationRequest) (Location, error)
	Delete(ctx context.Context, cityName string) error
}
