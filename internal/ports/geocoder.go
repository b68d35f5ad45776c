package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
)

// Resolves address text to coordinates. The routing engine never geocodes
// itself; callers resolve coordinates before planning.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinate, error)
}

// Persistent address -> coordinate cache used by geocoding decorators.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinate, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinate) error
}
