package ports

import (
	"context"
	"delivery-route-optimizer/internal/domain"
)

// Contract for an external road-routing service.
type MatrixProvider interface {
	// Return the N x N road distance matrix (meters) for the coordinates,
	// in request order. All points are sent in one batch.
	Matrix(ctx context.Context, coords []domain.Coordinate) (domain.DistanceMatrix, error)
}
