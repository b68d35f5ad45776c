package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/geo"
	"delivery-route-optimizer/internal/platform/obs"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"fmt"
	"log"
	"slices"
)

// MatrixService turns a coordinate list into a distance matrix.
//
// The road-routing provider is tried exactly once per call. Any failure
// (transport, decoding, wrong shape) is recovered by the haversine matrix,
// so ComputeMatrix never fails and always returns len(coords) x len(coords).
type MatrixService struct {
	Provider ports.MatrixProvider
}

func NewMatrixService(provider ports.MatrixProvider) *MatrixService {
	return &MatrixService{Provider: provider}
}

// ComputeMatrix returns distances in meters in the order of coords.
func (s *MatrixService) ComputeMatrix(ctx context.Context, coords []domain.Coordinate) domain.DistanceMatrix {
	n := len(coords)
	if n < 2 {
		return domain.NewDistanceMatrix(n)
	}

	m, err := s.fetch(ctx, slices.Clone(coords))
	if err != nil {
		log.Printf("op=matrix.compute points=%d fallback=haversine err=%v", n, err)
		return geo.Matrix(coords)
	}
	return m
}

func (s *MatrixService) fetch(ctx context.Context, coords []domain.Coordinate) (_ domain.DistanceMatrix, err error) {
	defer obs.Time(ctx, "matrix.provider")(&err)

	if s == nil || s.Provider == nil {
		return nil, errors.New("no routing provider configured")
	}

	m, err := s.Provider.Matrix(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("routing provider: %w", err)
	}
	if err := m.Validate(len(coords)); err != nil {
		return nil, fmt.Errorf("routing provider: %w", err)
	}

	// Own the result; the diagonal is zero by definition.
	out := domain.NewDistanceMatrix(len(coords))
	for i := range m {
		copy(out[i], m[i])
		out[i][i] = 0
	}
	return out, nil
}
