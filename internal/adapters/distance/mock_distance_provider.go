package distance

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/geo"
	"errors"
	"sync/atomic"
)

var ErrProviderUnavailable = errors.New("routing provider unavailable")

// HaversineProvider serves straight-line matrices. It never fails.
type HaversineProvider struct{}

func (HaversineProvider) Matrix(_ context.Context, coords []domain.Coordinate) (domain.DistanceMatrix, error) {
	return geo.Matrix(coords), nil
}

// StaticMatrixProvider returns a fixed matrix (or error) and counts calls.
type StaticMatrixProvider struct {
	M     domain.DistanceMatrix
	Err   error
	calls atomic.Int64
}

func NewStaticMatrixProvider(m domain.DistanceMatrix) *StaticMatrixProvider {
	return &StaticMatrixProvider{M: m}
}

// NewFailingProvider returns a provider whose every call fails.
func NewFailingProvider() *StaticMatrixProvider {
	return &StaticMatrixProvider{Err: ErrProviderUnavailable}
}

func (p *StaticMatrixProvider) Matrix(_ context.Context, _ []domain.Coordinate) (domain.DistanceMatrix, error) {
	p.calls.Add(1)
	if p.Err != nil {
		return nil, p.Err
	}

	out := make(domain.DistanceMatrix, len(p.M))
	for i, row := range p.M {
		out[i] = append([]float64(nil), row...)
	}
	return out, nil
}

func (p *StaticMatrixProvider) Calls() int { return int(p.calls.Load()) }
