package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/obs"
	"log"
	"time"
)

// Planner runs the route optimization pipeline:
// packages -> delivery points -> distance matrix -> nearest-neighbor
// construction -> 2-opt -> estimated times.
//
// A Planner holds no per-call state; each call works on its own copies of the
// input, so one Planner may serve concurrent tours.
type Planner struct {
	Matrix   *MatrixService
	Mode     ConstructionMode
	Schedule Schedule
	Now      func() time.Time
}

func NewPlanner(matrix *MatrixService, sched Schedule) *Planner {
	return &Planner{
		Matrix:   matrix,
		Mode:     ModeAuto,
		Schedule: sched,
		Now:      time.Now,
	}
}

// Plan builds a fresh tour for packages starting at origin.
func (p *Planner) Plan(ctx context.Context, packages []domain.Package, origin domain.UserPosition) domain.Tour {
	defer obs.Time(ctx, "planner.Plan")(nil)

	points := GroupByAddress(packages)
	stops := p.Optimize(ctx, points, origin)
	ApplyEstimates(stops, p.Schedule)

	return p.tour(stops)
}

// Recalculate wraps RecalculateFrom into a Tour.
func (p *Planner) Recalculate(
	ctx context.Context,
	existing []domain.DeliveryPoint,
	newPoints []domain.DeliveryPoint,
	origin domain.UserPosition,
	fromIndex int,
) domain.Tour {
	defer obs.Time(ctx, "planner.Recalculate")(nil)

	return p.tour(p.RecalculateFrom(ctx, existing, newPoints, origin, fromIndex))
}

// Optimize orders points from origin. Points are re-identified from their
// addresses and same-address points merged first, since the distance table is
// keyed by point id. Stops are numbered 1..N, leg distances reflect the final
// order, and estimated times are those of construction.
func (p *Planner) Optimize(ctx context.Context, points []domain.DeliveryPoint, origin domain.UserPosition) []domain.DeliveryPoint {
	if len(points) == 0 {
		return []domain.DeliveryPoint{}
	}
	points = dedupePoints(points)

	matrix := p.Matrix.ComputeMatrix(ctx, MatrixCoordinates(points))
	table := NewDistanceTable(points, matrix)

	mode := ResolveMode(p.Mode, points)
	stops := BuildInitialOrder(points, origin, table, mode, p.Schedule)

	if len(stops) > 3 {
		if mode == ModeConstrained {
			stops = improveByTier(stops, table)
		} else {
			stops = Improve(stops, table)
		}
	}
	refreshLegs(stops, origin, table)

	unresolved := 0
	for _, s := range stops {
		if !s.HasCoordinate() {
			unresolved++
		}
	}
	if unresolved > 0 {
		log.Printf("op=planner.optimize stops=%d unresolved=%d", len(stops), unresolved)
	}

	return stops
}

// Clock returns the planner's current time, falling back to the wall clock.
func (p *Planner) Clock() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Planner) tour(stops []domain.DeliveryPoint) domain.Tour {
	return domain.Tour{
		Stops:           stops,
		TotalDistanceKm: domain.TotalDistance(stops),
		PlannedAt:       p.Clock(),
	}
}
