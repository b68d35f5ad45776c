package services

import (
	"delivery-route-optimizer/internal/domain"
	"math"
)

type ConstructionMode int

const (
	// Constrained when any point carries a non-standard priority, Simple otherwise.
	ModeAuto ConstructionMode = iota
	ModeSimple
	ModeConstrained
)

// ResolveMode picks the construction mode for points.
func ResolveMode(mode ConstructionMode, points []domain.DeliveryPoint) ConstructionMode {
	if mode != ModeAuto {
		return mode
	}
	for _, p := range points {
		if p.Priority != domain.PriorityStandard {
			return ModeConstrained
		}
	}
	return ModeSimple
}

// BuildInitialOrder builds a visiting order using a greedy nearest-neighbor
// heuristic from the driver's position.
//
// Simple mode ignores priority. Constrained mode drains the priority tiers in
// severity order, each with its own nearest-neighbor pass, starting the next
// tier from where the previous one ended; stops outside the "first" tier get
// an estimated time. Ties go to the lowest input index, and points without a
// coordinate sort last within their tier.
func BuildInitialOrder(
	points []domain.DeliveryPoint,
	origin domain.UserPosition,
	table DistanceTable,
	mode ConstructionMode,
	sched Schedule,
) []domain.DeliveryPoint {
	if len(points) == 0 {
		return []domain.DeliveryPoint{}
	}

	if ResolveMode(mode, points) == ModeSimple {
		out, _ := nearestNeighbor(points, origin, nil, table)
		renumber(out, 1)
		return out
	}

	out := make([]domain.DeliveryPoint, 0, len(points))
	var from *domain.DeliveryPoint
	for _, tier := range domain.PriorityTiers {
		members := make([]domain.DeliveryPoint, 0, len(points))
		for _, p := range points {
			if p.Priority == tier {
				members = append(members, p)
			}
		}
		if len(members) == 0 {
			continue
		}

		var ordered []domain.DeliveryPoint
		ordered, from = nearestNeighbor(members, origin, from, table)

		base := len(out) + 1
		renumber(ordered, base)
		if tier != domain.PriorityFirst {
			for i := range ordered {
				ordered[i].EstimatedTime = EstimateTime(ordered[i].Order, sched.StartHour, sched.minutesPerStop())
			}
		}
		out = append(out, ordered...)
	}

	return out
}

// nearestNeighbor orders points greedily starting at from (or the origin when
// from is nil). It returns the ordered copies and the last point with a
// coordinate, which is where the next leg starts.
func nearestNeighbor(
	points []domain.DeliveryPoint,
	origin domain.UserPosition,
	from *domain.DeliveryPoint,
	table DistanceTable,
) ([]domain.DeliveryPoint, *domain.DeliveryPoint) {
	visited := make([]bool, len(points))
	out := make([]domain.DeliveryPoint, 0, len(points))

	for len(out) < len(points) {
		best := -1
		bestDist := math.Inf(1)

		// Strict comparison keeps the lowest index on ties.
		for i, p := range points {
			if visited[i] {
				continue
			}
			d := legMeters(origin, from, p, table)
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}

		visited[best] = true
		stop := points[best].Clone()
		stop.Distance = metersToKm(bestDist)
		out = append(out, stop)

		if stop.HasCoordinate() {
			last := stop
			from = &last
		}
	}

	return out, from
}

func legMeters(origin domain.UserPosition, from *domain.DeliveryPoint, to domain.DeliveryPoint, table DistanceTable) float64 {
	if from == nil {
		return FromOrigin(origin, to)
	}
	return table.Meters(*from, to)
}

func renumber(stops []domain.DeliveryPoint, start int) {
	for i := range stops {
		stops[i].Order = start + i
	}
}

// refreshLegs recomputes each stop's distance from the previous stop with a
// coordinate, the first leg starting at the origin.
func refreshLegs(stops []domain.DeliveryPoint, origin domain.UserPosition, table DistanceTable) {
	var from *domain.DeliveryPoint
	for i := range stops {
		stops[i].Distance = metersToKm(legMeters(origin, from, stops[i], table))
		if stops[i].HasCoordinate() {
			last := stops[i]
			from = &last
		}
	}
}
