package services

import (
	"context"
	"delivery-route-optimizer/internal/domain"
)

// RecalculateFrom re-optimizes an in-progress tour.
//
// Stops before fromIndex are frozen and keep their position and order. The
// remaining stops and the new points form the working set, which is rebuilt
// from the driver's position and numbered after the frozen prefix.
// Every point is re-identified from its address, so a point id appears once
// in the result. Packages for an address already pending join that stop.
// Packages for an address in the frozen prefix are attached to the frozen stop,
// whose status is re-derived and usually drops back to partial.
// Repeated calls with the same inputs yield the same ordering.
func (p *Planner) RecalculateFrom(
	ctx context.Context,
	existing []domain.DeliveryPoint,
	newPoints []domain.DeliveryPoint,
	origin domain.UserPosition,
	fromIndex int,
) []domain.DeliveryPoint {
	fromIndex = max(0, min(fromIndex, len(existing)))

	completed := dedupePoints(existing[:fromIndex])
	frozen := make(map[string]int, len(completed))
	for i, c := range completed {
		frozen[c.ID] = i
	}

	pending := make([]domain.DeliveryPoint, 0, len(existing)-fromIndex+len(newPoints))
	pending = append(pending, existing[fromIndex:]...)
	pending = append(pending, newPoints...)

	working := make([]domain.DeliveryPoint, 0, len(pending))
	for _, w := range dedupePoints(pending) {
		if i, ok := frozen[w.ID]; ok {
			completed[i] = mergePackages(completed[i], w.Packages)
			continue
		}
		working = append(working, w)
	}

	optimized := p.Optimize(ctx, working, origin)
	renumber(optimized, len(completed)+1)
	ApplyEstimates(optimized, p.Schedule)

	return append(completed, optimized...)
}
