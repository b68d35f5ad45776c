package services

import (
	"delivery-route-optimizer/internal/domain"
	"math"
)

// Minimum gain (meters) for a 2-opt move to count as an improvement.
const improvementEpsilon = 1e-6

// Improve applies first-improvement 2-opt to the tour until no move shortens it.
//
// The first stop stays fixed. For edges (i-1,i) and (j-1,j), the segment
// [i, j-1] is reversed whenever that lowers the sum of the two edges. Road
// matrices are directed, so the cost change of walking the segment backwards
// is included in the comparison; on symmetric matrices it is zero. Orders
// are renumbered 1..N afterwards; leg distances and estimated times are left
// for the caller to refresh. Tours of 3 stops or fewer are returned unchanged.
func Improve(tour []domain.DeliveryPoint, table DistanceTable) []domain.DeliveryPoint {
	out := cloneStops(tour)
	n := len(out)
	if n <= 3 {
		return out
	}

	improved := true
	for improved {
		improved = false
		for i := 1; i < n-1; i++ {
			for j := i + 2; j < n; j++ {
				before := table.Meters(out[i-1], out[i]) + table.Meters(out[j-1], out[j])
				after := table.Meters(out[i-1], out[j-1]) + table.Meters(out[i], out[j])
				if math.IsInf(after, 1) {
					continue
				}
				if !math.IsInf(before, 1) {
					after += reversalDelta(out, i, j-1, table)
				}
				if after+improvementEpsilon < before {
					reverse(out, i, j-1)
					improved = true
				}
			}
		}
	}

	renumber(out, 1)
	return out
}

// improveByTier runs Improve inside each run of equal priority so that 2-opt
// never moves a stop across a priority tier boundary.
func improveByTier(tour []domain.DeliveryPoint, table DistanceTable) []domain.DeliveryPoint {
	out := make([]domain.DeliveryPoint, 0, len(tour))
	for start := 0; start < len(tour); {
		end := start + 1
		for end < len(tour) && tour[end].Priority == tour[start].Priority {
			end++
		}
		out = append(out, Improve(tour[start:end], table)...)
		start = end
	}
	renumber(out, 1)
	return out
}

// reversalDelta is the cost change of traversing stops[i..j] in reverse.
// Legs touching a point without a coordinate are infinite both ways and skipped.
func reversalDelta(stops []domain.DeliveryPoint, i, j int, table DistanceTable) float64 {
	delta := 0.0
	for k := i; k < j; k++ {
		fwd := table.Meters(stops[k], stops[k+1])
		rev := table.Meters(stops[k+1], stops[k])
		if math.IsInf(fwd, 1) || math.IsInf(rev, 1) {
			continue
		}
		delta += rev - fwd
	}
	return delta
}

func reverse(stops []domain.DeliveryPoint, i, j int) {
	for ; i < j; i, j = i+1, j-1 {
		stops[i], stops[j] = stops[j], stops[i]
	}
}

func cloneStops(stops []domain.DeliveryPoint) []domain.DeliveryPoint {
	out := make([]domain.DeliveryPoint, len(stops))
	for i, s := range stops {
		out[i] = s.Clone()
	}
	return out
}
