package domain

import "time"

// Represents the ordered delivery tour for the driver.
// A Tour is the output of the route optimization engine and is immutable
// planning data: re-optimizing produces a new Tour.
type Tour struct {
	Stops           []DeliveryPoint `json:"stops"`
	TotalDistanceKm float64         `json:"total_distance_km"`
	PlannedAt       time.Time       `json:"planned_at"`
}

// PendingFrom returns the index of the first stop that is not completed.
// Stops before it form the frozen prefix when the tour is recalculated.
func (t Tour) PendingFrom() int {
	for i, s := range t.Stops {
		if s.Status != PointCompleted {
			return i
		}
	}
	return len(t.Stops)
}

// TotalDistance sums the recorded leg distances in km.
func TotalDistance(stops []DeliveryPoint) float64 {
	total := 0.0
	for _, s := range stops {
		total += s.Distance
	}
	return total
}
