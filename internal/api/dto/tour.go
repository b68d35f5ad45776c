package dto

import (
	"delivery-route-optimizer/internal/domain"
	"time"
)

type OptimizeRequest struct {
	Origin *domain.Coordinate `json:"origin"`
	// Inline packages; when empty, the repository's non-failed packages are planned.
	Packages  []domain.Package `json:"packages"`
	StartHour *float64         `json:"start_hour"`
	// Estimate arrivals from leg distances and average speed instead of a fixed pace.
	TravelTime bool `json:"travel_time"`
}

type RecalculateRequest struct {
	Stops       []domain.DeliveryPoint `json:"stops"`
	NewPackages []domain.Package       `json:"new_packages"`
	Origin      *domain.Coordinate     `json:"origin"`
	// Defaults to the first stop that is not completed.
	FromIndex *int     `json:"from_index"`
	StartHour *float64 `json:"start_hour"`
}

type TourResponse struct {
	Stops           []domain.DeliveryPoint `json:"stops"`
	TotalDistanceKm float64                `json:"total_distance_km"`
	UnresolvedStops int                    `json:"unresolved_stops"`
	PlannedAt       time.Time              `json:"planned_at"`
}

func FromTour(t domain.Tour) TourResponse {
	unresolved := 0
	for _, s := range t.Stops {
		if !s.HasCoordinate() {
			unresolved++
		}
	}

	stops := t.Stops
	if stops == nil {
		stops = []domain.DeliveryPoint{}
	}
	return TourResponse{
		Stops:           stops,
		TotalDistanceKm: t.TotalDistanceKm,
		UnresolvedStops: unresolved,
		PlannedAt:       t.PlannedAt,
	}
}
