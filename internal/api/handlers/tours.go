package handlers

import (
	"context"
	"delivery-route-optimizer/internal/api/dto"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/ports"
	"delivery-route-optimizer/internal/services"
	"log"
	"net/http"
)

// TourHandler plans and re-plans the driver's delivery tour.
type TourHandler struct {
	Repo    ports.PackageRepository
	Planner *services.Planner
	// Optional; without it only packages that already carry coordinates are placed by distance.
	Geocoder      ports.Geocoder
	DefaultOrigin domain.UserPosition
}

func (h *TourHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	pkgs := req.Packages
	fromRepo := len(pkgs) == 0
	if fromRepo {
		all, err := h.Repo.ListPackages(r.Context())
		if err != nil {
			log.Printf("list packages failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		for _, p := range all {
			if p.Status != domain.PackageFailed {
				pkgs = append(pkgs, p)
			}
		}
	}

	resolved := services.ResolveCoordinates(r.Context(), h.Geocoder, pkgs)
	if fromRepo {
		h.persistCoordinates(r.Context(), pkgs, resolved)
	}

	planner := h.planner(req.StartHour)
	tour := planner.Plan(r.Context(), resolved, h.origin(req.Origin))
	if req.TravelTime {
		tour.Stops = planner.Schedule.TravelEstimates(tour.Stops, tour.PlannedAt)
	}
	writeJSON(w, r, http.StatusOK, dto.FromTour(tour))
}

// Recalculate re-optimizes the pending part of a tour, optionally adding new packages.
func (h *TourHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req dto.RecalculateRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	// Posted stops may carry stale ids and aggregates.
	stops := services.RebuildPoints(req.Stops)

	fromIndex := domain.Tour{Stops: stops}.PendingFrom()
	if req.FromIndex != nil {
		fromIndex = *req.FromIndex
	}
	if fromIndex < 0 || fromIndex > len(stops) {
		writeError(w, r, http.StatusBadRequest, "from_index out of range")
		return
	}

	newPoints := services.GroupByAddress(services.ResolveCoordinates(r.Context(), h.Geocoder, req.NewPackages))

	tour := h.planner(req.StartHour).Recalculate(r.Context(), stops, newPoints, h.origin(req.Origin), fromIndex)
	writeJSON(w, r, http.StatusOK, dto.FromTour(tour))
}

// planner returns the shared planner, or a copy with a request-specific start hour.
func (h *TourHandler) planner(startHour *float64) *services.Planner {
	if startHour == nil {
		return h.Planner
	}
	p := *h.Planner
	p.Schedule.StartHour = *startHour
	return &p
}

func (h *TourHandler) origin(c *domain.Coordinate) domain.UserPosition {
	if c == nil {
		return h.DefaultOrigin
	}
	return *c
}

// persistCoordinates stores coordinates resolved during this request so the
// next plan skips geocoding. Failures are logged only.
func (h *TourHandler) persistCoordinates(ctx context.Context, before, after []domain.Package) {
	for i := range after {
		if before[i].Address.HasCoordinate() || !after[i].Address.HasCoordinate() {
			continue
		}
		if err := h.Repo.SetCoordinate(ctx, after[i].ID, *after[i].Address.Coordinate); err != nil {
			log.Printf("persist coordinate failed: id=%s err=%v", after[i].ID, err)
		}
	}
}
