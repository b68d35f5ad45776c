package services

import (
	"delivery-route-optimizer/internal/domain"
	"slices"
)

// canonicalPoint re-derives the id, priority and status of a point from its
// address and packages. Points arriving from clients may carry stale or empty
// ids. Order, distance and estimated time are kept.
func canonicalPoint(p domain.DeliveryPoint) domain.DeliveryPoint {
	out := p.Clone()
	if rebuilt, err := domain.NewDeliveryPoint(p.Address, p.Packages); err == nil {
		out.ID, out.Priority, out.Status = rebuilt.ID, rebuilt.Priority, rebuilt.Status
		return out
	}
	out.ID = domain.PointID(p.Address.Key())
	return out
}

// RebuildPoints re-derives the id, priority and status of each point without
// merging or reordering.
func RebuildPoints(points []domain.DeliveryPoint) []domain.DeliveryPoint {
	out := make([]domain.DeliveryPoint, len(points))
	for i, p := range points {
		out[i] = canonicalPoint(p)
	}
	return out
}

// dedupePoints canonicalizes points and folds every point into the first one
// sharing its id, so each normalized address appears once.
func dedupePoints(points []domain.DeliveryPoint) []domain.DeliveryPoint {
	out := make([]domain.DeliveryPoint, 0, len(points))
	at := make(map[string]int, len(points))
	for _, p := range points {
		c := canonicalPoint(p)
		if i, ok := at[c.ID]; ok {
			out[i] = mergePackages(out[i], c.Packages)
			continue
		}
		at[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

// mergePackages adds the packages of extra that the point does not already hold.
func mergePackages(into domain.DeliveryPoint, extra []domain.Package) domain.DeliveryPoint {
	fresh := make([]domain.Package, 0, len(extra))
	for _, pkg := range extra {
		held := pkg.ID != "" && slices.ContainsFunc(into.Packages, func(q domain.Package) bool { return q.ID == pkg.ID })
		if !held {
			fresh = append(fresh, pkg)
		}
	}
	if len(fresh) == 0 {
		return into
	}
	return into.WithPackages(fresh)
}
