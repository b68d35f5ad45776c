package domain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Namespace for deterministic delivery point ids.
var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("delivery-route-optimizer/delivery-point"))

// PointID derives the delivery point id from a normalized address key.
func PointID(key string) string {
	return uuid.NewSHA1(pointNamespace, []byte(key)).String()
}

// One distinct address aggregating one or more packages.
// Order is 1-based within the current tour and Distance is the leg length in
// km from the previous stop (or from the driver's position for the first stop).
type DeliveryPoint struct {
	ID            string      `json:"id"`
	Address       Address     `json:"address"`
	Packages      []Package   `json:"packages"`
	Order         int         `json:"order"`
	Distance      float64     `json:"distance"`
	Priority      Priority    `json:"priority"`
	Status        PointStatus `json:"status"`
	EstimatedTime string      `json:"estimated_time,omitempty"`
}

// NewDeliveryPoint builds a point from a non-empty package list sharing one address.
func NewDeliveryPoint(addr Address, pkgs []Package) (DeliveryPoint, error) {
	if len(pkgs) == 0 {
		return DeliveryPoint{}, fmt.Errorf("new delivery point %q: package list must not be empty", addr.Key())
	}

	cloned := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		cloned = append(cloned, p.Clone())
	}

	return DeliveryPoint{
		ID:       PointID(addr.Key()),
		Address:  addr.clone(),
		Packages: cloned,
		Priority: AggregatePriority(cloned),
		Status:   AggregateStatus(cloned),
	}, nil
}

func (d DeliveryPoint) HasCoordinate() bool { return d.Address.HasCoordinate() }

// Clone returns a deep copy of the point and its packages.
func (d DeliveryPoint) Clone() DeliveryPoint {
	d.Address = d.Address.clone()
	pkgs := make([]Package, len(d.Packages))
	for i, p := range d.Packages {
		pkgs[i] = p.Clone()
	}
	d.Packages = pkgs
	return d
}

// WithPackages returns a copy with extra packages appended and aggregates re-derived.
func (d DeliveryPoint) WithPackages(extra []Package) DeliveryPoint {
	out := d.Clone()
	for _, p := range extra {
		out.Packages = append(out.Packages, p.Clone())
	}
	out.Priority = AggregatePriority(out.Packages)
	out.Status = AggregateStatus(out.Packages)
	return out
}

// WithPackageStatus applies a package transition and re-derives the point status.
func (d DeliveryPoint) WithPackageStatus(packageID string, status PackageStatus) (DeliveryPoint, error) {
	idx := slices.IndexFunc(d.Packages, func(p Package) bool { return p.ID == packageID })
	if idx < 0 {
		return d, fmt.Errorf("delivery point %s: package %s not found", d.ID, packageID)
	}

	updated, err := d.Packages[idx].WithStatus(status)
	if err != nil {
		return d, fmt.Errorf("delivery point %s: %w", d.ID, err)
	}

	out := d.Clone()
	out.Packages[idx] = updated
	out.Status = AggregateStatus(out.Packages)
	return out, nil
}

// AggregatePriority returns the most severe priority among the packages.
func AggregatePriority(pkgs []Package) Priority {
	best := PriorityStandard
	for _, p := range pkgs {
		if p.Priority > best {
			best = p.Priority
		}
	}
	return best
}

// AggregateStatus is completed when every package is delivered, partial when
// some are, pending otherwise. Failed packages count as not delivered.
func AggregateStatus(pkgs []Package) PointStatus {
	delivered := 0
	for _, p := range pkgs {
		if p.Status == PackageDelivered {
			delivered++
		}
	}

	switch {
	case len(pkgs) > 0 && delivered == len(pkgs):
		return PointCompleted
	case delivered > 0:
		return PointPartial
	}
	return PointPending
}
