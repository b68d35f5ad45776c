package domain

import "fmt"

// Priority is the business urgency tier of a package. Higher values are more severe.
type Priority int

const (
	PriorityStandard Priority = iota
	PriorityExpressBeforeNoon
	PriorityFirst
)

// Tiers in severity order, most urgent first.
var PriorityTiers = []Priority{PriorityFirst, PriorityExpressBeforeNoon, PriorityStandard}

func (p Priority) String() string {
	switch p {
	case PriorityStandard:
		return "standard"
	case PriorityExpressBeforeNoon:
		return "express_before_noon"
	case PriorityFirst:
		return "first"
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

func (p Priority) MarshalText() ([]byte, error) {
	if p < PriorityStandard || p > PriorityFirst {
		return nil, fmt.Errorf("marshal priority: unknown value %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	switch string(b) {
	case "standard", "":
		*p = PriorityStandard
	case "express_before_noon":
		*p = PriorityExpressBeforeNoon
	case "first":
		*p = PriorityFirst
	default:
		return fmt.Errorf("unmarshal priority: unknown value %q", string(b))
	}
	return nil
}

// PackageStatus is the delivery state of a single package.
type PackageStatus int

const (
	PackagePending PackageStatus = iota
	PackageDelivered
	PackageFailed
)

func (s PackageStatus) String() string {
	switch s {
	case PackagePending:
		return "pending"
	case PackageDelivered:
		return "delivered"
	case PackageFailed:
		return "failed"
	}
	return fmt.Sprintf("package_status(%d)", int(s))
}

func (s PackageStatus) MarshalText() ([]byte, error) {
	if s < PackagePending || s > PackageFailed {
		return nil, fmt.Errorf("marshal package status: unknown value %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *PackageStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pending", "":
		*s = PackagePending
	case "delivered":
		*s = PackageDelivered
	case "failed":
		*s = PackageFailed
	default:
		return fmt.Errorf("unmarshal package status: unknown value %q", string(b))
	}
	return nil
}

// PointStatus is derived from the statuses of a delivery point's packages.
type PointStatus int

const (
	PointPending PointStatus = iota
	PointPartial
	PointCompleted
)

func (s PointStatus) String() string {
	switch s {
	case PointPending:
		return "pending"
	case PointPartial:
		return "partial"
	case PointCompleted:
		return "completed"
	}
	return fmt.Sprintf("point_status(%d)", int(s))
}

func (s PointStatus) MarshalText() ([]byte, error) {
	if s < PointPending || s > PointCompleted {
		return nil, fmt.Errorf("marshal point status: unknown value %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *PointStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pending", "":
		*s = PointPending
	case "partial":
		*s = PointPartial
	case "completed":
		*s = PointCompleted
	default:
		return fmt.Errorf("unmarshal point status: unknown value %q", string(b))
	}
	return nil
}

type DeliveryType int

const (
	DeliveryIndividual DeliveryType = iota
	DeliveryBusiness
)

func (t DeliveryType) String() string {
	if t == DeliveryBusiness {
		return "business"
	}
	return "individual"
}

func (t DeliveryType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *DeliveryType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "individual", "":
		*t = DeliveryIndividual
	case "business":
		*t = DeliveryBusiness
	default:
		return fmt.Errorf("unmarshal delivery type: unknown value %q", string(b))
	}
	return nil
}
