package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidTransition = errors.New("invalid package status transition")

// Destination address of a package. Coordinate is nil until a geocoding
// collaborator resolves it.
type Address struct {
	Number     string      `json:"number"`
	Street     string      `json:"street"`
	PostalCode string      `json:"postal_code"`
	City       string      `json:"city"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// Formatted renders "<number> <street>, <postal code> <city>" with whitespace collapsed.
func (a Address) Formatted() string {
	line1 := collapse(a.Number + " " + a.Street)
	line2 := collapse(a.PostalCode + " " + a.City)
	switch {
	case line1 == "":
		return line2
	case line2 == "":
		return line1
	}
	return line1 + ", " + line2
}

// Key is the grouping key for delivery points. Comparison is exact; fuzzy
// matching happens upstream.
func (a Address) Key() string { return a.Formatted() }

func (a Address) HasCoordinate() bool { return a.Coordinate != nil }

// WithCoordinate returns a copy of the address pointing at its own coordinate value.
func (a Address) WithCoordinate(c Coordinate) Address {
	a.Coordinate = &c
	return a
}

func (a Address) clone() Address {
	if a.Coordinate != nil {
		c := *a.Coordinate
		a.Coordinate = &c
	}
	return a
}

func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }

// Optional delivery window, "HH:MM" bounds.
type TimeWindow struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// Represents a single delivery unit registered by the driver.
// Packages are mutated only through status transitions; the routing engine
// only ever attaches a resolved coordinate to a copy.
type Package struct {
	ID              string        `json:"id"`
	Address         Address       `json:"address"`
	StorageLocation string        `json:"storage_location"`
	Notes           string        `json:"notes,omitempty"`
	DeliveryType    DeliveryType  `json:"delivery_type"`
	Priority        Priority      `json:"priority"`
	TimeWindow      *TimeWindow   `json:"time_window,omitempty"`
	Status          PackageStatus `json:"status"`
	PhotoRef        string        `json:"photo_ref,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Clone returns a deep copy so callers can hand snapshots to concurrent tour computations.
func (p Package) Clone() Package {
	p.Address = p.Address.clone()
	if p.TimeWindow != nil {
		tw := *p.TimeWindow
		p.TimeWindow = &tw
	}
	return p
}

// WithStatus applies a status transition and returns the updated package.
// Allowed: pending->delivered, pending->failed, any->pending.
func (p Package) WithStatus(next PackageStatus) (Package, error) {
	if next != PackagePending && p.Status != PackagePending {
		return p, fmt.Errorf("package %s: %s -> %s: %w", p.ID, p.Status, next, ErrInvalidTransition)
	}
	out := p.Clone()
	out.Status = next
	return out, nil
}
