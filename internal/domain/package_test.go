package domain

import (
	"errors"
	"testing"
)

func TestPackageWithStatus(t *testing.T) {
	// build test data
	pkg := Package{ID: "p1", Status: PackagePending}

	delivered, err := pkg.WithStatus(PackageDelivered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delivered.Status != PackageDelivered {
		t.Errorf("status = %s, want delivered", delivered.Status)
	}
	if pkg.Status != PackagePending {
		t.Errorf("original package mutated: status = %s", pkg.Status)
	}

	if _, err := delivered.WithStatus(PackageFailed); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered -> failed: err = %v, want ErrInvalidTransition", err)
	}

	reset, err := delivered.WithStatus(PackagePending)
	if err != nil {
		t.Fatalf("reset: unexpected error: %v", err)
	}
	if reset.Status != PackagePending {
		t.Errorf("reset status = %s, want pending", reset.Status)
	}
}

func TestPackageCloneDoesNotAlias(t *testing.T) {
	c := Coordinate{Lat: 48.85, Lng: 2.35}
	pkg := Package{ID: "p1", Address: Address{Street: "Rue A", Coordinate: &c}}

	clone := pkg.Clone()
	clone.Address.Coordinate.Lat = 0

	if pkg.Address.Coordinate.Lat != 48.85 {
		t.Fatalf("clone aliases coordinate: lat = %v", pkg.Address.Coordinate.Lat)
	}
}

func TestAddressFormatted(t *testing.T) {
	addr := Address{Number: " 12 ", Street: "Rue  de la Paix", PostalCode: "75002", City: "Paris"}
	if got, want := addr.Formatted(), "12 Rue de la Paix, 75002 Paris"; got != want {
		t.Fatalf("Formatted() = %q, want %q", got, want)
	}

	streetOnly := Address{Street: "Rue A"}
	if got := streetOnly.Formatted(); got != "Rue A" {
		t.Fatalf("Formatted() = %q, want %q", got, "Rue A")
	}
}

func TestPriorityText(t *testing.T) {
	var p Priority
	if err := p.UnmarshalText([]byte("express_before_noon")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p != PriorityExpressBeforeNoon {
		t.Fatalf("priority = %s, want express_before_noon", p)
	}
	if err := p.UnmarshalText([]byte("urgent")); err == nil {
		t.Fatal("expected error for unknown priority")
	}
}
