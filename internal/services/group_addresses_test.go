package services

import (
	"delivery-route-optimizer/internal/domain"
	"testing"
)

func TestGroupByAddressMergesSharedAddress(t *testing.T) {
	packages := []domain.Package{
		pkgAt("1", "1", "Rue A", nil, domain.PriorityStandard),
		pkgAt("2", "2", "Rue B", nil, domain.PriorityFirst),
		pkgAt("3", "1", "Rue A", nil, domain.PriorityStandard),
	}

	points := GroupByAddress(packages)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	if points[0].Address.Street != "Rue A" || len(points[0].Packages) != 2 {
		t.Fatalf("first point = %s with %d packages, want Rue A with 2", points[0].Address.Street, len(points[0].Packages))
	}
	if points[0].Packages[0].ID != "1" || points[0].Packages[1].ID != "3" {
		t.Fatalf("package order not preserved: %s, %s", points[0].Packages[0].ID, points[0].Packages[1].ID)
	}
	if points[1].Priority != domain.PriorityFirst {
		t.Fatalf("Rue B priority = %s, want first", points[1].Priority)
	}

	for i, p := range points {
		if p.Order != i+1 {
			t.Fatalf("point %d provisional order = %d, want %d", i, p.Order, i+1)
		}
	}
}

func TestGroupByAddressPreservesEveryPackage(t *testing.T) {
	streets := []string{"Rue A", "Rue B", "Rue A", "Rue C", "Rue B", "Rue A"}
	packages := make([]domain.Package, 0, len(streets))
	for i, s := range streets {
		packages = append(packages, pkgAt(string(rune('a'+i)), "1", s, nil, domain.PriorityStandard))
	}

	points := GroupByAddress(packages)

	total := 0
	seen := map[string]bool{}
	for _, p := range points {
		total += len(p.Packages)
		k := p.Address.Key()
		if seen[k] {
			t.Fatalf("address %q grouped twice", k)
		}
		seen[k] = true
	}
	if total != len(packages) {
		t.Fatalf("grouped %d packages, want %d", total, len(packages))
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
}

func TestGroupByAddressIDIsDeterministic(t *testing.T) {
	a := GroupByAddress([]domain.Package{pkgAt("1", "4", "Rue D", nil, domain.PriorityStandard)})
	b := GroupByAddress([]domain.Package{pkgAt("9", "4", "Rue  D", nil, domain.PriorityStandard)})

	if a[0].ID != b[0].ID {
		t.Fatalf("ids differ for the same normalized address: %s vs %s", a[0].ID, b[0].ID)
	}
}

func TestGroupByAddressFirstCoordinateWins(t *testing.T) {
	packages := []domain.Package{
		pkgAt("1", "1", "Rue A", nil, domain.PriorityStandard),
		pkgAt("2", "1", "Rue A", coord(48.86, 2.36), domain.PriorityStandard),
		pkgAt("3", "1", "Rue A", coord(1, 1), domain.PriorityStandard),
	}

	points := GroupByAddress(packages)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	c := points[0].Address.Coordinate
	if c == nil || c.Lat != 48.86 || c.Lng != 2.36 {
		t.Fatalf("coordinate = %v, want 48.86,2.36", c)
	}
}

func TestGroupByAddressStatus(t *testing.T) {
	delivered := pkgAt("1", "1", "Rue A", nil, domain.PriorityStandard)
	delivered.Status = domain.PackageDelivered
	pending := pkgAt("2", "1", "Rue A", nil, domain.PriorityStandard)

	points := GroupByAddress([]domain.Package{delivered, pending})
	if points[0].Status != domain.PointPartial {
		t.Fatalf("status = %s, want partial", points[0].Status)
	}
}

func TestGroupByAddressEmpty(t *testing.T) {
	points := GroupByAddress(nil)
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", points)
	}
}
