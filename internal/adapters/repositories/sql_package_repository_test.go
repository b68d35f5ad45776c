package repositories

import (
	"context"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/db"
	"delivery-route-optimizer/internal/ports"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLPackageRepository {
	t.Helper()
	database, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := InitSchema(context.Background(), database); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	// second run must be a no-op
	if err := InitSchema(context.Background(), database); err != nil {
		t.Fatalf("re-init schema: %v", err)
	}
	return NewSQLPackageRepository(database)
}

func samplePackage(id string, created time.Time) domain.Package {
	return domain.Package{
		ID: id,
		Address: domain.Address{
			Number:     "12",
			Street:     "Rue de Rivoli",
			PostalCode: "75001",
			City:       "Paris",
		},
		StorageLocation: "B3",
		Notes:           "digicode 1234",
		DeliveryType:    domain.DeliveryBusiness,
		Priority:        domain.PriorityExpressBeforeNoon,
		TimeWindow:      &domain.TimeWindow{Start: "09:00", End: "12:00"},
		Status:          domain.PackagePending,
		CreatedAt:       created,
	}
}

func TestSaveAndGetPackage(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

	want := samplePackage("p1", created)
	if err := repo.SavePackage(ctx, want); err != nil {
		t.Fatalf("SavePackage: %v", err)
	}

	got, err := repo.GetPackage(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPackage: %v", err)
	}

	if got.Address.Formatted() != want.Address.Formatted() {
		t.Errorf("address = %q, want %q", got.Address.Formatted(), want.Address.Formatted())
	}
	if got.Address.HasCoordinate() {
		t.Errorf("coordinate should be empty")
	}
	if got.Priority != want.Priority || got.DeliveryType != want.DeliveryType || got.Status != want.Status {
		t.Errorf("enums = %s/%s/%s", got.Priority, got.DeliveryType, got.Status)
	}
	if got.TimeWindow == nil || got.TimeWindow.Start != "09:00" || got.TimeWindow.End != "12:00" {
		t.Errorf("time window = %+v", got.TimeWindow)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, created)
	}
	if got.StorageLocation != "B3" || got.Notes != "digicode 1234" {
		t.Errorf("storage/notes = %q/%q", got.StorageLocation, got.Notes)
	}
}

func TestGetPackageNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetPackage(context.Background(), "nope")
	if !errors.Is(err, ports.ErrPackageNotFound) {
		t.Fatalf("err = %v, want ErrPackageNotFound", err)
	}
}

func TestListPackagesInRegistrationOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	for i, id := range []string{"c", "a", "b"} {
		if err := repo.SavePackage(ctx, samplePackage(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}

	pkgs, err := repo.ListPackages(ctx)
	if err != nil {
		t.Fatalf("ListPackages: %v", err)
	}
	if len(pkgs) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(pkgs))
	}
	for i, id := range []string{"c", "a", "b"} {
		if pkgs[i].ID != id {
			t.Fatalf("package %d = %s, want %s", i, pkgs[i].ID, id)
		}
	}
}

func TestUpdateStatusAndCoordinate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SavePackage(ctx, samplePackage("p1", time.Now())); err != nil {
		t.Fatal(err)
	}

	if err := repo.UpdateStatus(ctx, "p1", domain.PackageDelivered); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := repo.SetCoordinate(ctx, "p1", domain.Coordinate{Lat: 48.86, Lng: 2.36}); err != nil {
		t.Fatalf("SetCoordinate: %v", err)
	}

	got, err := repo.GetPackage(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.PackageDelivered {
		t.Errorf("status = %s, want delivered", got.Status)
	}
	if c := got.Address.Coordinate; c == nil || c.Lat != 48.86 || c.Lng != 2.36 {
		t.Errorf("coordinate = %v", c)
	}

	if err := repo.UpdateStatus(ctx, "missing", domain.PackageFailed); !errors.Is(err, ports.ErrPackageNotFound) {
		t.Errorf("UpdateStatus missing: err = %v", err)
	}
	if err := repo.SetCoordinate(ctx, "missing", domain.Coordinate{}); !errors.Is(err, ports.ErrPackageNotFound) {
		t.Errorf("SetCoordinate missing: err = %v", err)
	}
}

func TestSavePackageReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := samplePackage("p1", time.Now())
	if err := repo.SavePackage(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Notes = "leave at reception"
	p.Address = p.Address.WithCoordinate(domain.Coordinate{Lat: 1, Lng: 2})
	if err := repo.SavePackage(ctx, p); err != nil {
		t.Fatal(err)
	}

	pkgs, err := repo.ListPackages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 1 || pkgs[0].Notes != "leave at reception" || !pkgs[0].Address.HasCoordinate() {
		t.Fatalf("packages = %+v", pkgs)
	}
}

func TestSeedFromJSON(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "packages.json")
	data := []byte(`[
		{"id": "s1", "address": {"number": "1", "street": "Rue A", "postal_code": "75001", "city": "Paris"}, "priority": "first"},
		{"address": {"number": "2", "street": "Rue B", "postal_code": "75002", "city": "Paris",
		 "coordinate": {"lat": 48.87, "lng": 2.34}}, "delivery_type": "business"}
	]`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := SeedFromJSON(ctx, repo, path); err != nil {
			t.Fatalf("SeedFromJSON run %d: %v", i+1, err)
		}
	}

	pkgs, err := repo.ListPackages(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages after re-seed, got %d", len(pkgs))
	}
	if pkgs[0].ID != "s1" || pkgs[0].Priority != domain.PriorityFirst {
		t.Errorf("first seed = %s/%s", pkgs[0].ID, pkgs[0].Priority)
	}
	if pkgs[1].ID == "" || pkgs[1].DeliveryType != domain.DeliveryBusiness || !pkgs[1].Address.HasCoordinate() {
		t.Errorf("second seed = %+v", pkgs[1])
	}
}

func TestSeedFromJSONRejectsMissingStreet(t *testing.T) {
	repo := newTestRepo(t)

	path := filepath.Join(t.TempDir(), "packages.json")
	if err := os.WriteFile(path, []byte(`[{"address": {"city": "Paris"}}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SeedFromJSON(context.Background(), repo, path); err == nil {
		t.Fatal("expected error for missing street")
	}
}
