package cache

import (
	"context"
	"delivery-route-optimizer/internal/adapters/repositories"
	"delivery-route-optimizer/internal/domain"
	"delivery-route-optimizer/internal/platform/db"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := repositories.InitSchema(context.Background(), database); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return database
}

func TestSQLGeocodeCacheRoundTrip(t *testing.T) {
	c := NewSQLGeocodeCache(openTestDB(t))
	ctx := context.Background()

	err := c.PutMany(ctx, map[string]domain.Coordinate{
		"1 Rue A, 75001 Paris": {Lat: 48.86, Lng: 2.36},
		"2 Rue B, 75001 Paris": {Lat: 48.87, Lng: 2.37},
	})
	if err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"1 Rue A, 75001 Paris", "missing", "1 Rue A, 75001 Paris", ""})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 hit, got %v", got)
	}
	if c := got["1 Rue A, 75001 Paris"]; c.Lat != 48.86 || c.Lng != 2.36 {
		t.Fatalf("coordinate = %+v", c)
	}
}

func TestSQLGeocodeCacheUpsert(t *testing.T) {
	c := NewSQLGeocodeCache(openTestDB(t))
	ctx := context.Background()

	addr := "1 Rue A, 75001 Paris"
	if err := c.PutMany(ctx, map[string]domain.Coordinate{addr: {Lat: 1, Lng: 1}}); err != nil {
		t.Fatal(err)
	}
	if err := c.PutMany(ctx, map[string]domain.Coordinate{addr: {Lat: 2, Lng: 3}}); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetMany(ctx, []string{addr})
	if err != nil {
		t.Fatal(err)
	}
	if got[addr].Lat != 2 || got[addr].Lng != 3 {
		t.Fatalf("coordinate = %+v, want updated", got[addr])
	}
}

func TestSQLGeocodeCacheRejectsEmptyKey(t *testing.T) {
	c := NewSQLGeocodeCache(openTestDB(t))
	if err := c.PutMany(context.Background(), map[string]domain.Coordinate{" ": {}}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

type countingGeocoder struct {
	calls int
	err   error
}

func (g *countingGeocoder) Geocode(_ context.Context, _ string) (domain.Coordinate, error) {
	g.calls++
	if g.err != nil {
		return domain.Coordinate{}, g.err
	}
	return domain.Coordinate{Lat: 48.86, Lng: 2.36}, nil
}

func TestCachedGeocoderStoresResults(t *testing.T) {
	inner := &countingGeocoder{}
	g := NewCachedGeocoder(inner, NewSQLGeocodeCache(openTestDB(t)))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c, err := g.Geocode(ctx, "1 Rue A, 75001 Paris")
		if err != nil {
			t.Fatalf("Geocode: %v", err)
		}
		if c.Lat != 48.86 {
			t.Fatalf("coordinate = %+v", c)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedGeocoderDoesNotCacheErrors(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	g := NewCachedGeocoder(inner, NewSQLGeocodeCache(openTestDB(t)))

	for i := 0; i < 2; i++ {
		if _, err := g.Geocode(context.Background(), "x"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d, want 2", inner.calls)
	}
}
