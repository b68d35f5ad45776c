package geo

import (
	"math"
	"testing"

	"delivery-route-optimizer/internal/domain"
)

func TestHaversineKm(t *testing.T) {
	origin := domain.Coordinate{Lat: 48.85, Lng: 2.35}

	if got := HaversineKm(origin, origin); got != 0 {
		t.Fatalf("identical points: got %v, want 0", got)
	}

	near := HaversineKm(origin, domain.Coordinate{Lat: 48.86, Lng: 2.36})
	if math.Abs(near-1.33) > 0.05 {
		t.Errorf("near distance = %.3f km, want ~1.33", near)
	}

	far := HaversineKm(origin, domain.Coordinate{Lat: 48.90, Lng: 2.40})
	if math.Abs(far-6.65) > 0.1 {
		t.Errorf("far distance = %.3f km, want ~6.65", far)
	}

	// Paris -> London is roughly 344 km.
	pl := HaversineKm(domain.Coordinate{Lat: 48.8566, Lng: 2.3522}, domain.Coordinate{Lat: 51.5074, Lng: -0.1278})
	if math.Abs(pl-344) > 2 {
		t.Errorf("paris-london = %.1f km, want ~344", pl)
	}
}

func TestMatrix(t *testing.T) {
	coords := []domain.Coordinate{
		{Lat: 48.85, Lng: 2.35},
		{Lat: 48.86, Lng: 2.36},
		{Lat: 48.90, Lng: 2.40},
	}

	m := Matrix(coords)
	if err := m.Validate(3); err != nil {
		t.Fatalf("invalid matrix: %v", err)
	}
	for i := range coords {
		if m[i][i] != 0 {
			t.Errorf("diagonal [%d][%d] = %v, want 0", i, i, m[i][i])
		}
		for j := range coords {
			if m[i][j] != m[j][i] {
				t.Errorf("asymmetric entry [%d][%d]", i, j)
			}
		}
	}
	if got, want := m[0][1], HaversineM(coords[0], coords[1]); got != want {
		t.Errorf("m[0][1] = %v, want %v", got, want)
	}
}

func TestHaversineKmAntipodal(t *testing.T) {
	halfCircumference := math.Pi * EarthRadiusKm
	pairs := [][2]domain.Coordinate{
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 180}},
		{{Lat: 90, Lng: 0}, {Lat: -90, Lng: 0}},
		{{Lat: 48.85, Lng: 2.35}, {Lat: -48.85, Lng: -177.65}},
		{{Lat: 45, Lng: 10}, {Lat: -45, Lng: -170.0000001}},
	}
	for _, p := range pairs {
		got := HaversineKm(p[0], p[1])
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("%v -> %v: got %v", p[0], p[1], got)
		}
		if math.Abs(got-halfCircumference) > 0.1 {
			t.Errorf("%v -> %v: got %.3f km, want ~%.3f", p[0], p[1], got, halfCircumference)
		}
	}
}
