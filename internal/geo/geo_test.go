package geo

import (
	"math"
	"testing"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{48.8566, 2.3522},
		{-33.8688, 151.2093},
		{90, 0},
	}

	for _, p := range points {
		d, err := Distance(p[0], p[1], p[0], p[1])
		if err != nil {
			t.Fatalf("unexpected error for (%v, %v): %v", p[0], p[1], err)
		}
		if d != 0 {
			t.Errorf("Distance(A, A) = %v, want 0", d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	ab, err := Distance(48.8566, 2.3522, 51.5074, -0.1278)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Distance(51.5074, -0.1278, 48.8566, 2.3522)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name                   string
		latA, lonA, latB, lonB float64
		wantKm                 float64
		tolKm                  float64
	}{
		{"one degree longitude at equator", 0, 0, 0, 1, 111.32, 0.2},
		{"paris to london", 48.8566, 2.3522, 51.5074, -0.1278, 343.9, 1.5},
		{"across the date line", 0, 179.5, 0, -179.5, 111.32, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distance(tt.latA, tt.lonA, tt.latB, tt.lonB)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.wantKm) > tt.tolKm {
				t.Errorf("got %v km, want %v km (±%v)", got, tt.wantKm, tt.tolKm)
			}
		})
	}
}

func TestDistance_InvalidCoordinates(t *testing.T) {
	tests := []struct {
		name                   string
		latA, lonA, latB, lonB float64
	}{
		{"latitude above range", 90.5, 0, 0, 0},
		{"latitude below range", -91, 0, 0, 0},
		{"longitude above range", 0, 180.1, 0, 0},
		{"invalid second point", 0, 0, 0, -181},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Distance(tt.latA, tt.lonA, tt.latB, tt.lonB)
			if err != ErrInvalidCoordinate {
				t.Errorf("got %v, want ErrInvalidCoordinate", err)
			}
		})
	}
}
