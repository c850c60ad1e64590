package repository

import (
	"math"
	"testing"

	"github.com/abhishek23012000/Contextual-News-Retrieval-API/internal/model"
)

func TestFilterWithinRadius_StrictBoundary(t *testing.T) {
	// On the equator a degree of longitude is about 111.32 km, so 0.0897°
	// is just under 10 km out and 0.0900° is just over.
	articles := []model.Article{
		{ID: "inside", Latitude: 0, Longitude: 0.0897},
		{ID: "outside", Latitude: 0, Longitude: 0.0900},
	}

	got := filterWithinRadius(articles, 0, 0, 10)

	if len(got) != 1 || got[0].ID != "inside" {
		t.Fatalf("want only the sub-10km article, got %v", got)
	}
}

func TestFilterWithinRadius_AcrossDateLine(t *testing.T) {
	// Requester and article sit on opposite sides of the antimeridian,
	// about 22.26 km apart.
	articles := []model.Article{
		{ID: "across", Latitude: 0, Longitude: -179.9},
		{ID: "far", Latitude: 0, Longitude: -170},
	}

	got := filterWithinRadius(articles, 0, 179.9, 50)

	if len(got) != 1 || got[0].ID != "across" {
		t.Fatalf("want the article across the date line, got %v", got)
	}
}

func TestFilterWithinRadius_SkipsCorruptCoordinates(t *testing.T) {
	articles := []model.Article{
		{ID: "good", Latitude: 0, Longitude: 0.01},
		{ID: "corrupt", Latitude: 400, Longitude: 0},
	}

	got := filterWithinRadius(articles, 0, 0, 10)

	if len(got) != 1 || got[0].ID != "good" {
		t.Fatalf("want corrupt coordinates skipped, got %v", got)
	}
}

func TestLonBounds(t *testing.T) {
	tests := []struct {
		name      string
		lon       float64
		lonDelta  float64
		wantLow   float64
		wantHigh  float64
		wantWraps bool
	}{
		{"no wrap", 0, 0.5, -0.5, 0.5, false},
		{"touches the edge", 179.5, 0.5, 179.0, 180.0, false},
		{"wraps east", 179.9, 0.5, 179.4, -179.6, true},
		{"wraps west", -179.9, 0.5, 179.6, -179.4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high, wraps := lonBounds(tt.lon, tt.lonDelta)
			if wraps != tt.wantWraps {
				t.Fatalf("wraps = %v, want %v", wraps, tt.wantWraps)
			}
			if math.Abs(low-tt.wantLow) > 1e-9 || math.Abs(high-tt.wantHigh) > 1e-9 {
				t.Errorf("bounds = (%v, %v), want (%v, %v)", low, high, tt.wantLow, tt.wantHigh)
			}
		})
	}
}

func TestLonBounds_WrappedWindowCoversDateLineNeighbors(t *testing.T) {
	// The box that produced the wrap must still admit points on the far
	// side: a requester at 179.9° with a ~0.47° window reaches -179.9°.
	low, high, wraps := lonBounds(179.9, 0.472)
	if !wraps {
		t.Fatal("window crossing 180 must wrap")
	}

	inWindow := func(lon float64) bool { return lon >= low || lon <= high }

	if !inWindow(-179.9) {
		t.Errorf("(-179.9) excluded by window [%v, %v]", low, high)
	}
	if !inWindow(179.95) {
		t.Errorf("(179.95) excluded by window [%v, %v]", low, high)
	}
	if inWindow(0) {
		t.Errorf("(0) wrongly included by window [%v, %v]", low, high)
	}
}
