package geo

import (
	"errors"

	"github.com/pymaxion/geographiclib-go/geodesic"
)

var ErrInvalidCoordinate = errors.New("coordinate out of range")

// ValidCoordinate reports whether lat/lon fall inside the valid ranges
// [-90, 90] and [-180, 180].
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Distance returns the geodesic distance in kilometers between two points on
// the WGS-84 ellipsoid. Haversine is not good enough here: nearby and
// trending filters compare against hard radius boundaries, so the distance
// has to match a reference geodesic within a fraction of a percent.
func Distance(latA, lonA, latB, lonB float64) (float64, error) {
	if !ValidCoordinate(latA, lonA) || !ValidCoordinate(latB, lonB) {
		return 0, ErrInvalidCoordinate
	}
	r := geodesic.WGS84.Inverse(latA, lonA, latB, lonB)
	return r.S12 / 1000.0, nil
}
