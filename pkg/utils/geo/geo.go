// Package geo holds the spherical geometry used for distances and viewports.
package geo

import (
	"fmt"
	"math"

	"github.com/secmon-lab/sirse/pkg/domain/model"
)

const (
	// EarthRadiusKm is the mean Earth radius used by DistanceKm
	EarthRadiusKm = 6371.0

	// kmPerDegree is the approximate length of one degree of latitude
	kmPerDegree = 111.0
)

// ToRadians converts degrees to radians
func ToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDegrees converts radians to degrees
func ToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DistanceKm returns the great-circle distance between a and b in kilometers
func DistanceKm(a, b model.Coordinates) float64 {
	lat1 := ToRadians(a.Latitude)
	lat2 := ToRadians(b.Latitude)
	deltaLat := ToRadians(b.Latitude - a.Latitude)
	deltaLng := ToRadians(b.Longitude - a.Longitude)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// BoundsAround returns the box extending radiusKm from center on each side.
// The longitude extent grows as 1/cos(lat) and is meaningless near the poles.
func BoundsAround(center model.Coordinates, radiusKm float64) model.GeographicBounds {
	latDelta := radiusKm / kmPerDegree
	lngDelta := radiusKm / (kmPerDegree * math.Cos(ToRadians(center.Latitude)))

	return model.GeographicBounds{
		NorthEast: model.Coordinates{
			Latitude:  center.Latitude + latDelta,
			Longitude: center.Longitude + lngDelta,
		},
		SouthWest: model.Coordinates{
			Latitude:  center.Latitude - latDelta,
			Longitude: center.Longitude - lngDelta,
		},
	}
}

// FormatDistance renders a distance for display: whole meters below one
// kilometer, otherwise kilometers with one decimal.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}
