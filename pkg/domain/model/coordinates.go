package model

import (
	"fmt"
	"math"
)

// Coordinates is a WGS84 position in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude" firestore:"latitude"`
	Longitude float64 `json:"longitude" firestore:"longitude"`
}

// IsValid reports whether both components are finite and in range
func (c Coordinates) IsValid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Label formats the position for display when no address is known
func (c Coordinates) Label() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// DefaultLocation is the city centre of Pachuca, used whenever the user location is unavailable
var DefaultLocation = Coordinates{Latitude: 20.0847, Longitude: -98.3686}
