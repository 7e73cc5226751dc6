package model

import "github.com/m-mizutani/goerr/v2"

// GeographicBounds is an axis-aligned lat/lng box. Longitude wraparound at
// the antimeridian is not handled: a box whose south-west longitude is
// greater than its north-east longitude contains nothing.
type GeographicBounds struct {
	NorthEast Coordinates `json:"northEast"`
	SouthWest Coordinates `json:"southWest"`
}

// Contains reports whether c lies inside the box, inclusive on every edge
func (b GeographicBounds) Contains(c Coordinates) bool {
	return c.Latitude >= b.SouthWest.Latitude &&
		c.Latitude <= b.NorthEast.Latitude &&
		c.Longitude >= b.SouthWest.Longitude &&
		c.Longitude <= b.NorthEast.Longitude
}

// Center returns the midpoint of the box
func (b GeographicBounds) Center() Coordinates {
	return Coordinates{
		Latitude:  (b.NorthEast.Latitude + b.SouthWest.Latitude) / 2,
		Longitude: (b.NorthEast.Longitude + b.SouthWest.Longitude) / 2,
	}
}

// Validate validates the bounds
func (b GeographicBounds) Validate() error {
	if !b.NorthEast.IsValid() || !b.SouthWest.IsValid() {
		return goerr.Wrap(ErrInvalidBounds, "bounds corner out of range",
			goerr.V("northEast", b.NorthEast),
			goerr.V("southWest", b.SouthWest))
	}
	if b.NorthEast.Latitude < b.SouthWest.Latitude {
		return goerr.Wrap(ErrInvalidBounds, "north-east latitude must not be below south-west latitude",
			goerr.V("northEast", b.NorthEast),
			goerr.V("southWest", b.SouthWest))
	}
	return nil
}
