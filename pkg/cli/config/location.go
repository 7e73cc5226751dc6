package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/service/location"
	"github.com/urfave/cli/v3"
)

// Location modes
const (
	LocationStatic = "static"
	LocationDenied = "denied"
)

// Location holds the user location configuration. The server has no
// device, so the position is configured.
type Location struct {
	Mode      string
	Latitude  float64
	Longitude float64
}

// Flags returns CLI flags for Location configuration
func (l *Location) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "location-mode",
			Usage:       "User location source (static, denied)",
			Category:    "Location",
			Value:       LocationStatic,
			Sources:     cli.EnvVars("SIRSE_LOCATION_MODE"),
			Destination: &l.Mode,
		},
		&cli.FloatFlag{
			Name:        "lat",
			Usage:       "Latitude of the user location",
			Category:    "Location",
			Value:       model.DefaultLocation.Latitude,
			Sources:     cli.EnvVars("SIRSE_LAT"),
			Destination: &l.Latitude,
		},
		&cli.FloatFlag{
			Name:        "lng",
			Usage:       "Longitude of the user location",
			Category:    "Location",
			Value:       model.DefaultLocation.Longitude,
			Sources:     cli.EnvVars("SIRSE_LNG"),
			Destination: &l.Longitude,
		},
	}
}

// Configure creates the location resolver
func (l *Location) Configure() (*location.Resolver, error) {
	coords := model.Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}

	switch l.Mode {
	case LocationStatic, "":
		provider, err := location.NewStaticProvider(coords)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid user location")
		}
		return location.NewResolver(provider), nil

	case LocationDenied:
		return location.NewResolver(location.DeniedProvider{}), nil

	default:
		return nil, goerr.New("unknown location mode", goerr.V("mode", l.Mode))
	}
}

// LogValue returns structured log value
func (l Location) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", l.Mode),
		slog.Float64("lat", l.Latitude),
		slog.Float64("lng", l.Longitude),
	)
}
