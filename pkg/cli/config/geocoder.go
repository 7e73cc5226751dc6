package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/service/geocode"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
)

// Geocoding providers
const (
	GeocoderNominatim = "nominatim"
	GeocoderGoogle    = "google"
	GeocoderNone      = "none"
)

// Geocoder holds reverse geocoding configuration
type Geocoder struct {
	Provider        string
	NominatimURL    string
	UserAgent       string
	GoogleAPIKey    string
	RequestInterval time.Duration
}

// Flags returns CLI flags for Geocoder configuration
func (g *Geocoder) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "geocoder",
			Usage:       "Reverse geocoding provider (nominatim, google, none)",
			Category:    "Geocoding",
			Value:       GeocoderNominatim,
			Sources:     cli.EnvVars("SIRSE_GEOCODER"),
			Destination: &g.Provider,
		},
		&cli.StringFlag{
			Name:        "nominatim-url",
			Usage:       "Nominatim base URL",
			Category:    "Geocoding",
			Value:       geocode.DefaultNominatimURL,
			Sources:     cli.EnvVars("SIRSE_NOMINATIM_URL"),
			Destination: &g.NominatimURL,
		},
		&cli.StringFlag{
			Name:        "nominatim-user-agent",
			Usage:       "User-Agent sent to Nominatim",
			Category:    "Geocoding",
			Value:       geocode.DefaultUserAgent,
			Sources:     cli.EnvVars("SIRSE_NOMINATIM_USER_AGENT"),
			Destination: &g.UserAgent,
		},
		&cli.StringFlag{
			Name:        "google-maps-api-key",
			Usage:       "Google Maps API key for the google provider",
			Category:    "Geocoding",
			Sources:     cli.EnvVars("SIRSE_GOOGLE_MAPS_API_KEY"),
			Destination: &g.GoogleAPIKey,
		},
		&cli.DurationFlag{
			Name:        "geocode-interval",
			Usage:       "Minimum interval between upstream geocoding requests",
			Category:    "Geocoding",
			Value:       geocode.DefaultRequestInterval,
			Sources:     cli.EnvVars("SIRSE_GEOCODE_INTERVAL"),
			Destination: &g.RequestInterval,
		},
	}
}

// Configure creates the cached geocoder. It returns nil for the none
// provider; report addresses then fall back to coordinates.
func (g *Geocoder) Configure(ctx context.Context, cache interfaces.AddressCache, recorder *metrics.Recorder) (interfaces.Geocoder, error) {
	var upstream interfaces.Geocoder
	switch g.Provider {
	case GeocoderNominatim, "":
		upstream = geocode.NewNominatim(
			geocode.WithBaseURL(g.NominatimURL),
			geocode.WithUserAgent(g.UserAgent),
		)

	case GeocoderGoogle:
		client, err := geocode.NewGoogle(g.GoogleAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Google geocoder")
		}
		upstream = client

	case GeocoderNone:
		ctxlog.From(ctx).Warn("Reverse geocoding disabled - placeholder addresses are shown as coordinates")
		return nil, nil

	default:
		return nil, goerr.New("unknown geocoder", goerr.V("provider", g.Provider))
	}

	return geocode.NewCached(upstream, cache,
		geocode.WithRequestInterval(g.RequestInterval),
		geocode.WithMetrics(recorder),
	), nil
}

// LogValue returns structured log value
func (g Geocoder) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", g.Provider),
		slog.String("nominatim_url", g.NominatimURL),
		slog.Bool("has_google_api_key", g.GoogleAPIKey != ""),
		slog.Duration("request_interval", g.RequestInterval),
	)
}
