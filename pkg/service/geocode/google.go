package geocode

import (
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"googlemaps.github.io/maps"
)

// Google reverse geocodes coordinates with the Google Maps Geocoding API
type Google struct {
	client   *maps.Client
	language string
}

var _ interfaces.Geocoder = (*Google)(nil)

// NewGoogle creates a new Google Maps geocoder. Extra client options are
// appended after the API key.
func NewGoogle(apiKey string, opts ...maps.ClientOption) (*Google, error) {
	if apiKey == "" {
		return nil, goerr.New("Google Maps API key is required")
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Google Maps client")
	}

	return &Google{
		client:   client,
		language: "es",
	}, nil
}

// ReverseGeocode converts coordinates to an address
func (g *Google) ReverseGeocode(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: coords.Latitude,
			Lng: coords.Longitude,
		},
		Language: g.language,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "Google reverse geocode failed",
			goerr.V("coordinates", coords),
			goerr.T(model.TagNetworkFailure))
	}
	if len(results) == 0 {
		return nil, goerr.Wrap(model.ErrAddressNotResolvable, "Google returned no results",
			goerr.V("coordinates", coords))
	}

	// the first result is the most specific one
	result := results[0]
	addr := &model.Address{DisplayName: result.FormattedAddress}
	for _, c := range result.AddressComponents {
		switch {
		case hasType(c, "route"):
			addr.Road = c.LongName
		case hasType(c, "street_number"):
			addr.HouseNumber = c.LongName
		case hasType(c, "neighborhood"), hasType(c, "sublocality"):
			if addr.Neighbourhood == "" {
				addr.Neighbourhood = c.LongName
			}
		case hasType(c, "locality"):
			addr.City = c.LongName
		case hasType(c, "administrative_area_level_1"):
			addr.State = c.LongName
		}
	}

	if addr.Full() == "" {
		return nil, goerr.Wrap(model.ErrAddressNotResolvable, "Google result has no address",
			goerr.V("coordinates", coords))
	}
	return addr, nil
}

func hasType(c maps.AddressComponent, t string) bool {
	return slices.Contains(c.Types, t)
}
