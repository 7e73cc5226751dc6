package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap Nominatim instance
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	// DefaultUserAgent identifies the client; Nominatim rejects anonymous requests
	DefaultUserAgent = "SIRSE-App/1.0"
	// DefaultTimeout bounds a single lookup
	DefaultTimeout = 10 * time.Second
)

// Nominatim reverse geocodes coordinates with an OpenStreetMap Nominatim server
type Nominatim struct {
	client    *http.Client
	userAgent string
	baseURL   string
}

var _ interfaces.Geocoder = (*Nominatim)(nil)

// NominatimOption is a functional option for configuring Nominatim
type NominatimOption func(*Nominatim)

// WithBaseURL points the client at another Nominatim server
func WithBaseURL(baseURL string) NominatimOption {
	return func(n *Nominatim) {
		n.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(userAgent string) NominatimOption {
	return func(n *Nominatim) {
		n.userAgent = userAgent
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(client *http.Client) NominatimOption {
	return func(n *Nominatim) {
		n.client = client
	}
}

// NewNominatim creates a new Nominatim geocoder
func NewNominatim(opts ...NominatimOption) *Nominatim {
	n := &Nominatim{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
		baseURL:   DefaultNominatimURL,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type nominatimAddress struct {
	Road          string `json:"road"`
	HouseNumber   string `json:"house_number"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	State         string `json:"state"`
}

type nominatimResponse struct {
	DisplayName string            `json:"display_name"`
	Address     *nominatimAddress `json:"address"`
	Error       string            `json:"error"`
}

// ReverseGeocode converts coordinates to an address
func (n *Nominatim) ReverseGeocode(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	reqURL := n.baseURL + "/reverse?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create geocode request", goerr.V("url", reqURL))
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "geocode request failed",
			goerr.V("url", reqURL),
			goerr.T(model.TagNetworkFailure))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("geocode server returned error status",
			goerr.V("url", reqURL),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.TagNetworkFailure))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read geocode response",
			goerr.V("url", reqURL),
			goerr.T(model.TagNetworkFailure))
	}

	var result nominatimResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, goerr.Wrap(err, "failed to parse geocode response",
			goerr.V("url", reqURL),
			goerr.T(model.TagNetworkFailure))
	}

	if result.Error != "" {
		return nil, goerr.Wrap(model.ErrAddressNotResolvable, "geocode server found no address",
			goerr.V("coordinates", coords),
			goerr.V("reason", result.Error))
	}

	addr := &model.Address{DisplayName: result.DisplayName}
	if a := result.Address; a != nil {
		addr.Road = a.Road
		addr.HouseNumber = a.HouseNumber
		addr.Neighbourhood = firstNonEmpty(a.Neighbourhood, a.Suburb)
		addr.City = firstNonEmpty(a.City, a.Town, a.Village)
		addr.State = a.State
	}

	if addr.Full() == "" {
		return nil, goerr.Wrap(model.ErrAddressNotResolvable, "geocode response has no address",
			goerr.V("coordinates", coords))
	}
	return addr, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
