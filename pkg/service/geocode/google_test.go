package geocode_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/service/geocode"
	"googlemaps.github.io/maps"
)

func newGoogleServer(t *testing.T, body string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewGoogle(t *testing.T) {
	_, err := geocode.NewGoogle("")
	gt.Error(t, err)
}

func TestGoogleReverseGeocode(t *testing.T) {
	t.Run("maps address components", func(t *testing.T) {
		srv := newGoogleServer(t, `{
			"status": "OK",
			"results": [{
				"formatted_address": "Calle Guerrero 12, Centro, 42000 Pachuca de Soto, Hgo., México",
				"address_components": [
					{"long_name": "12", "short_name": "12", "types": ["street_number"]},
					{"long_name": "Calle Guerrero", "short_name": "C. Guerrero", "types": ["route"]},
					{"long_name": "Centro", "short_name": "Centro", "types": ["political", "sublocality", "sublocality_level_1"]},
					{"long_name": "Pachuca de Soto", "short_name": "Pachuca", "types": ["locality", "political"]},
					{"long_name": "Hidalgo", "short_name": "Hgo.", "types": ["administrative_area_level_1", "political"]}
				]
			}]
		}`)
		g, err := geocode.NewGoogle("test-key", maps.WithBaseURL(srv.URL))
		gt.NoError(t, err).Required()

		addr, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.NoError(t, err).Required()
		gt.Equal(t, "Calle Guerrero 12, Centro, Pachuca de Soto, Hidalgo", addr.Full())
		gt.Equal(t, "Calle Guerrero 12, Centro", addr.Short())
	})

	t.Run("no results", func(t *testing.T) {
		srv := newGoogleServer(t, `{"status": "OK", "results": []}`)
		g, err := geocode.NewGoogle("test-key", maps.WithBaseURL(srv.URL))
		gt.NoError(t, err).Required()

		_, err = g.ReverseGeocode(context.Background(), pachuca)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrAddressNotResolvable))
	})
}
