package geocode_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/service/geocode"
)

func TestResolveReportAddress(t *testing.T) {
	resolved := &mocks.GeocoderMock{
		ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
			return &model.Address{
				Road:          "Calle Guerrero",
				HouseNumber:   "12",
				Neighbourhood: "Centro",
				City:          "Pachuca de Soto",
				State:         "Hidalgo",
			}, nil
		},
	}

	t.Run("postal address is kept", func(t *testing.T) {
		report := &model.Report{
			ID:          "1",
			Address:     "Av. Revolución 100, Centro, Pachuca",
			Coordinates: pachuca,
		}
		addr := geocode.ResolveReportAddress(context.Background(), resolved, report)
		gt.Equal(t, "Av. Revolución 100, Centro, Pachuca", addr.Full)
		gt.Equal(t, "Av. Revolución 100", addr.Short)
		gt.False(t, addr.Geocoded)
	})

	t.Run("placeholder address is geocoded", func(t *testing.T) {
		report := &model.Report{ID: "2", Address: "Reporte vía WhatsApp", Coordinates: pachuca}
		addr := geocode.ResolveReportAddress(context.Background(), resolved, report)
		gt.Equal(t, "Calle Guerrero 12, Centro, Pachuca de Soto, Hidalgo", addr.Full)
		gt.Equal(t, "Calle Guerrero 12, Centro", addr.Short)
		gt.True(t, addr.Geocoded)
	})

	t.Run("geocoding failure falls back to coordinates", func(t *testing.T) {
		failing := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				return nil, errors.New("offline")
			},
		}
		report := &model.Report{ID: "3", Address: "whatsapp", Coordinates: pachuca}
		addr := geocode.ResolveReportAddress(context.Background(), failing, report)
		gt.Equal(t, "20.0847, -98.3686", addr.Full)
		gt.Equal(t, "20.0847, -98.3686", addr.Short)
		gt.False(t, addr.Geocoded)
	})

	t.Run("short address falls back to coordinates", func(t *testing.T) {
		cityOnly := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				return &model.Address{City: "Pachuca de Soto", State: "Hidalgo"}, nil
			},
		}
		report := &model.Report{ID: "4", Address: "whatsapp", Coordinates: pachuca}
		addr := geocode.ResolveReportAddress(context.Background(), cityOnly, report)
		gt.Equal(t, "Pachuca de Soto, Hidalgo", addr.Full)
		gt.Equal(t, "20.0847, -98.3686", addr.Short)
	})

	t.Run("no geocoder", func(t *testing.T) {
		report := &model.Report{ID: "5", Address: "whatsapp", Coordinates: pachuca}
		addr := geocode.ResolveReportAddress(context.Background(), nil, report)
		gt.Equal(t, "20.0847, -98.3686", addr.Full)
	})

	t.Run("empty address", func(t *testing.T) {
		report := &model.Report{ID: "6", Coordinates: pachuca}
		addr := geocode.ResolveReportAddress(context.Background(), resolved, report)
		gt.Equal(t, "20.0847, -98.3686", addr.Short)
		gt.A(t, resolved.ReverseGeocodeCalls()).Length(1)
	})
}
