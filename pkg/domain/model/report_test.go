package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/model"
)

func TestReport(t *testing.T) {
	t.Run("validate", func(t *testing.T) {
		r := &model.Report{ID: "1", Coordinates: model.DefaultLocation}
		gt.NoError(t, r.Validate())

		gt.Error(t, (&model.Report{Coordinates: model.DefaultLocation}).Validate())
		gt.Error(t, (&model.Report{ID: "1", Coordinates: model.Coordinates{Latitude: 91}}).Validate())
	})

	t.Run("needs geocoding", func(t *testing.T) {
		gt.True(t, (&model.Report{Address: "Ubicación de WhatsApp"}).NeedsGeocoding())
		gt.True(t, (&model.Report{Address: "WHATSAPP"}).NeedsGeocoding())
		gt.False(t, (&model.Report{Address: "Av. Juárez 100, Centro"}).NeedsGeocoding())
	})

	t.Run("short address", func(t *testing.T) {
		gt.Equal(t, "Av. Juárez 100", (&model.Report{Address: " Av. Juárez 100 , Centro, Pachuca"}).ShortAddress())
		gt.Equal(t, "Centro", model.ShortenAddress("Centro"))
	})

	t.Run("epoch seconds and milliseconds", func(t *testing.T) {
		want := time.Date(2025, 11, 2, 19, 56, 0, 0, time.UTC)
		gt.True(t, model.TimeFromEpoch(want.Unix()).Equal(want))
		gt.True(t, model.TimeFromEpoch(want.UnixMilli()).Equal(want))

		r := &model.Report{ReportedAtTimestamp: want.UnixMilli()}
		gt.Equal(t, time.Hour, r.Age(want.Add(time.Hour)))
	})

	t.Run("copy", func(t *testing.T) {
		r := &model.Report{ID: "1", Photos: []string{"a.jpg"}}
		c := r.Copy()
		c.Photos[0] = "b.jpg"
		gt.Equal(t, "a.jpg", r.Photos[0])
	})
}

func TestCoordinatesAndBounds(t *testing.T) {
	bounds := model.GeographicBounds{
		NorthEast: model.Coordinates{Latitude: 20.2, Longitude: -98.2},
		SouthWest: model.Coordinates{Latitude: 20.0, Longitude: -98.4},
	}

	t.Run("contains is inclusive", func(t *testing.T) {
		gt.True(t, bounds.Contains(model.DefaultLocation))
		gt.True(t, bounds.Contains(bounds.NorthEast))
		gt.True(t, bounds.Contains(bounds.SouthWest))
		gt.False(t, bounds.Contains(model.Coordinates{Latitude: 19.43, Longitude: -99.13}))
	})

	t.Run("center", func(t *testing.T) {
		c := bounds.Center()
		gt.True(t, c.Latitude > 20.09 && c.Latitude < 20.11)
		gt.True(t, c.Longitude > -98.31 && c.Longitude < -98.29)
	})

	t.Run("validate", func(t *testing.T) {
		gt.NoError(t, bounds.Validate())
		gt.Error(t, model.GeographicBounds{NorthEast: bounds.SouthWest, SouthWest: bounds.NorthEast}.Validate())
		gt.Error(t, model.GeographicBounds{NorthEast: model.Coordinates{Latitude: 95}}.Validate())
	})

	t.Run("label", func(t *testing.T) {
		gt.Equal(t, "20.0847, -98.3686", model.DefaultLocation.Label())
	})
}

func TestAddress(t *testing.T) {
	addr := &model.Address{
		Road:          "Av. Juárez",
		HouseNumber:   "100",
		Neighbourhood: "Centro",
		City:          "Pachuca",
		State:         "Hidalgo",
	}
	gt.Equal(t, "Av. Juárez 100, Centro, Pachuca, Hidalgo", addr.Full())
	gt.Equal(t, "Av. Juárez 100, Centro", addr.Short())

	numberOnly := &model.Address{HouseNumber: "5", City: "Pachuca"}
	gt.Equal(t, "Pachuca", numberOnly.Full())
	gt.Equal(t, "", numberOnly.Short())

	displayOnly := &model.Address{DisplayName: "Pachuca de Soto, Hidalgo"}
	gt.Equal(t, "Pachuca de Soto, Hidalgo", displayOnly.Full())

	var none *model.Address
	gt.Equal(t, "", none.Full())
}
