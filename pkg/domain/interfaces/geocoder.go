package interfaces

//go:generate moq -out mocks/geocoder_mock.go -pkg mocks . Geocoder

import (
	"context"

	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// Geocoder resolves coordinates to a postal address
type Geocoder interface {
	ReverseGeocode(ctx context.Context, coordinates model.Coordinates) (*model.Address, error)
}
