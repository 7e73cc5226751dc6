package interfaces

//go:generate moq -out mocks/location_mock.go -pkg mocks . LocationProvider

import (
	"context"

	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// LocationProvider gives access to the device position
type LocationProvider interface {
	// RequestPermission asks for foreground location access
	RequestPermission(ctx context.Context) (bool, error)
	CurrentPosition(ctx context.Context) (model.Coordinates, error)
	// LastKnownPosition returns nil without error when no position was ever recorded
	LastKnownPosition(ctx context.Context) (*model.Coordinates, error)
}
