package location

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// StaticProvider reports a fixed, configured position. It stands in for a
// device location service when running as a server.
type StaticProvider struct {
	coords model.Coordinates
}

var _ interfaces.LocationProvider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider that always reports coords
func NewStaticProvider(coords model.Coordinates) (*StaticProvider, error) {
	if !coords.IsValid() {
		return nil, goerr.New("static location out of range", goerr.V("coordinates", coords))
	}
	return &StaticProvider{coords: coords}, nil
}

func (p *StaticProvider) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (p *StaticProvider) CurrentPosition(ctx context.Context) (model.Coordinates, error) {
	return p.coords, nil
}

func (p *StaticProvider) LastKnownPosition(ctx context.Context) (*model.Coordinates, error) {
	c := p.coords
	return &c, nil
}

// DeniedProvider behaves like a device on which the user refused location
// access
type DeniedProvider struct{}

var _ interfaces.LocationProvider = DeniedProvider{}

func (DeniedProvider) RequestPermission(ctx context.Context) (bool, error) {
	return false, nil
}

func (DeniedProvider) CurrentPosition(ctx context.Context) (model.Coordinates, error) {
	return model.Coordinates{}, goerr.Wrap(model.ErrPermissionDenied, "location access denied")
}

func (DeniedProvider) LastKnownPosition(ctx context.Context) (*model.Coordinates, error) {
	return nil, nil
}
