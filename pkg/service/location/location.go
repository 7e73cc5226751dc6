package location

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// Source tells where a resolved position came from
type Source string

const (
	SourceCurrent   Source = "current"
	SourceLastKnown Source = "last_known"
	SourceDefault   Source = "default"
)

// Resolution is the outcome of a location request
type Resolution struct {
	Coordinates      model.Coordinates `json:"coordinates"`
	Source           Source            `json:"source"`
	PermissionDenied bool              `json:"permissionDenied"`
}

// Resolver turns a LocationProvider into a position that is always usable.
// Denied permission or a failed fix fall back to the last known position
// and then to the default location.
type Resolver struct {
	provider interfaces.LocationProvider
	fallback model.Coordinates
}

// Option is a functional option for configuring Resolver
type Option func(*Resolver)

// WithFallback replaces the default location
func WithFallback(coords model.Coordinates) Option {
	return func(r *Resolver) {
		r.fallback = coords
	}
}

// NewResolver creates a new location resolver. provider may be nil, in
// which case the fallback location is always used.
func NewResolver(provider interfaces.LocationProvider, opts ...Option) *Resolver {
	r := &Resolver{
		provider: provider,
		fallback: model.DefaultLocation,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fallback returns the location used when nothing better is known
func (r *Resolver) Fallback() model.Coordinates {
	return r.fallback
}

// Resolve returns the best available position. It only fails when ctx is
// done.
func (r *Resolver) Resolve(ctx context.Context) (Resolution, error) {
	logger := ctxlog.From(ctx)

	if r.provider == nil {
		return Resolution{Coordinates: r.fallback, Source: SourceDefault}, nil
	}

	granted, err := r.provider.RequestPermission(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Resolution{}, goerr.Wrap(ctx.Err(), "location request cancelled")
		}
		logger.Warn("location permission request failed", "error", err)
	}
	if !granted {
		res := r.lastKnownOrDefault(ctx)
		res.PermissionDenied = true
		return res, nil
	}

	coords, err := r.provider.CurrentPosition(ctx)
	if err == nil && coords.IsValid() {
		return Resolution{Coordinates: coords, Source: SourceCurrent}, nil
	}
	if ctx.Err() != nil {
		return Resolution{}, goerr.Wrap(ctx.Err(), "location request cancelled")
	}
	if err != nil {
		logger.Warn("failed to get current position", "error", err)
	} else {
		logger.Warn("current position out of range", "coordinates", coords)
	}

	return r.lastKnownOrDefault(ctx), nil
}

func (r *Resolver) lastKnownOrDefault(ctx context.Context) Resolution {
	last, err := r.provider.LastKnownPosition(ctx)
	if err != nil {
		ctxlog.From(ctx).Warn("failed to get last known position", "error", err)
	}
	if err == nil && last != nil && last.IsValid() {
		return Resolution{Coordinates: *last, Source: SourceLastKnown}
	}
	return Resolution{Coordinates: r.fallback, Source: SourceDefault}
}
