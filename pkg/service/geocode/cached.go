package geocode

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultRequestInterval is the minimum spacing between upstream lookups.
// The public Nominatim usage policy allows one request per second.
const DefaultRequestInterval = time.Second

// Cached wraps a geocoder with an address cache, an upstream rate limit and
// coalescing of concurrent lookups for the same position
type Cached struct {
	geocoder interfaces.Geocoder
	cache    interfaces.AddressCache
	limiter  *rate.Limiter
	group    singleflight.Group
	metrics  *metrics.Recorder
}

var _ interfaces.Geocoder = (*Cached)(nil)

// CachedOption is a functional option for configuring Cached
type CachedOption func(*Cached)

// WithRequestInterval sets the minimum spacing between upstream lookups.
// Zero or negative disables the limit.
func WithRequestInterval(interval time.Duration) CachedOption {
	return func(c *Cached) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithMetrics records cache hits and misses
func WithMetrics(recorder *metrics.Recorder) CachedOption {
	return func(c *Cached) {
		c.metrics = recorder
	}
}

// NewCached creates a cached geocoder
func NewCached(geocoder interfaces.Geocoder, cache interfaces.AddressCache, opts ...CachedOption) *Cached {
	c := &Cached{
		geocoder: geocoder,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Every(DefaultRequestInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey returns the cache key of a position, rounded to six decimals
// (about 0.1 m)
func CacheKey(coords model.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", coords.Latitude, coords.Longitude)
}

// ReverseGeocode returns the cached address or looks it up upstream.
// Cache failures are logged and treated as misses.
func (c *Cached) ReverseGeocode(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
	logger := ctxlog.From(ctx)
	key := CacheKey(coords)

	cached, err := c.cache.GetAddress(ctx, key)
	if err != nil {
		logger.Warn("failed to read address cache", "key", key, "error", err)
	}
	if cached != nil {
		c.metrics.ObserveGeocode(metrics.GeocodeHit)
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		addr, err := c.geocoder.ReverseGeocode(ctx, coords)
		if err != nil {
			return nil, err
		}
		if addr == nil {
			return nil, goerr.Wrap(model.ErrAddressNotResolvable, "geocoder returned no address",
				goerr.V("key", key))
		}

		if err := c.cache.PutAddress(ctx, key, addr); err != nil {
			logger.Warn("failed to write address cache", "key", key, "error", err)
		}
		return addr, nil
	})
	if err != nil {
		c.metrics.ObserveGeocode(metrics.GeocodeError)
		return nil, err
	}

	c.metrics.ObserveGeocode(metrics.GeocodeMiss)
	addr := *v.(*model.Address)
	return &addr, nil
}
