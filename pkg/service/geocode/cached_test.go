package geocode_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/repository"
	"github.com/secmon-lab/sirse/pkg/service/geocode"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
)

func TestCacheKey(t *testing.T) {
	gt.Equal(t, "20.084700,-98.368600", geocode.CacheKey(pachuca))
	gt.Equal(t, "20.084700,-98.368600", geocode.CacheKey(model.Coordinates{Latitude: 20.08470001, Longitude: -98.36860004}))
}

func TestCachedReverseGeocode(t *testing.T) {
	t.Run("second lookup is served from cache", func(t *testing.T) {
		upstream := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				return &model.Address{Road: "Calle Guerrero", Neighbourhood: "Centro"}, nil
			},
		}
		cache := repository.NewMemoryAddressCache()
		g := geocode.NewCached(upstream, cache,
			geocode.WithRequestInterval(0),
			geocode.WithMetrics(metrics.New()),
		)

		first, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.NoError(t, err).Required()
		second, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.NoError(t, err).Required()

		gt.Equal(t, *first, *second)
		gt.A(t, upstream.ReverseGeocodeCalls()).Length(1)
		gt.Equal(t, 1, cache.Len())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		var calls atomic.Int32
		upstream := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				if calls.Add(1) == 1 {
					return nil, errors.New("timeout")
				}
				return &model.Address{Road: "Calle Guerrero"}, nil
			},
		}
		cache := repository.NewMemoryAddressCache()
		g := geocode.NewCached(upstream, cache, geocode.WithRequestInterval(0))

		_, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.Error(t, err)
		gt.Equal(t, 0, cache.Len())

		addr, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.NoError(t, err).Required()
		gt.Equal(t, "Calle Guerrero", addr.Road)
	})

	t.Run("nil address from upstream is an error", func(t *testing.T) {
		upstream := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				return nil, nil
			},
		}
		g := geocode.NewCached(upstream, repository.NewMemoryAddressCache(), geocode.WithRequestInterval(0))

		_, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.True(t, errors.Is(err, model.ErrAddressNotResolvable))
	})

	t.Run("cache read failure falls through to upstream", func(t *testing.T) {
		upstream := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				return &model.Address{Road: "Calle Guerrero"}, nil
			},
		}
		cache := &mocks.AddressCacheMock{
			GetAddressFunc: func(ctx context.Context, key string) (*model.Address, error) {
				return nil, errors.New("disk full")
			},
			PutAddressFunc: func(ctx context.Context, key string, address *model.Address) error {
				return errors.New("disk full")
			},
		}
		g := geocode.NewCached(upstream, cache, geocode.WithRequestInterval(0))

		addr, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.NoError(t, err).Required()
		gt.Equal(t, "Calle Guerrero", addr.Road)
		gt.A(t, cache.PutAddressCalls()).Length(1)
		gt.Equal(t, "20.084700,-98.368600", cache.PutAddressCalls()[0].Key)
	})

	t.Run("concurrent lookups of one position are coalesced", func(t *testing.T) {
		release := make(chan struct{})
		upstream := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				<-release
				return &model.Address{Road: "Calle Guerrero"}, nil
			},
		}
		g := geocode.NewCached(upstream, repository.NewMemoryAddressCache(), geocode.WithRequestInterval(0))

		var wg sync.WaitGroup
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				addr, err := g.ReverseGeocode(context.Background(), pachuca)
				gt.NoError(t, err)
				gt.Equal(t, "Calle Guerrero", addr.Road)
			}()
		}

		// let the goroutines pile up on the in-flight lookup
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		gt.A(t, upstream.ReverseGeocodeCalls()).Length(1)
	})

	t.Run("upstream lookups are rate limited", func(t *testing.T) {
		upstream := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				return &model.Address{Road: "Calle Guerrero"}, nil
			},
		}
		g := geocode.NewCached(upstream, repository.NewMemoryAddressCache(),
			geocode.WithRequestInterval(100*time.Millisecond))

		start := time.Now()
		for i := range 3 {
			_, err := g.ReverseGeocode(context.Background(), model.Coordinates{
				Latitude:  20 + float64(i)*0.01,
				Longitude: -98,
			})
			gt.NoError(t, err).Required()
		}
		gt.True(t, time.Since(start) >= 190*time.Millisecond)
	})

	t.Run("cancelled context stops waiting for the limiter", func(t *testing.T) {
		upstream := &mocks.GeocoderMock{
			ReverseGeocodeFunc: func(ctx context.Context, coords model.Coordinates) (*model.Address, error) {
				return &model.Address{Road: "Calle Guerrero"}, nil
			},
		}
		g := geocode.NewCached(upstream, repository.NewMemoryAddressCache(),
			geocode.WithRequestInterval(time.Hour))

		_, err := g.ReverseGeocode(context.Background(), pachuca)
		gt.NoError(t, err).Required()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = g.ReverseGeocode(ctx, model.Coordinates{Latitude: 19.5, Longitude: -99})
		gt.Error(t, err)
		gt.A(t, upstream.ReverseGeocodeCalls()).Length(1)
	})
}
