package repository_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/repository"
)

func testAddressCache(t *testing.T, newCache func(t *testing.T) interfaces.AddressCache) {
	t.Run("miss returns nil", func(t *testing.T) {
		cache := newCache(t)
		defer cache.Close()

		ctx := context.Background()
		addr, err := cache.GetAddress(ctx, fmt.Sprintf("missing-%d", time.Now().UnixNano()))
		gt.NoError(t, err)
		gt.V(t, addr).Nil()
	})

	t.Run("put then get", func(t *testing.T) {
		cache := newCache(t)
		defer cache.Close()

		ctx := context.Background()
		key := fmt.Sprintf("20.%06d,-98.368600", time.Now().UnixNano()%1000000)
		addr := &model.Address{
			Road:          "Avenida Juárez",
			HouseNumber:   "100",
			Neighbourhood: "Centro",
			City:          "Pachuca de Soto",
			State:         "Hidalgo",
			DisplayName:   "Avenida Juárez 100, Centro, Pachuca de Soto, Hidalgo, México",
		}
		gt.NoError(t, cache.PutAddress(ctx, key, addr)).Required()

		got, err := cache.GetAddress(ctx, key)
		gt.NoError(t, err).Required()
		gt.V(t, got).NotNil()
		gt.Equal(t, *addr, *got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		cache := newCache(t)
		defer cache.Close()

		ctx := context.Background()
		key := fmt.Sprintf("overwrite-%d", time.Now().UnixNano())
		gt.NoError(t, cache.PutAddress(ctx, key, &model.Address{Road: "Calle 1"}))
		gt.NoError(t, cache.PutAddress(ctx, key, &model.Address{Road: "Calle 2"}))

		got, err := cache.GetAddress(ctx, key)
		gt.NoError(t, err).Required()
		gt.Equal(t, "Calle 2", got.Road)
	})

	t.Run("nil address is ignored", func(t *testing.T) {
		cache := newCache(t)
		defer cache.Close()

		ctx := context.Background()
		key := fmt.Sprintf("nil-%d", time.Now().UnixNano())
		gt.NoError(t, cache.PutAddress(ctx, key, nil))
		got, err := cache.GetAddress(ctx, key)
		gt.NoError(t, err)
		gt.V(t, got).Nil()
	})
}

func TestMemoryAddressCache(t *testing.T) {
	testAddressCache(t, func(t *testing.T) interfaces.AddressCache {
		return repository.NewMemoryAddressCache()
	})

	t.Run("returned address is a copy", func(t *testing.T) {
		cache := repository.NewMemoryAddressCache()
		ctx := context.Background()
		gt.NoError(t, cache.PutAddress(ctx, "k", &model.Address{Road: "Original"}))

		got, err := cache.GetAddress(ctx, "k")
		gt.NoError(t, err).Required()
		got.Road = "Changed"

		again, err := cache.GetAddress(ctx, "k")
		gt.NoError(t, err).Required()
		gt.Equal(t, "Original", again.Road)
		gt.Equal(t, 1, cache.Len())
	})
}

func TestSQLiteAddressCache(t *testing.T) {
	testAddressCache(t, func(t *testing.T) interfaces.AddressCache {
		cache, err := repository.NewSQLiteAddressCache(filepath.Join(t.TempDir(), "cache", "addresses.db"))
		gt.NoError(t, err).Required()
		return cache
	})

	t.Run("entries survive reopening", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addresses.db")
		ctx := context.Background()

		cache, err := repository.NewSQLiteAddressCache(path)
		gt.NoError(t, err).Required()
		gt.NoError(t, cache.PutAddress(ctx, "20.084700,-98.368600", &model.Address{Road: "Guerrero"}))
		gt.NoError(t, cache.Close())

		reopened, err := repository.NewSQLiteAddressCache(path)
		gt.NoError(t, err).Required()
		defer reopened.Close()

		got, err := reopened.GetAddress(ctx, "20.084700,-98.368600")
		gt.NoError(t, err).Required()
		gt.V(t, got).NotNil()
		gt.Equal(t, "Guerrero", got.Road)
	})
}

func TestFirestoreAddressCache(t *testing.T) {
	// Skip test if Firestore test environment variables are not set
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT")
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE")

	if projectID == "" || databaseID == "" {
		t.Skip("Skipping Firestore test: TEST_FIRESTORE_PROJECT and TEST_FIRESTORE_DATABASE must be set")
	}

	testAddressCache(t, func(t *testing.T) interfaces.AddressCache {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		ctx = ctxlog.With(ctx, logger)

		cache, err := repository.NewFirestoreAddressCache(ctx, projectID, databaseID)
		gt.NoError(t, err).Required()
		return cache
	})
}
