package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/cli/config"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/repository"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestCategories(t *testing.T) {
	t.Run("built-in taxonomy", func(t *testing.T) {
		cfg := config.Categories{}
		taxonomy, err := cfg.Configure()
		gt.NoError(t, err).Required()

		gt.A(t, taxonomy.All()).Length(8)
		gt.Equal(t, "luminarias", taxonomy.Resolve("Alumbrado").ID)
		gt.Equal(t, "vialidad", taxonomy.Resolve("baches").ID)
		gt.Equal(t, "otros", taxonomy.Resolve("Fuga de agua").ID)
	})

	t.Run("taxonomy from file", func(t *testing.T) {
		path := writeFile(t, "categories.yaml", `
fallback: general
categories:
  - id: agua
    name: Agua
    color: "#2196F3"
    aliases: [Fugas]
  - id: general
    name: General
    color: "#9E9E9E"
`)
		cfg := config.Categories{File: path}
		taxonomy, err := cfg.Configure()
		gt.NoError(t, err).Required()

		gt.A(t, taxonomy.All()).Length(2)
		gt.Equal(t, "agua", taxonomy.Resolve("Fugas").ID)
		gt.Equal(t, "general", taxonomy.Resolve("Baches").ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadCategoriesFromFile(filepath.Join(t.TempDir(), "none.yaml"))
		gt.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := config.LoadCategoriesFromFile("")
		gt.Error(t, err)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := config.ParseCategories([]byte("categories: [unterminated"))
		gt.Error(t, err)
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := config.ParseCategories([]byte("fallback: otros\n"))
		gt.Error(t, err)
	})
}

func TestHeatmapConfigure(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := config.Heatmap{RadiusKm: 3, TimeRange: "24h", ClusterRadius: 0.01}
		heatmapConfig, clusterer, err := cfg.Configure(nil)
		gt.NoError(t, err).Required()
		gt.V(t, heatmapConfig).NotNil()
		gt.V(t, clusterer).NotNil()
	})

	t.Run("empty time range selects the default", func(t *testing.T) {
		cfg := config.Heatmap{RadiusKm: 3, ClusterRadius: 0.01}
		_, _, err := cfg.Configure(nil)
		gt.NoError(t, err)
	})

	t.Run("unknown time range", func(t *testing.T) {
		cfg := config.Heatmap{RadiusKm: 3, TimeRange: "90d", ClusterRadius: 0.01}
		_, _, err := cfg.Configure(nil)
		gt.Error(t, err)
	})

	t.Run("non-positive cluster radius", func(t *testing.T) {
		cfg := config.Heatmap{RadiusKm: 3, TimeRange: "7d"}
		_, _, err := cfg.Configure(nil)
		gt.Error(t, err)
	})
}

func TestLocationConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("static position", func(t *testing.T) {
		cfg := config.Location{Mode: config.LocationStatic, Latitude: 19.4326, Longitude: -99.1332}
		resolver, err := cfg.Configure()
		gt.NoError(t, err).Required()

		res, err := resolver.Resolve(ctx)
		gt.NoError(t, err).Required()
		gt.False(t, res.PermissionDenied)
		gt.Equal(t, model.Coordinates{Latitude: 19.4326, Longitude: -99.1332}, res.Coordinates)
	})

	t.Run("denied falls back to the default location", func(t *testing.T) {
		cfg := config.Location{Mode: config.LocationDenied}
		resolver, err := cfg.Configure()
		gt.NoError(t, err).Required()

		res, err := resolver.Resolve(ctx)
		gt.NoError(t, err).Required()
		gt.True(t, res.PermissionDenied)
		gt.Equal(t, model.DefaultLocation, res.Coordinates)
	})

	t.Run("out of range position", func(t *testing.T) {
		cfg := config.Location{Mode: config.LocationStatic, Latitude: 95}
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		cfg := config.Location{Mode: "gps"}
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}

func TestCacheConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := config.Cache{Backend: config.CacheBackendMemory}
		cache, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		defer cache.Close()

		gt.NoError(t, cache.PutAddress(ctx, "k", &model.Address{Road: "Guerrero"}))
		got, err := cache.GetAddress(ctx, "k")
		gt.NoError(t, err).Required()
		gt.Equal(t, "Guerrero", got.Road)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := config.Cache{
			Backend:    config.CacheBackendSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "addresses.db"),
		}
		cache, err := cfg.Configure(ctx)
		gt.NoError(t, err).Required()
		gt.NoError(t, cache.Close())
	})

	t.Run("firestore requires a project", func(t *testing.T) {
		cfg := config.Cache{Backend: config.CacheBackendFirestore}
		_, err := cfg.Configure(ctx)
		gt.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := config.Cache{Backend: "redis"}
		_, err := cfg.Configure(ctx)
		gt.Error(t, err)
	})
}

func TestReportAPIConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("seed file", func(t *testing.T) {
		path := writeFile(t, "reports.json", `[
			{"id": 1, "title": "Bache", "category": "Baches", "status": "Urgente",
			 "coordinates": {"latitude": 20.08, "longitude": -98.36}},
			{"id": 2, "title": "Sin coordenadas"}
		]`)
		cfg := config.ReportAPI{SeedFile: path}
		repo, err := cfg.Configure(ctx, nil)
		gt.NoError(t, err).Required()

		reports, err := repo.GetAllReports(ctx, model.ReportQuery{})
		gt.NoError(t, err).Required()
		gt.A(t, reports).Length(1)
	})

	t.Run("API URL", func(t *testing.T) {
		cfg := config.ReportAPI{URL: "https://reportes.example.com/api", Timeout: repository.DefaultReportAPITimeout}
		repo, err := cfg.Configure(ctx, nil)
		gt.NoError(t, err).Required()
		gt.V(t, repo).NotNil()
	})

	t.Run("no source", func(t *testing.T) {
		cfg := config.ReportAPI{}
		_, err := cfg.Configure(ctx, nil)
		gt.Error(t, err)
	})
}

func TestGeocoderConfigure(t *testing.T) {
	ctx := context.Background()
	cache := repository.NewMemoryAddressCache()

	t.Run("nominatim", func(t *testing.T) {
		cfg := config.Geocoder{Provider: config.GeocoderNominatim, NominatimURL: "http://localhost:8088"}
		geocoder, err := cfg.Configure(ctx, cache, nil)
		gt.NoError(t, err).Required()
		gt.V(t, geocoder).NotNil()
	})

	t.Run("none disables geocoding", func(t *testing.T) {
		cfg := config.Geocoder{Provider: config.GeocoderNone}
		geocoder, err := cfg.Configure(ctx, cache, nil)
		gt.NoError(t, err).Required()
		gt.V(t, geocoder).Nil()
	})

	t.Run("google requires an API key", func(t *testing.T) {
		cfg := config.Geocoder{Provider: config.GeocoderGoogle}
		_, err := cfg.Configure(ctx, cache, nil)
		gt.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := config.Geocoder{Provider: "here"}
		_, err := cfg.Configure(ctx, cache, nil)
		gt.Error(t, err)
	})
}

func TestSlackConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		cfg := config.Slack{}
		gt.False(t, cfg.IsConfigured())
		gt.V(t, cfg.Configure(ctx)).Nil()
	})

	t.Run("configured", func(t *testing.T) {
		cfg := config.Slack{OAuthToken: "xoxb-test", ChannelID: "C0123"}
		gt.True(t, cfg.IsConfigured())
		gt.V(t, cfg.Configure(ctx)).NotNil()
	})
}

func TestOutputValidate(t *testing.T) {
	gt.NoError(t, (&config.Output{Format: config.OutputText}).Validate())
	gt.NoError(t, (&config.Output{Format: config.OutputJSON}).Validate())
	gt.Error(t, (&config.Output{Format: "yaml"}).Validate())
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sirse.log")
		cfg := config.Logger{Level: "info", Format: "json", File: path}
		logger, closer, err := cfg.Configure()
		gt.NoError(t, err).Required()

		logger.Info("sweeping sessions")
		gt.NoError(t, closer())

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.S(t, string(data)).Contains("sweeping sessions")
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.Logger{Level: "verbose", Format: "auto"}
		_, _, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := config.Logger{Level: "info", Format: "xml"}
		_, _, err := cfg.Configure()
		gt.Error(t, err)
	})
}
