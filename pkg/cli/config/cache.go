package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/repository"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Address cache backends
const (
	CacheBackendMemory    = "memory"
	CacheBackendSQLite    = "sqlite"
	CacheBackendFirestore = "firestore"
)

// Cache holds the geocoded address cache configuration
type Cache struct {
	Backend             string
	SQLitePath          string
	FirestoreProjectID  string
	FirestoreDatabaseID string
	CredentialsFile     string
}

// Flags returns CLI flags for Cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cache-backend",
			Usage:       "Geocoded address cache backend (memory, sqlite, firestore)",
			Category:    "Cache",
			Value:       CacheBackendMemory,
			Sources:     cli.EnvVars("SIRSE_CACHE_BACKEND"),
			Destination: &c.Backend,
		},
		&cli.StringFlag{
			Name:        "cache-sqlite-path",
			Usage:       "SQLite database file of the address cache",
			Category:    "Cache",
			Value:       "sirse-addresses.db",
			Sources:     cli.EnvVars("SIRSE_CACHE_SQLITE_PATH"),
			Destination: &c.SQLitePath,
		},
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Cache",
			Sources:     cli.EnvVars("SIRSE_FIRESTORE_PROJECT"),
			Destination: &c.FirestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Cache",
			Value:       "(default)",
			Sources:     cli.EnvVars("SIRSE_FIRESTORE_DATABASE"),
			Destination: &c.FirestoreDatabaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-credentials",
			Usage:       "Service account key file (application default credentials when empty)",
			Category:    "Cache",
			Sources:     cli.EnvVars("SIRSE_FIRESTORE_CREDENTIALS"),
			Destination: &c.CredentialsFile,
		},
	}
}

// Configure creates the address cache
func (c *Cache) Configure(ctx context.Context) (interfaces.AddressCache, error) {
	logger := ctxlog.From(ctx)

	switch c.Backend {
	case CacheBackendMemory, "":
		logger.Info("Using memory address cache. Geocoded addresses are lost when shutting down")
		return repository.NewMemoryAddressCache(), nil

	case CacheBackendSQLite:
		cache, err := repository.NewSQLiteAddressCache(c.SQLitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init sqlite address cache", goerr.V("path", c.SQLitePath))
		}
		return cache, nil

	case CacheBackendFirestore:
		if c.FirestoreProjectID == "" {
			return nil, goerr.New("firestore project is required for the firestore cache backend")
		}
		var opts []option.ClientOption
		if c.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
		}
		cache, err := repository.NewFirestoreAddressCache(ctx, c.FirestoreProjectID, c.FirestoreDatabaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", c.FirestoreProjectID),
				goerr.V("database", c.FirestoreDatabaseID),
			)
		}
		return cache, nil

	default:
		return nil, goerr.New("unknown cache backend", goerr.V("backend", c.Backend))
	}
}

// LogValue returns structured log value
func (c Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", c.Backend),
		slog.String("sqlite_path", c.SQLitePath),
		slog.String("firestore_project", c.FirestoreProjectID),
		slog.String("firestore_database", c.FirestoreDatabaseID),
		slog.Bool("has_credentials_file", c.CredentialsFile != ""),
	)
}
