package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	_ "modernc.org/sqlite"
)

const addressSchema = `
CREATE TABLE IF NOT EXISTS addresses (
	cache_key     TEXT PRIMARY KEY,
	road          TEXT NOT NULL DEFAULT '',
	house_number  TEXT NOT NULL DEFAULT '',
	neighbourhood TEXT NOT NULL DEFAULT '',
	city          TEXT NOT NULL DEFAULT '',
	state         TEXT NOT NULL DEFAULT '',
	display_name  TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteAddressCache persists geocoded addresses in a local SQLite file so
// they survive restarts
type SQLiteAddressCache struct {
	db *sqlx.DB
}

var _ interfaces.AddressCache = (*SQLiteAddressCache)(nil)

// NewSQLiteAddressCache opens or creates the cache database at path. Use
// ":memory:" for a throwaway database.
func NewSQLiteAddressCache(path string) (*SQLiteAddressCache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create cache directory", goerr.V("path", path))
		}
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open address cache", goerr.V("path", path))
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(addressSchema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to migrate address cache", goerr.V("path", path))
	}

	return &SQLiteAddressCache{db: db}, nil
}

// GetAddress returns the cached address, or nil on a miss
func (c *SQLiteAddressCache) GetAddress(ctx context.Context, key string) (*model.Address, error) {
	var addr model.Address
	err := c.db.GetContext(ctx, &addr, `
		SELECT road, house_number, neighbourhood, city, state, display_name
		FROM addresses WHERE cache_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read address cache", goerr.V("key", key))
	}
	return &addr, nil
}

// PutAddress stores the address, replacing any previous entry
func (c *SQLiteAddressCache) PutAddress(ctx context.Context, key string, address *model.Address) error {
	if address == nil {
		return nil
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO addresses (cache_key, road, house_number, neighbourhood, city, state, display_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			road = excluded.road,
			house_number = excluded.house_number,
			neighbourhood = excluded.neighbourhood,
			city = excluded.city,
			state = excluded.state,
			display_name = excluded.display_name`,
		key, address.Road, address.HouseNumber, address.Neighbourhood,
		address.City, address.State, address.DisplayName)
	if err != nil {
		return goerr.Wrap(err, "failed to write address cache", goerr.V("key", key))
	}
	return nil
}

// Close closes the database
func (c *SQLiteAddressCache) Close() error {
	return c.db.Close()
}
