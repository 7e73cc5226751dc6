package repository

import (
	"context"
	"sync"

	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// MemoryAddressCache keeps geocoded addresses for the lifetime of the
// process. It is unbounded.
type MemoryAddressCache struct {
	mu        sync.RWMutex
	addresses map[string]model.Address
}

var _ interfaces.AddressCache = (*MemoryAddressCache)(nil)

// NewMemoryAddressCache creates a new in-memory address cache
func NewMemoryAddressCache() *MemoryAddressCache {
	return &MemoryAddressCache{
		addresses: make(map[string]model.Address),
	}
}

// GetAddress returns a copy of the cached address, or nil on a miss
func (c *MemoryAddressCache) GetAddress(ctx context.Context, key string) (*model.Address, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	addr, ok := c.addresses[key]
	if !ok {
		return nil, nil
	}
	return &addr, nil
}

// PutAddress stores a copy of the address
func (c *MemoryAddressCache) PutAddress(ctx context.Context, key string, address *model.Address) error {
	if address == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.addresses[key] = *address
	return nil
}

// Len returns the number of cached addresses
func (c *MemoryAddressCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.addresses)
}

// Close is a no-op
func (c *MemoryAddressCache) Close() error {
	return nil
}
