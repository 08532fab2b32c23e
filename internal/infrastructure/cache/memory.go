// Package cache provides the optional resolver-cache adapters.  The
// resolution engine never caches by itself; callers wire one of these (or
// nothing) into the Resolver.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// Memory is an in-process resolver cache with TTL expiry.
type Memory struct {
	store *gocache.Cache
}

// NewMemory constructs the in-memory cache.  Zero ttl falls back to one
// hour; zero cleanupInterval disables the background sweeper and relies on
// lazy expiry.
func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Memory{store: gocache.New(ttl, cleanupInterval)}
}

// Get returns the cached record for key.
func (m *Memory) Get(_ context.Context, key string) (chemistry.IdentityRecord, bool) {
	v, ok := m.store.Get(key)
	if !ok {
		return chemistry.IdentityRecord{}, false
	}
	record, ok := v.(chemistry.IdentityRecord)
	return record, ok
}

// Set stores record under key with the default TTL.
func (m *Memory) Set(_ context.Context, key string, record chemistry.IdentityRecord) {
	m.store.SetDefault(key, record)
}
