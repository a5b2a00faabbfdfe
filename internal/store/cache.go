package store

import (
	"statvalue-backend/internal/cache"
)

// Roster reads go through a cache provider; similarity and normalization
// results themselves are always recomputed per call, only the underlying
// record reads are cached.
var cacheProvider cache.Provider = cache.NewMemory()

// SetCacheProvider swaps the cache backend. A nil provider resets to the
// in-memory fallback.
func SetCacheProvider(p cache.Provider) {
	if p == nil {
		cacheProvider = cache.NewMemory()
		return
	}
	cacheProvider = p
}

func getCacheProvider() cache.Provider {
	if cacheProvider == nil {
		cacheProvider = cache.NewMemory()
	}
	return cacheProvider
}
