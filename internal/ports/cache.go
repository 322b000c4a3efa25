package ports

import (
	"context"
	"time"

	"wordbrowse/internal/domain"
)

// CacheInfo describes what the cache currently holds
type CacheInfo struct {
	Count     int
	UpdatedAt time.Time // Zero if nothing was ever stored
}

// WordCache defines the interface for the local word cache
type WordCache interface {
	// GetCachedWords returns the stored collection, empty if nothing is stored.
	// Errors match application.ErrCacheUnavailable when storage cannot be opened.
	GetCachedWords(ctx context.Context) (domain.Collection, error)

	// CacheWords replaces the stored collection
	CacheWords(ctx context.Context, words domain.Collection) error
}

// CacheAdmin exposes maintenance operations on the cache
type CacheAdmin interface {
	Info(ctx context.Context) (CacheInfo, error)
	Clear(ctx context.Context) error
}
