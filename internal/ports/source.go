package ports

import (
	"context"

	"wordbrowse/internal/domain"
)

// ProgressFunc receives load progress updates
type ProgressFunc func(domain.LoadProgress)

// WordSource defines the interface for fetching the full collection remotely
type WordSource interface {
	// FetchWords downloads and parses the whole collection, reporting progress
	// after every chunk. Errors match application.ErrNetwork or application.ErrParse.
	FetchWords(ctx context.Context, onProgress ProgressFunc) (domain.Collection, error)
}
