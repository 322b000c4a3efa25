package app

import (
	"log/slog"

	"wordbrowse/internal/adapters/lookup"
	"wordbrowse/internal/adapters/remote"
	"wordbrowse/internal/adapters/sqlite"
	"wordbrowse/internal/application"
	"wordbrowse/internal/config"
)

// Services holds the wired components shared by every binary
type Services struct {
	Cache    *sqlite.Cache
	Fetcher  *remote.Fetcher
	Provider *application.WordProvider
	Lookup   *lookup.Opener
}

// NewServices wires the cache, the remote source and the provider
func NewServices(cfg *config.Config, logger *slog.Logger) *Services {
	cache := sqlite.NewCache(cfg.Cache.Path, logger)
	fetcher := remote.NewFetcher(cfg.Source.URL, cfg.Source.AssumedSize, cfg.Source.Timeout, logger)
	return &Services{
		Cache:    cache,
		Fetcher:  fetcher,
		Provider: application.NewWordProvider(cache, fetcher, logger),
		Lookup:   lookup.NewOpener(cfg.Lookup.URL),
	}
}

// Close releases the cache database
func (s *Services) Close() error {
	return s.Cache.Close()
}
