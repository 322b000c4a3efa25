package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordbrowse/internal/application"
	"wordbrowse/internal/config"
	"wordbrowse/internal/domain"
)

func TestServices_LoadThenServeFromCache(t *testing.T) {
	words := domain.Collection{{Word: "爱", Pinyin: "ài", Explanation: "love"}}
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(words)
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Source: config.SourceConfig{URL: srv.URL, AssumedSize: 1024, Timeout: 5 * time.Second},
		Cache:  config.CacheConfig{Path: filepath.Join(t.TempDir(), "words.db")},
	}
	logger := slog.New(slog.DiscardHandler)
	ctx := context.Background()

	svc := NewServices(cfg, logger)
	res, err := svc.Provider.Load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, application.OriginRemote, res.Origin)
	require.NoError(t, <-res.CacheWrite)
	require.NoError(t, svc.Close())

	// A fresh process reads the cache without touching the network
	svc = NewServices(cfg, logger)
	t.Cleanup(func() { _ = svc.Close() })
	res, err = svc.Provider.Load(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, application.OriginCache, res.Origin)
	assert.Equal(t, words, res.Words)
	assert.Equal(t, 1, hits)
}
