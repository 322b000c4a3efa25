package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory into a temp dir so no real config is read
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("WORDBROWSE_CONFIG", "")
	return dir
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.EqualValues(t, 27354320, cfg.Source.AssumedSize)
	assert.Equal(t, 5*time.Minute, cfg.Source.Timeout)
	assert.Equal(t, filepath.Join(dir, "data", "wordbrowse", "words.db"), cfg.Cache.Path)
	assert.Equal(t, filepath.Join(dir, "state", "wordbrowse", "wordbrowse.log"), cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "https://www.zdic.net/hans/{word}", cfg.Lookup.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WORDBROWSE_SOURCE_URL", "http://localhost:8080/words.json")
	t.Setenv("WORDBROWSE_SOURCE_ASSUMED_SIZE", "200")
	t.Setenv("WORDBROWSE_CACHE_PATH", "/tmp/custom.db")
	t.Setenv("WORDBROWSE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/words.json", cfg.Source.URL)
	assert.EqualValues(t, 200, cfg.Source.AssumedSize)
	assert.Equal(t, "/tmp/custom.db", cfg.Cache.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := isolate(t)
	path := writeYAML(t, dir, `
source:
  url: "https://example.com/word.json"
  timeout: "30s"
cache:
  path: "/var/cache/wordbrowse.db"
log:
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/word.json", cfg.Source.URL)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.EqualValues(t, 27354320, cfg.Source.AssumedSize)
	assert.Equal(t, "/var/cache/wordbrowse.db", cfg.Cache.Path)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigEnvPointsToFile(t *testing.T) {
	dir := isolate(t)
	path := writeYAML(t, dir, "log:\n  level: \"warn\"\n")
	t.Setenv("WORDBROWSE_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Source: SourceConfig{URL: DefaultSourceURL, AssumedSize: 1, Timeout: time.Second},
			Log:    LogConfig{Level: "info", Format: "text"},
			Lookup: LookupConfig{URL: "https://example.com/{word}"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "ftp url", mutate: func(c *Config) { c.Source.URL = "ftp://example.com/w.json" }, wantErr: true},
		{name: "relative url", mutate: func(c *Config) { c.Source.URL = "/explore-in-words/word.json" }, wantErr: true},
		{name: "zero size", mutate: func(c *Config) { c.Source.AssumedSize = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Source.Timeout = 0 }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: true},
		{name: "upper level", mutate: func(c *Config) { c.Log.Level = "WARN" }},
		{name: "lookup without placeholder", mutate: func(c *Config) { c.Lookup.URL = "https://example.com/" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
