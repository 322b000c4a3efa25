package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultSourceURL is the published chinese-xinhua word list
const DefaultSourceURL = "https://raw.githubusercontent.com/pwxcoo/chinese-xinhua/master/data/word.json"

// Config is the root application configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	Lookup LookupConfig `yaml:"lookup"`
}

// SourceConfig holds remote word list settings.
type SourceConfig struct {
	URL         string        `yaml:"url"          env:"WORDBROWSE_SOURCE_URL"           env-default:"https://raw.githubusercontent.com/pwxcoo/chinese-xinhua/master/data/word.json"`
	AssumedSize int64         `yaml:"assumed_size" env:"WORDBROWSE_SOURCE_ASSUMED_SIZE" env-default:"27354320"`
	Timeout     time.Duration `yaml:"timeout"      env:"WORDBROWSE_SOURCE_TIMEOUT"      env-default:"5m"`
}

// CacheConfig holds local cache settings.
type CacheConfig struct {
	// Path of the SQLite file; empty means DefaultCachePath().
	Path string `yaml:"path" env:"WORDBROWSE_CACHE_PATH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORDBROWSE_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WORDBROWSE_LOG_FORMAT" env-default:"text"`
	// File receives TUI logs; empty means DefaultLogPath().
	File string `yaml:"file" env:"WORDBROWSE_LOG_FILE"`
}

// LookupConfig holds the online dictionary used by the TUI lookup key.
type LookupConfig struct {
	// URL template; {word} is replaced by the escaped word.
	URL string `yaml:"url" env:"WORDBROWSE_LOOKUP_URL" env-default:"https://www.zdic.net/hans/{word}"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file is path if non-empty, else
// WORDBROWSE_CONFIG, else DefaultConfigPath(); only an explicitly named file
// must exist.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = os.Getenv("WORDBROWSE_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultConfigPath()
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath()
	}
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.URL)
	if err != nil {
		return fmt.Errorf("source.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("source.url must be http or https (got %q)", c.Source.URL)
	}
	if c.Source.AssumedSize <= 0 {
		return fmt.Errorf("source.assumed_size must be > 0 (got %d)", c.Source.AssumedSize)
	}
	if c.Source.Timeout <= 0 {
		return errors.New("source.timeout must be > 0")
	}

	if !strings.Contains(c.Lookup.URL, "{word}") {
		return fmt.Errorf("lookup.url must contain {word} (got %q)", c.Lookup.URL)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}

	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/wordbrowse/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "wordbrowse", "config.yaml")
}

// DefaultCachePath returns $XDG_DATA_HOME/wordbrowse/words.db
func DefaultCachePath() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "wordbrowse", "words.db")
}

// DefaultLogPath returns $XDG_STATE_HOME/wordbrowse/wordbrowse.log
func DefaultLogPath() string {
	return filepath.Join(xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state")), "wordbrowse", "wordbrowse.log")
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, fallback)
}
