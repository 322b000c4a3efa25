package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"wordbrowse/internal/application"
	"wordbrowse/internal/domain"
	"wordbrowse/internal/ports"
)

const (
	schemaVersion = "1"

	// collectionKey is the single fixed identifier all words are stored under
	collectionKey = "words"
)

// Cache implements ports.WordCache using SQLite.
// The database is opened lazily on first use.
type Cache struct {
	dbPath string
	log    *slog.Logger

	mu sync.Mutex
	db *sql.DB
}

// Ensure Cache implements the cache ports
var (
	_ ports.WordCache  = (*Cache)(nil)
	_ ports.CacheAdmin = (*Cache)(nil)
)

// NewCache creates a cache backed by the SQLite file at dbPath
func NewCache(dbPath string, logger *slog.Logger) *Cache {
	return &Cache{
		dbPath: expandHome(dbPath),
		log:    logger.With("component", "cache"),
	}
}

// Path returns the database file location
func (c *Cache) Path() string {
	return c.dbPath
}

// open returns the database handle, creating file and schema on first call
func (c *Cache) open(ctx context.Context) (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	if err := os.MkdirAll(filepath.Dir(c.dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create cache directory: %w", application.ErrCacheUnavailable, err)
	}

	db, err := sql.Open("sqlite3", c.dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", application.ErrCacheUnavailable, err)
	}

	_, err = db.ExecContext(ctx, `
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS words (
			collection TEXT NOT NULL,
			position INTEGER NOT NULL,
			word TEXT NOT NULL,
			pinyin TEXT NOT NULL,
			explanation TEXT NOT NULL,
			PRIMARY KEY (collection, position)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to setup database: %w", application.ErrCacheUnavailable, err)
	}

	if _, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to update metadata: %w", application.ErrCacheUnavailable, err)
	}

	c.log.Debug("cache opened", slog.String("path", c.dbPath))
	c.db = db
	return db, nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// GetCachedWords returns the stored collection in positional order
func (c *Cache) GetCachedWords(ctx context.Context) (domain.Collection, error) {
	db, err := c.open(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT word, pinyin, explanation
		FROM words WHERE collection = ?
		ORDER BY position
	`, collectionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read words: %w", application.ErrCacheUnavailable, err)
	}
	defer rows.Close()

	words := domain.Collection{}
	for rows.Next() {
		var w domain.WordRecord
		if err := rows.Scan(&w.Word, &w.Pinyin, &w.Explanation); err != nil {
			return nil, fmt.Errorf("%w: failed to scan word: %w", application.ErrCacheUnavailable, err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrCacheUnavailable, err)
	}

	return words, nil
}

// CacheWords replaces the stored collection in a single transaction
func (c *Cache) CacheWords(ctx context.Context, words domain.Collection) error {
	db, err := c.open(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", application.ErrCacheWrite, err)
	}

	tx, err := beginReplace(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: %w", application.ErrCacheWrite, err)
	}

	if err := tx.replace(ctx, words); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %w", application.ErrCacheWrite, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit: %w", application.ErrCacheWrite, err)
	}

	c.log.Info("words cached", slog.Int("count", len(words)))
	return nil
}

// Info reports how many words are stored and when they were written
func (c *Cache) Info(ctx context.Context) (ports.CacheInfo, error) {
	db, err := c.open(ctx)
	if err != nil {
		return ports.CacheInfo{}, err
	}

	var info ports.CacheInfo
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words WHERE collection = ?`, collectionKey).Scan(&info.Count); err != nil {
		return ports.CacheInfo{}, fmt.Errorf("failed to count words: %w", err)
	}

	var updated string
	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'updated_at'`).Scan(&updated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return info, nil
	case err != nil:
		return ports.CacheInfo{}, fmt.Errorf("failed to read metadata: %w", err)
	}

	unix, err := strconv.ParseInt(updated, 10, 64)
	if err != nil {
		return ports.CacheInfo{}, fmt.Errorf("invalid updated_at %q: %w", updated, err)
	}
	info.UpdatedAt = time.Unix(unix, 0)

	return info, nil
}

// Clear removes the stored collection
func (c *Cache) Clear(ctx context.Context) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}

	tx, err := beginReplace(ctx, db)
	if err != nil {
		return err
	}
	if err := tx.clear(ctx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
