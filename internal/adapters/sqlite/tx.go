package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"wordbrowse/internal/domain"
)

// replaceTx wraps a transaction that rewrites the stored collection
type replaceTx struct {
	tx *sql.Tx
}

func beginReplace(ctx context.Context, db *sql.DB) (*replaceTx, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &replaceTx{tx: tx}, nil
}

// replace deletes the previous collection and inserts words in order
func (t *replaceTx) replace(ctx context.Context, words domain.Collection) error {
	if err := t.clear(ctx); err != nil {
		return err
	}

	stmt, err := t.tx.PrepareContext(ctx, `
		INSERT INTO words (collection, position, word, pinyin, explanation)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, w := range words {
		if _, err := stmt.ExecContext(ctx, collectionKey, i, w.Word, w.Pinyin, w.Explanation); err != nil {
			return fmt.Errorf("failed to insert word %d: %w", i, err)
		}
	}

	return t.touch(ctx)
}

// clear removes every word of the collection
func (t *replaceTx) clear(ctx context.Context) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM words WHERE collection = ?`, collectionKey); err != nil {
		return fmt.Errorf("failed to delete words: %w", err)
	}
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM meta WHERE key = 'updated_at'`); err != nil {
		return fmt.Errorf("failed to reset metadata: %w", err)
	}
	return nil
}

// touch records the write time
func (t *replaceTx) touch(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('updated_at', ?)`,
		strconv.FormatInt(time.Now().Unix(), 10))
	if err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}
	return nil
}

// Commit commits the transaction
func (t *replaceTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *replaceTx) Rollback() error {
	return t.tx.Rollback()
}
