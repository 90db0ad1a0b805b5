package polyglot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const cacheSchema = `CREATE TABLE IF NOT EXISTS translations (
	source_lang TEXT NOT NULL,
	dest_lang   TEXT NOT NULL,
	text        TEXT NOT NULL,
	result      TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	PRIMARY KEY (source_lang, dest_lang, text)
)`

// Cache is a persistent translation memory backed by SQLite.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(ctx context.Context, path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	// one writer; the CLI never shares the handle across goroutines
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Lookup returns the cached translation of text, if any.
func (c *Cache) Lookup(ctx context.Context, text, from, to string) (string, bool, error) {
	var result string
	err := c.db.QueryRowContext(ctx,
		`SELECT result FROM translations WHERE source_lang = ? AND dest_lang = ? AND text = ?`,
		from, to, text,
	).Scan(&result)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}
	return result, true, nil
}

// Store records a translation, replacing any previous entry.
func (c *Cache) Store(ctx context.Context, text, from, to, result string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO translations (source_lang, dest_lang, text, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		from, to, text, result, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Len returns the number of cached translations.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Wrap returns a Translator that consults the cache before calling next.
func (c *Cache) Wrap(next Translator) Translator {
	return &cachedTranslator{cache: c, next: next}
}

type cachedTranslator struct {
	cache *Cache
	next  Translator
}

func (t *cachedTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if hit, ok, err := t.cache.Lookup(ctx, text, from, to); err != nil {
		return "", err
	} else if ok {
		return hit, nil
	}
	out, err := t.next.Translate(ctx, text, from, to)
	if err != nil {
		return "", err
	}
	if err := t.cache.Store(ctx, text, from, to, out); err != nil {
		return "", err
	}
	return out, nil
}
