package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Store backed by a single-file sqlite database, so cached
// transcripts survive process restarts.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLite(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		path = "vidquiz.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	store := &SQLite{db: db, now: time.Now}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	expires_at_unix INTEGER NOT NULL DEFAULT 0
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: init schema: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var (
		value     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT value, expires_at_unix FROM kv_entries WHERE key = ?`,
		key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %q: %v", ErrUnavailable, key, err)
	}

	if expiresAt > 0 && s.now().Unix() >= expiresAt {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key)
		return "", ErrNotFound
	}
	return value, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).Unix()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO kv_entries (key, value, expires_at_unix) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at_unix = excluded.expires_at_unix`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("%w: write %q: %v", ErrUnavailable, key, err)
	}

	// Opportunistic cleanup keeps the file from accumulating dead keys.
	_, _ = s.db.ExecContext(
		ctx,
		`DELETE FROM kv_entries WHERE expires_at_unix > 0 AND expires_at_unix <= ?`,
		s.now().Unix(),
	)
	return nil
}
