// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache records which scripts were converted from which content so
// that unchanged scripts are skipped on the next run. Records live in a
// SQLite database, one row per script and output kind.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store manages the conversion cache database.
type Store struct {
	db *sql.DB
}

// Entry is one cached conversion.
type Entry struct {
	Source      string
	Kind        string
	Digest      string
	Dest        string
	ConvertedAt time.Time
}

// Open opens or creates the cache database at path and creates its schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	// Conversions run in parallel; a single connection serializes writes.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS conversions (
		source TEXT NOT NULL,
		kind TEXT NOT NULL,
		digest TEXT NOT NULL,
		dest TEXT NOT NULL,
		converted_at TEXT NOT NULL,
		PRIMARY KEY (source, kind)
	)`)
	return err
}

// Digest hashes content together with the settings that shape the output.
func Digest(content []byte, settings ...string) string {
	h := sha256.New()
	for _, s := range settings {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the recorded conversion of source to kind. ok is false
// when there is none.
func (s *Store) Lookup(ctx context.Context, source, kind string) (e Entry, ok bool, err error) {
	var ts string
	err = s.db.QueryRowContext(ctx,
		`SELECT source, kind, digest, dest, converted_at FROM conversions WHERE source = ? AND kind = ?`,
		source, kind,
	).Scan(&e.Source, &e.Kind, &e.Digest, &e.Dest, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("looking up %s: %w", source, err)
	}
	e.ConvertedAt, _ = time.Parse(time.RFC3339Nano, ts)
	return e, true, nil
}

// Record stores a successful conversion, replacing any previous record.
func (s *Store) Record(ctx context.Context, source, kind, digest, dest string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source, kind, digest, dest, converted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source, kind) DO UPDATE SET
			digest = excluded.digest,
			dest = excluded.dest,
			converted_at = excluded.converted_at`,
		source, kind, digest, dest, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", source, err)
	}
	return nil
}

// Forget removes every record of source.
func (s *Store) Forget(ctx context.Context, source string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversions WHERE source = ?`, source); err != nil {
		return fmt.Errorf("forgetting %s: %w", source, err)
	}
	return nil
}

// Entries returns all records ordered by source and kind.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, kind, digest, dest, converted_at FROM conversions ORDER BY source, kind`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.Source, &e.Kind, &e.Digest, &e.Dest, &ts); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		e.ConvertedAt, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
