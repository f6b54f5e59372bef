package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lingolabs/phraseo/pkg/phraseo/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// createdAtLayout is RFC 3339 with fixed-width nanoseconds. RFC3339Nano
// trims trailing zeros, which breaks the lexicographic ordering the
// created_at column is sorted by ("..00Z" compares above "..00.5Z").
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS phrases (
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	cost REAL NOT NULL,
	PRIMARY KEY(source, target)
);

CREATE INDEX IF NOT EXISTS idx_phrases_source ON phrases(source);

CREATE TABLE IF NOT EXISTS translations (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	output TEXT NOT NULL,
	cost REAL NOT NULL,
	beam_width INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertPhrase inserts or replaces a phrase pair.
func (s *sqliteStore) UpsertPhrase(ctx context.Context, p store.Phrase) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO phrases(source, target, cost) VALUES(?, ?, ?)
		ON CONFLICT(source, target) DO UPDATE SET cost = excluded.cost`,
		p.Source, p.Target, p.Cost)
	return err
}

// AllPhrases returns every stored phrase pair.
func (s *sqliteStore) AllPhrases(ctx context.Context) ([]store.Phrase, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, target, cost FROM phrases ORDER BY source, cost`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPhrases(rows)
}

// PhrasesForSource returns the pairs for one exact source phrase, cheapest
// first.
func (s *sqliteStore) PhrasesForSource(ctx context.Context, source string) ([]store.Phrase, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, target, cost FROM phrases WHERE source = ? ORDER BY cost`, source)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPhrases(rows)
}

func scanPhrases(rows *sql.Rows) ([]store.Phrase, error) {
	var out []store.Phrase
	for rows.Next() {
		var p store.Phrase
		if err := rows.Scan(&p.Source, &p.Target, &p.Cost); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveTranslation appends a completed decode to the history.
func (s *sqliteStore) SaveTranslation(ctx context.Context, tr store.Translation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO translations(id, source, output, cost, beam_width, created_at)
		VALUES(?, ?, ?, ?, ?, ?)`,
		tr.ID, tr.Source, tr.Output, tr.Cost, tr.BeamWidth, tr.CreatedAt.UTC().Format(createdAtLayout))
	return err
}

// RecentTranslations returns the newest translations first.
func (s *sqliteStore) RecentTranslations(ctx context.Context, limit int) ([]store.Translation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, output, cost, beam_width, created_at
		FROM translations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Translation
	for rows.Next() {
		var tr store.Translation
		var created string
		if err := rows.Scan(&tr.ID, &tr.Source, &tr.Output, &tr.Cost, &tr.BeamWidth, &created); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, err
		}
		tr.CreatedAt = ts
		out = append(out, tr)
	}
	return out, rows.Err()
}
