package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/mchmarny/modelscore/pkg/metric"
)

const (
	// DataFileName is the default database file name inside the app home dir.
	DataFileName = "ratings.db"

	// DefaultMaxAge is how long a cached rating stays fresh.
	DefaultMaxAge = 24 * time.Hour

	insertRatingSQL = `INSERT INTO rating (
			url,
			name,
			category,
			data,
			created_at
		)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			name = ?,
			category = ?,
			data = ?,
			created_at = ?
	`

	selectRatingSQL = `SELECT data, created_at FROM rating WHERE url = ?`
)

//go:embed sql/*
var f embed.FS

// Store is a local rating cache backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the rating database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path not specified")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening database: %s", path)
	}

	b, err := f.ReadFile("sql/ddl.sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the schema creation file")
	}
	if _, err := db.Exec(string(b)); err != nil {
		return nil, errors.Wrapf(err, "failed to create database schema in: %s", path)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save upserts the rating for a URL.
func (s *Store) Save(url string, r *metric.Rating) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialized")
	}
	if url == "" || r == nil {
		return errors.New("url and rating required")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "failed to serialize rating")
	}

	now := time.Now().UTC().Unix()
	_, err = s.db.Exec(insertRatingSQL,
		url, r.Name, r.Category, string(data), now,
		r.Name, r.Category, string(data), now)
	if err != nil {
		return errors.Wrapf(err, "failed to save rating for: %s", url)
	}
	return nil
}

// GetFresh returns the cached rating for a URL if one exists and is
// younger than maxAge. A miss or stale entry returns nil, nil.
func (s *Store) GetFresh(url string, maxAge time.Duration) (*metric.Rating, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store not initialized")
	}

	var data string
	var createdAt int64
	err := s.db.QueryRow(selectRatingSQL, url).Scan(&data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query rating for: %s", url)
	}

	if time.Since(time.Unix(createdAt, 0)) > maxAge {
		slog.Debug("cached rating stale", "url", url)
		return nil, nil
	}

	var r metric.Rating
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, errors.Wrapf(err, "failed to parse cached rating for: %s", url)
	}
	return &r, nil
}
