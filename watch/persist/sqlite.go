//go:build !tinygo

package persist

import (
	"database/sql"

	"github.com/juju/errors"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps persisted slots in a SQLite database on the host.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. Pass ":memory:" for
// a throwaway store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Annotate(err, "opening database")
	}
	// One connection: ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "pinging database")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "setting busy timeout")
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS persist (
		key   INTEGER PRIMARY KEY,
		value INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, errors.Annotate(err, "creating persist table")
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Exists(key Key) bool {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM persist WHERE key = ?", int64(key)).Scan(&one)
	return err == nil
}

func (s *SQLiteStore) ReadInt(key Key) (int32, error) {
	var v int64
	err := s.db.QueryRow("SELECT value FROM persist WHERE key = ?", int64(key)).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, notFound(key)
	}
	if err != nil {
		return 0, errors.Annotatef(err, "reading key %d", key)
	}
	return int32(v), nil
}

func (s *SQLiteStore) WriteInt(key Key, value int32) error {
	_, err := s.db.Exec(
		`INSERT INTO persist (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		int64(key), int64(value),
	)
	if err != nil {
		return errors.Annotatef(err, "writing key %d", key)
	}
	return nil
}
