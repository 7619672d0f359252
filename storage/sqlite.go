package storage

import (
	"database/sql"
	"sync/atomic"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/glow/logger"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists the record in a single-table SQLite database. Like
// flash NVS it reads the stored value first and only writes and commits when
// it changed.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	writes atomic.Uint64
}

// NewSQLiteStore opens (or creates) the database at path and runs the schema migration.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	// a single connection keeps read-compare-write transactions serialised
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.WithStackTrace(err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, errors.WithStackTrace(err)
	}

	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"path": path}).Debug("Opened record store")

	return &SQLiteStore{db: db, path: path}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)
	`)
	return err
}

func (s *SQLiteStore) GetRecord() (Record, error) {
	r, _, err := readRecord(s.db)
	return r, err
}

func (s *SQLiteStore) SetRecord(r Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.WithStackTrace(err)
	}
	defer tx.Rollback()

	old, _, err := readRecord(tx)
	if err != nil {
		return err
	}
	if old == r {
		return nil
	}

	_, err = tx.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		RecordKey, int64(r.Uint16()),
	)
	if err != nil {
		return errors.WithStackTrace(err)
	}
	if err := tx.Commit(); err != nil {
		return errors.WithStackTrace(err)
	}
	s.writes.Add(1)

	logger := logger.GetProjectLogger()
	logger.Infof("values set to: %s", r)
	return nil
}

// Writes returns how many records were committed through this store.
func (s *SQLiteStore) Writes() uint64 {
	return s.writes.Load()
}

// Path returns the database file the store was opened on.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type queryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

// readRecord returns the stored record and whether one was found.
func readRecord(q queryRower) (Record, bool, error) {
	var value int64
	err := q.QueryRow("SELECT value FROM kv WHERE key = ?", RecordKey).Scan(&value)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, errors.WithStackTrace(err)
	}
	if value < 0 || value > 0xFFFF {
		return Record{}, false, errors.WithStackTrace(CorruptRecord{Key: RecordKey, Value: value})
	}
	return RecordFromUint16(uint16(value)), true, nil
}
