package cache

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
)

// SQLiteStore is the opt-in grammar cache backend (chosen when the --cache
// path ends in .db or .sqlite):
// cache rows keyed by fingerprint in a modernc.org/sqlite database,
// grounded on server/dao/sqlite's connection-management and
// schema-migration-on-open conventions.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite database at path and
// ensures the grammar_cache table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapSQLiteErr(err)
	}

	st := &SQLiteStore{db: db}
	if err := st.init(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS grammar_cache (
		fingerprint TEXT NOT NULL PRIMARY KEY,
		table_blob BLOB NOT NULL,
		created_at INTEGER NOT NULL
	);`)
	return wrapSQLiteErr(err)
}

func (s *SQLiteStore) Get(fingerprint uint64) ([]byte, bool, error) {
	row := s.db.QueryRow(`SELECT table_blob FROM grammar_cache WHERE fingerprint = ?`, fingerprintKey(fingerprint))

	var blob []byte
	err := row.Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapSQLiteErr(err)
	}
	return blob, true, nil
}

func (s *SQLiteStore) Put(fingerprint uint64, blob []byte) error {
	_, err := s.db.Exec(`INSERT INTO grammar_cache (fingerprint, table_blob, created_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT(fingerprint) DO UPDATE SET table_blob = excluded.table_blob, created_at = excluded.created_at`,
		fingerprintKey(fingerprint), blob)
	if err != nil {
		// best-effort per §5: a write failure just skips caching.
		return nil
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func fingerprintKey(fingerprint uint64) string {
	return fmt.Sprintf("%016x", fingerprint)
}

func wrapSQLiteErr(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("sqlite: %s", sqlite.ErrorCodeString[sqliteErr.Code()])
	}
	return err
}
