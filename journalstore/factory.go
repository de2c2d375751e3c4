package journalstore

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"

	"oss.nandlabs.io/writerpool/l3"
	"oss.nandlabs.io/writerpool/pool"
)

var logger = l3.Get()

// Factory constructs journal writers backed by one SQLite file per
// journal name, rooted under Dir. It implements pool.WriterFactory.
type Factory struct {
	Dir string
}

// Construct opens (creating if absent) the SQLite file for meta.Name and
// ensures its append table exists.
func (f *Factory) Construct(meta pool.JournalMetadata) (pool.Writer, error) {
	path := filepath.Join(f.Dir, meta.Name+".db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL for %s: %w", path, err)
	}
	const createTable = `
CREATE TABLE IF NOT EXISTS entries (
	seq   INTEGER PRIMARY KEY AUTOINCREMENT,
	data  BLOB NOT NULL
)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table in %s: %w", path, err)
	}
	logger.DebugF("journalstore: opened %s", path)
	return &Writer{name: meta.Name, db: db}, nil
}
