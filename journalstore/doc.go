// Package journalstore is a concrete, file-backed implementation of
// pool.WriterFactory and pool.Writer, giving the pool's external
// collaborator interfaces a real storage engine to exercise instead of
// an in-memory fake. Each journal name maps to its own SQLite database
// file under a base directory, opened via the pure-Go modernc.org/sqlite
// driver so the module carries no cgo dependency.
package journalstore
