package journalstore

import (
	"database/sql"
	"sync"

	"oss.nandlabs.io/writerpool/pool"
)

// Writer is a pool.Writer backed by a single SQLite file. Append is the
// only operation beyond the pool.Writer contract; it is not part of the
// pool's protocol and callers obtain a *Writer by type-asserting the
// handle pool.Pool.Writer returns.
type Writer struct {
	name string
	db   *sql.DB

	mu sync.Mutex
	ci pool.CloseInterceptor
}

// Name implements pool.Writer.
func (w *Writer) Name() string { return w.name }

// Append inserts one record into the journal's append table.
func (w *Writer) Append(data []byte) error {
	_, err := w.db.Exec("INSERT INTO entries (data) VALUES (?)", data)
	return err
}

// SetCloseInterceptor implements pool.Writer.
func (w *Writer) SetCloseInterceptor(ci pool.CloseInterceptor) {
	w.mu.Lock()
	w.ci = ci
	w.mu.Unlock()
}

// ClearCloseInterceptor implements pool.Writer.
func (w *Writer) ClearCloseInterceptor() {
	w.mu.Lock()
	w.ci = nil
	w.mu.Unlock()
}

// Close consults the installed interceptor, if any, before physically
// closing the underlying database handle.
func (w *Writer) Close() error {
	w.mu.Lock()
	ci := w.ci
	w.mu.Unlock()
	if ci != nil && !ci.CanClose(w) {
		return nil
	}
	return w.db.Close()
}
