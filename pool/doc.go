// Package pool implements a caching writer pool for a columnar journal
// storage engine. It amortizes the cost of opening and closing
// append-only table writers while preserving a single invariant: at most
// one writer may exist for a given journal at any moment.
//
// Pool hands out exclusive Writer handles keyed by journal name. A caller
// acquires one via Writer, uses it, and returns it to the cache by calling
// Close on the handle itself — the pool installs a CloseInterceptor on
// every writer it builds so that Close is redirected back into the pool
// instead of physically destroying the writer. An externally-scheduled
// Run pass reclaims writers that have sat idle past the configured TTL.
// Lock/Unlock administratively reserve a journal name so no writer can be
// issued from it, for destructive operations like schema changes or
// drops.
package pool
