package pool

import "sync"

// entryTable is a concurrent mapping of journal name to entry. It is a
// thin typed wrapper around sync.Map, which already provides exactly the
// primitives the pool needs: lock-free lookup, an atomic insert-if-absent
// via LoadOrStore, and weakly-consistent iteration that tolerates
// concurrent insert/remove (including removal mid-Range).
type entryTable struct {
	m sync.Map
}

// lookup returns the entry for name, if any.
func (t *entryTable) lookup(name string) (*entry, bool) {
	v, ok := t.m.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}

// loadOrStore atomically installs e if no entry exists for name yet.
// loaded reports whether an existing entry was found instead — the
// caller "won the race" when loaded is false.
func (t *entryTable) loadOrStore(name string, e *entry) (actual *entry, loaded bool) {
	v, loaded := t.m.LoadOrStore(name, e)
	return v.(*entry), loaded
}

// remove deletes the entry for name, if any.
func (t *entryTable) remove(name string) {
	t.m.Delete(name)
}

// rangeEach calls f for every (name, entry) pair currently tracked. f may
// return false to stop early. Safe to call concurrently with insert and
// remove, including removal of the entry currently being visited.
func (t *entryTable) rangeEach(f func(name string, e *entry) bool) {
	t.m.Range(func(k, v any) bool {
		return f(k.(string), v.(*entry))
	})
}

// size returns the number of tracked entries.
func (t *entryTable) size() int {
	n := 0
	t.rangeEach(func(string, *entry) bool {
		n++
		return true
	})
	return n
}

// countFree returns the number of entries whose owner is FREE.
func (t *entryTable) countFree() int {
	n := 0
	t.rangeEach(func(_ string, e *entry) bool {
		if e.owner.Load() == free {
			n++
		}
		return true
	})
	return n
}
