package pool

import "sync/atomic"

// writerSlot is the boxed value stored in entry.writer so the atomic
// pointer can represent "absent" as nil without colliding with a valid
// zero-value Writer.
type writerSlot struct {
	w Writer
}

// buildError boxes a construction failure so entry.buildErr can represent
// "no error recorded" as a nil pointer.
type buildError struct {
	err error
}

// entry is one per-journal slot tracked by the pool. owner is the sole
// synchronizer for CAS-based exclusive acquire/release: writer and
// locked are written only by the current owner (or by the creator
// before the entry is published), lastRelease is written only at the
// instant of release and read lock-free by the sweep, and buildErr is
// written once by the creator and read by subsequent acquirers —
// release/acquire visibility for all of these comes from the underlying
// atomic types.
//
// lockHolder is distinct from owner: Lock releases owner back to FREE
// once it has evicted any cached writer and set locked, so that any
// other acquirer's CAS succeeds and observes locked rather than failing
// with WriterBusy forever. lockHolder instead records which owner token
// is entitled to call Unlock.
type entry struct {
	owner       atomic.Int64
	writer      atomic.Pointer[writerSlot]
	lastRelease atomic.Int64
	locked      atomic.Bool
	lockHolder  atomic.Int64
	buildErr    atomic.Pointer[buildError]
}

// newEntry constructs an entry already owned by owner, per the lifecycle
// rule that the thread which first references a name owns the fresh
// entry immediately, without a separate CAS.
func newEntry(owner int64) *entry {
	e := &entry{}
	e.owner.Store(owner)
	return e
}
