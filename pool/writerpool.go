package pool

import (
	"sync/atomic"
	"time"
)

// Pool is a caching pool of exclusive journal writers. At most one
// writer may exist for a given journal name at any moment; see the
// package doc for the full protocol.
//
// Every public method is non-blocking: it performs only atomic
// operations and short-lived entryTable access, never waiting on another
// goroutine. The one exception is a fresh acquire, which calls into the
// WriterFactory and may block on whatever I/O that factory performs.
type Pool struct {
	factory  WriterFactory
	ttl      time.Duration
	table    entryTable
	closed   atomic.Bool
	now      func() time.Time
	observer Observer
}

// NewPool creates a Pool that builds writers via factory and reclaims
// idle ones after ttl of inactivity. The pool does nothing on its own to
// reclaim entries — Run must be invoked periodically by an external
// scheduler (see the chrono-based wiring in cmd/writerpoold).
func NewPool(factory WriterFactory, ttl time.Duration, opts ...Option) *Pool {
	p := &Pool{
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Writer returns the exclusive writer for the journal described by meta,
// constructing one via the factory if this is the first reference to its
// name. owner identifies the logical caller; see NextOwnerToken.
func (p *Pool) Writer(owner int64, meta JournalMetadata) (Writer, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}
	name := meta.Name

	e, loaded := p.table.loadOrStore(name, newEntry(owner))
	if !loaded {
		return p.construct(e, owner, meta)
	}

	if e.owner.CompareAndSwap(free, owner) {
		return p.onAcquired(e, owner, name)
	}

	// A poisoned entry re-reports its failure even while another racer
	// briefly holds it, rather than turning this caller away as busy.
	if be := e.buildErr.Load(); be != nil {
		return nil, &ConstructionError{Name: name, Err: be.err}
	}

	cur := e.owner.Load()
	if cur != owner {
		logger.DebugF("writer %q busy, held by %d", name, cur)
		return nil, ErrWriterBusy
	}

	// Re-entrant acquire: the same owner already holds (or is building)
	// this entry.
	if be := e.buildErr.Load(); be != nil {
		return nil, &ConstructionError{Name: name, Err: be.err}
	}
	if e.locked.Load() {
		return nil, ErrJournalLocked
	}
	slot := e.writer.Load()
	if slot == nil {
		// Re-entrant call racing the creator's own construction; the
		// caller must retry once construction completes.
		return nil, ErrWriterBusy
	}
	if p.closed.Load() {
		slot.w.ClearCloseInterceptor()
	}
	return slot.w, nil
}

// construct runs on the thread that won the insert-if-absent race for a
// brand-new entry. The entry is already owned by owner (no CAS needed).
func (p *Pool) construct(e *entry, owner int64, meta JournalMetadata) (Writer, error) {
	name := meta.Name
	w, err := p.factory.Construct(meta)
	if err != nil {
		e.buildErr.Store(&buildError{err: err})
		// There is no writer to hold, so release the entry back to
		// FREE: every other racer (and any later retry) must be able
		// to observe and re-report the same failure deterministically,
		// which requires being able to claim the entry via the normal
		// CAS path rather than being turned away with WriterBusy.
		e.owner.Store(free)
		logger.ErrorF("construct writer %q: %v", name, err)
		return nil, &ConstructionError{Name: name, Err: err}
	}
	w.SetCloseInterceptor(&ownerInterceptor{pool: p, owner: owner})
	e.writer.Store(&writerSlot{w: w})

	if p.closed.Load() {
		w.ClearCloseInterceptor()
	}
	p.observer.WriterAcquired(name)
	return w, nil
}

// onAcquired runs after a successful CAS FREE->owner against an existing
// entry (a cache hit, or a formerly poisoned entry being retried).
func (p *Pool) onAcquired(e *entry, owner int64, name string) (Writer, error) {
	if be := e.buildErr.Load(); be != nil {
		// Poisoned entry: re-report the same failure and release it
		// back to FREE so the next racer (or retry) observes it too.
		e.owner.Store(free)
		return nil, &ConstructionError{Name: name, Err: be.err}
	}
	if e.locked.Load() {
		e.owner.CompareAndSwap(owner, free)
		return nil, ErrJournalLocked
	}
	if p.closed.Load() {
		if slot := e.writer.Load(); slot != nil {
			slot.w.ClearCloseInterceptor()
		}
		p.observer.WriterAcquired(name)
		return e.writer.Load().w, nil
	}
	slot := e.writer.Load()
	slot.w.SetCloseInterceptor(&ownerInterceptor{pool: p, owner: owner})
	p.observer.WriterAcquired(name)
	return slot.w, nil
}

// Lock administratively reserves name so no writer can be issued from it.
// If a writer is currently cached for name, it is closed immediately.
// Ownership is released back to FREE once the lock is applied, so that
// any other acquirer's CAS succeeds and observes locked rather than
// being turned away with WriterBusy indefinitely; lockHolder instead
// records which owner is entitled to call Unlock. An entry already
// locked by a different owner refuses with ErrWriterBusy rather than
// letting the new caller overwrite lockHolder.
func (p *Pool) Lock(owner int64, name string) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	e, loaded := p.table.loadOrStore(name, newEntry(owner))
	if loaded {
		if e.locked.Load() && e.lockHolder.Load() != owner {
			return ErrWriterBusy
		}
		if !e.owner.CompareAndSwap(free, owner) && e.owner.Load() != owner {
			return ErrWriterBusy
		}
	}
	if slot := e.writer.Swap(nil); slot != nil {
		slot.w.ClearCloseInterceptor()
		if err := slot.w.Close(); err != nil {
			logger.ErrorF("close writer %q while locking: %v", name, err)
		}
	}
	e.locked.Store(true)
	e.lockHolder.Store(owner)
	e.owner.Store(free)
	return nil
}

// Unlock releases a name locked by the same owner's prior Lock call. It
// is a no-op if no entry exists, or if owner is not the recorded lock
// holder — both treated as defensive, not erroneous, per the protocol.
func (p *Pool) Unlock(owner int64, name string) error {
	e, ok := p.table.lookup(name)
	if !ok {
		return nil
	}
	if e.lockHolder.Load() != owner {
		return nil
	}
	if e.writer.Load() != nil {
		return ErrIllegalState
	}
	p.table.remove(name)
	return nil
}

// Run performs a single sweep pass, reclaiming idle writers whose last
// release is older than the pool's TTL, and garbage-collecting entries
// poisoned by a construction failure. It is meant to be invoked
// periodically by an external scheduler. didWork reports whether any
// entry was removed, as a hint the caller may use to schedule sooner.
func (p *Pool) Run() bool {
	return p.sweep(false)
}

// Close transitions the pool into its terminal state. No further Writer
// calls succeed. Every idle (FREE) writer is reclaimed immediately;
// writers currently held by other owners are reclaimed lazily, the next
// time their owner calls Close on the writer handle — see canClose.
func (p *Pool) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	logger.Info("pool closing: reclaiming idle writers")
	p.sweep(true)
	return nil
}

// Size returns the number of journal names currently tracked.
func (p *Pool) Size() int {
	return p.table.size()
}

// CountFreeWriters returns the number of cached writers currently idle
// (owner == FREE).
func (p *Pool) CountFreeWriters() int {
	return p.table.countFree()
}

// sweep is shared by Run and Close. force bypasses the TTL comparison
// (Close wants every idle entry reclaimed regardless of how recently it
// was released).
func (p *Pool) sweep(force bool) bool {
	deadline := p.now().Add(-p.ttl)
	didWork := false

	p.table.rangeEach(func(name string, e *entry) bool {
		if e.locked.Load() {
			return true
		}
		last := time.Unix(0, e.lastRelease.Load())
		if force || last.Before(deadline) {
			if e.owner.CompareAndSwap(free, sweepOwner) {
				if slot := e.writer.Swap(nil); slot != nil {
					slot.w.ClearCloseInterceptor()
					if err := slot.w.Close(); err != nil {
						logger.ErrorF("sweep close %q: %v", name, err)
					}
				}
				p.table.remove(name)
				e.owner.Store(free)
				p.observer.SweepReclaimed(name)
				didWork = true
				return true
			}
		}
		// Backstop: a poisoned entry's zero-value lastRelease already
		// satisfies the TTL branch above on the very first sweep, but
		// this covers it regardless of ordering against that check.
		if e.buildErr.Load() != nil {
			p.table.remove(name)
			didWork = true
		}
		return true
	})

	return didWork
}

// sweepOwner is the token the sweep job uses to claim an entry while
// reclaiming it. It is never returned by NextOwnerToken and is only ever
// observable transiently, between the reclaim CAS and the subsequent
// release back to FREE.
const sweepOwner int64 = -2

// ownerInterceptor is the CloseInterceptor the pool installs on every
// writer it hands out. It is bound to the owner that acquired the writer,
// since Go has no ambient thread identity for CanClose to consult.
type ownerInterceptor struct {
	pool  *Pool
	owner int64
}

func (oi *ownerInterceptor) CanClose(w Writer) bool {
	return oi.pool.canClose(w, oi.owner)
}

// canClose implements the release protocol: a normal release re-arms the
// entry for caching, while a release racing pool shutdown decides, via a
// second CAS, which of {this releasing owner, the shutdown sweep} gets
// to be the one thread that physically destroys the writer.
func (p *Pool) canClose(w Writer, owner int64) bool {
	name := w.Name()
	e, ok := p.table.lookup(name)
	if !ok {
		// Not (or no longer) tracked by this pool; let the writer close
		// itself normally.
		return true
	}

	if !e.owner.CompareAndSwap(owner, free) {
		logger.WarnF("close of %q from non-owner %d", name, owner)
		return false
	}

	if !p.closed.Load() {
		e.lastRelease.Store(p.now().UnixNano())
		p.observer.WriterReleased(name)
		return false
	}

	// Pool closed: two-phase dance. Try to reclaim immediately.
	if e.owner.CompareAndSwap(free, owner) {
		e.writer.Store(nil)
		p.table.remove(name)
		p.observer.SweepReclaimed(name)
		return true
	}
	// Lost the race to the shutdown sweep (or another releaser); let
	// whichever thread won perform the physical close.
	return false
}
