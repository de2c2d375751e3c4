package pool

import (
	"errors"
	"sync/atomic"
	"time"

	"oss.nandlabs.io/writerpool/errutils"
	"oss.nandlabs.io/writerpool/l3"
)

var logger = l3.Get()

// Sentinel errors returned by Pool operations. Callers should compare with
// errors.Is; ConstructionError additionally wraps the base factory's error.
var (
	// ErrPoolClosed is returned once the pool has entered its terminal
	// state. It is never transient — callers must not retry on this pool.
	ErrPoolClosed = errors.New("writerpool: pool is closed")
	// ErrWriterBusy is returned when another owner currently holds the
	// writer for the requested journal. Transient — retry after the
	// current owner releases it.
	ErrWriterBusy = errors.New("writerpool: writer is busy")
	// ErrJournalLocked is returned when the journal name has been
	// administratively locked via Lock. Retry after Unlock.
	ErrJournalLocked = errors.New("writerpool: journal is locked")
	// ErrIllegalState is returned by Unlock when the entry being
	// unlocked still has a cached writer — a programmer error, since
	// Lock always closes and clears the writer before locking.
	ErrIllegalState = errors.New("writerpool: illegal state")
)

// free is the sentinel owner value meaning "no thread currently holds the
// writer". It is never a value NextOwnerToken returns.
const free int64 = -1

var ownerSeq atomic.Int64

// NextOwnerToken returns a process-unique, monotonically increasing token
// suitable for use as the owner argument to Writer, Lock and Unlock.
//
// Go has no native thread-id the way the original protocol assumes; a
// caller that wants re-entrant acquire semantics must keep the same token
// stable for the duration of one logical operation (e.g. stash it in a
// context.Context, or reuse a per-goroutine value) and pass a fresh token
// for unrelated, independent callers.
func NextOwnerToken() int64 {
	for {
		v := ownerSeq.Add(1)
		if v != free {
			return v
		}
	}
}

// JournalMetadata carries everything the base factory needs to construct
// a writer. Name is the cache key and must be stable for a given journal.
type JournalMetadata struct {
	Name string
}

// Writer is an exclusive handle permitting appends to one journal. The
// pool requires every pooled writer to support close interception: Close
// must consult the installed CloseInterceptor (if any) before physically
// destroying the underlying resource.
type Writer interface {
	// Name returns the journal name this writer was constructed for.
	Name() string
	// Close either physically destroys the writer, or — if a
	// CloseInterceptor is installed and declines — leaves the writer
	// usable exactly as if Close had never been called.
	Close() error
	// SetCloseInterceptor installs (or replaces) the hook Close consults.
	SetCloseInterceptor(ci CloseInterceptor)
	// ClearCloseInterceptor removes any installed hook; the writer
	// reverts to closing itself unconditionally.
	ClearCloseInterceptor()
}

// WriterFactory is the storage engine's base factory: the sole
// collaborator that knows how to physically construct a writer from
// journal metadata. Out of scope for this package; specified only by
// this interface.
type WriterFactory interface {
	Construct(meta JournalMetadata) (Writer, error)
}

// CloseInterceptor is the capability the pool installs on every writer it
// builds. CanClose returns true to authorize physical destruction, false
// to suppress it and keep the writer cached.
type CloseInterceptor interface {
	CanClose(w Writer) bool
}

// Observer receives best-effort notifications of pool activity. It exists
// purely for external instrumentation (e.g. metrics) and is never
// consulted for control flow — a nil or no-op Observer changes no pool
// behavior.
type Observer interface {
	WriterAcquired(name string)
	WriterReleased(name string)
	SweepReclaimed(name string)
}

type noopObserver struct{}

func (noopObserver) WriterAcquired(string) {}
func (noopObserver) WriterReleased(string) {}
func (noopObserver) SweepReclaimed(string) {}

var constructionErrTemplate = errutils.NewCustomError("writerpool: construct %s: %v")

// ConstructionError wraps a WriterFactory failure. Every owner racing the
// same freshly-inserted entry receives a ConstructionError wrapping the
// same factory error, until the sweep garbage-collects the poisoned entry.
type ConstructionError struct {
	Name string
	Err  error
}

func (e *ConstructionError) Error() string {
	return constructionErrTemplate.Err(e.Name, e.Err).Error()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Option configures optional Pool behavior at construction time.
type Option func(*Pool)

// WithObserver attaches an Observer for acquire/release/sweep
// notifications. Passing nil is a no-op.
func WithObserver(o Observer) Option {
	return func(p *Pool) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithClock overrides the pool's notion of "now", used for computing
// idle-TTL deadlines during sweep. Intended for tests that need to
// simulate time passing without sleeping.
func WithClock(now func() time.Time) Option {
	return func(p *Pool) {
		if now != nil {
			p.now = now
		}
	}
}
