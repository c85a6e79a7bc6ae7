package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
)

// LookupFunc resolves a query into a result. The context is cancelled
// when the lookup is superseded by a newer query.
type LookupFunc func(ctx context.Context, query string) (domain.Result, error)

// DeliverFunc receives the outcome of the winning lookup. Deliveries
// are serialized: the func is never called concurrently with itself, a
// query superseded before its delivery starts is never delivered, and a
// newer query's delivery always completes after any older one.
type DeliverFunc func(query string, result domain.Result, err error)

// Session serializes a stream of keystroked queries into lookups with a
// last-query-wins contract: submitting a new query debounces, cancels
// the in-flight lookup of the previous one, and discards its result if
// it still arrives. Current query and generation are the session's only
// state and the mutex is their single owner.
type Session struct {
	ID uuid.UUID

	lookup   LookupFunc
	deliver  DeliverFunc
	debounce time.Duration

	mu      sync.Mutex
	gen     uint64
	current string
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool

	// deliverMu serializes deliveries. It is held across the staleness
	// re-check and the deliver call, so a delivery for a superseded
	// query can never start after, or interleave with, a newer one.
	deliverMu sync.Mutex
}

// New creates a session. A zero debounce submits immediately.
func New(lookup LookupFunc, deliver DeliverFunc, debounce time.Duration) *Session {
	return &Session{
		ID:       uuid.New(),
		lookup:   lookup,
		deliver:  deliver,
		debounce: debounce,
	}
}

// Submit registers the latest query. Any pending debounce timer and any
// in-flight lookup for an older query are cancelled.
func (s *Session) Submit(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.gen++
	gen := s.gen
	s.current = query

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if s.debounce <= 0 {
		ctx := s.armLocked()
		go s.run(ctx, gen, query)
		return
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.fire(gen, query)
	})
}

// Current returns the most recently submitted query.
func (s *Session) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close cancels any pending or in-flight work. Submit becomes a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) fire(gen uint64, query string) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx := s.armLocked()
	s.mu.Unlock()

	s.run(ctx, gen, query)
}

// armLocked installs the cancel handle for the new in-flight lookup. Caller holds mu.
func (s *Session) armLocked() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	return ctx
}

func (s *Session) run(ctx context.Context, gen uint64, query string) {
	result, err := s.lookup(ctx, query)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	// Re-check under deliverMu: the generation may have moved while an
	// earlier delivery held the lock.
	s.mu.Lock()
	stale := s.closed || gen != s.gen
	s.mu.Unlock()
	if stale {
		// A newer query won; this answer must not be rendered.
		return
	}

	s.deliver(query, result, err)
}
