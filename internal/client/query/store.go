package query

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/quizzer/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Status is the load state of a cache entry.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Entry is an immutable snapshot of one cached key.
//
// Data keeps the last successful value even when Status is StatusError.
// HasData tells an absent value apart from a successful nil.
type Entry struct {
	Key           string
	Status        Status
	Data          any
	HasData       bool
	Err           error
	LastFetchedAt time.Time
	Stale         bool
	Fetching      bool
}

// Fetcher loads the value for a key.
type Fetcher func(ctx context.Context) (any, error)

// Store is a process-wide keyed cache of remote results. It is safe for
// concurrent use; every write replaces a whole entry under the lock.
type Store struct {
	mu      sync.Mutex
	entries map[string]*record
	group   singleflight.Group

	subMu  sync.Mutex
	subs   map[string]map[uint64]chan Entry
	nextID uint64

	now    func() time.Time
	logger logging.Logger
}

// record is the mutable state behind an Entry. gen grows on every
// invalidation so a fetch knows whether it was started before one.
type record struct {
	entry    Entry
	inflight int
	gen      uint64
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*record),
		subs:    make(map[string]map[uint64]chan Entry),
		now:     time.Now,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Peek returns the current snapshot for key without triggering a fetch.
func (s *Store) Peek(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	return rec.entry, true
}

// Read serves a fresh successful entry from the cache and fetches otherwise.
// Entries never expire on their own; only Invalidate makes them stale.
func (s *Store) Read(ctx context.Context, key string, fn Fetcher) (Entry, error) {
	if e, ok := s.fresh(key); ok {
		s.logger.Debug(ctx, "cache hit", "key", key)
		return e, nil
	}
	// The freshness check is repeated inside the flight: a reader that
	// missed a fetch which just completed must not start another one.
	return s.await(ctx, key, func() (any, error) {
		if e, ok := s.fresh(key); ok {
			return e, nil
		}
		return s.run(context.WithoutCancel(ctx), key, fn)
	})
}

// Fetch loads key through fn, joining a fetch already in flight for the same
// key. The shared call runs detached from ctx cancellation, so a caller that
// gives up never aborts it for the others; the result still lands in the
// store. The returned error is the fetch error or ctx.Err().
func (s *Store) Fetch(ctx context.Context, key string, fn Fetcher) (Entry, error) {
	return s.await(ctx, key, func() (any, error) {
		return s.run(context.WithoutCancel(ctx), key, fn)
	})
}

func (s *Store) await(ctx context.Context, key string, call func() (any, error)) (Entry, error) {
	ch := s.group.DoChan(key, call)

	select {
	case res := <-ch:
		e := res.Val.(Entry)
		if e.Status == StatusError {
			return e, e.Err
		}
		return e, nil
	case <-ctx.Done():
		e, _ := s.Peek(key)
		return e, ctx.Err()
	}
}

func (s *Store) fresh(key string) (Entry, bool) {
	e, ok := s.Peek(key)
	return e, ok && e.Status == StatusSuccess && !e.Stale
}

// run performs one fetch and applies its outcome. Outcomes are applied in
// completion order; the last one to finish wins.
func (s *Store) run(ctx context.Context, key string, fn Fetcher) (Entry, error) {
	gen := s.begin(key)
	ctx = logging.ContextWith(ctx, "key", key)
	s.logger.Debug(ctx, "fetch started")

	data, err := fn(ctx)

	e := s.finish(key, gen, data, err)
	if err != nil {
		s.logger.Warn(ctx, "fetch failed", "error", err)
	} else {
		s.logger.Info(ctx, "fetch finished", "stale", e.Stale)
	}
	return e, nil
}

func (s *Store) begin(key string) uint64 {
	s.mu.Lock()
	rec, ok := s.entries[key]
	if !ok {
		rec = &record{entry: Entry{Key: key, Status: StatusLoading}}
		s.entries[key] = rec
	}
	rec.inflight++
	e := rec.entry
	e.Fetching = true
	rec.entry = e
	s.publish(e)
	gen := rec.gen
	s.mu.Unlock()

	return gen
}

func (s *Store) finish(key string, gen uint64, data any, err error) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.entries[key]
	rec.inflight--

	e := rec.entry
	e.Fetching = rec.inflight > 0
	if err != nil {
		e.Status = StatusError
		e.Err = err
	} else {
		e.Status = StatusSuccess
		e.Data = data
		e.HasData = true
		e.Err = nil
		e.LastFetchedAt = s.now()
		// A fetch that started before the latest invalidation still lands,
		// but the entry stays stale so the next read refetches.
		e.Stale = gen != rec.gen
	}
	rec.entry = e
	s.publish(e)
	return e
}

// Invalidate marks keys stale and detaches any in-flight fetch so the next
// read issues a new request. Unknown keys are ignored.
func (s *Store) Invalidate(keys ...string) {
	var changed []Entry

	s.mu.Lock()
	for _, key := range keys {
		s.group.Forget(key)
		rec, ok := s.entries[key]
		if !ok {
			continue
		}
		rec.gen++
		e := rec.entry
		e.Stale = true
		rec.entry = e
		s.publish(e)
		changed = append(changed, e)
	}
	s.mu.Unlock()

	for _, e := range changed {
		s.logger.Debug(context.Background(), "invalidated", "key", e.Key)
	}
}

// Subscribe returns a channel that receives the latest snapshot of key after
// every write. Slow readers only miss intermediate snapshots, writers never
// block. The returned func unsubscribes and may be called more than once.
func (s *Store) Subscribe(key string) (<-chan Entry, func()) {
	ch := make(chan Entry, 1)

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	if s.subs[key] == nil {
		s.subs[key] = make(map[uint64]chan Entry)
	}
	s.subs[key][id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs[key], id)
			if len(s.subs[key]) == 0 {
				delete(s.subs, key)
			}
			s.subMu.Unlock()
		})
	}
}

// publish is called with s.mu held so snapshots reach subscribers in write
// order.
func (s *Store) publish(e Entry) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs[e.Key] {
		// Replace an unread snapshot with the newer one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- e:
		default:
		}
	}
}
