package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrNoData is returned when an entry holds a value of an unexpected type.
var ErrNoData = errors.New("no cached data")

// Result is the typed view of an Entry.
type Result[T any] struct {
	Status        Status
	Data          T
	HasData       bool
	Err           error
	LastFetchedAt time.Time
	Stale         bool
	Fetching      bool
}

// Loading reports whether there is nothing to show yet.
func (r Result[T]) Loading() bool {
	return r.Status == StatusLoading && !r.HasData
}

// Query binds a key and a typed fetch function to a Store.
type Query[T any] struct {
	store *Store
	key   string
	fetch func(ctx context.Context) (T, error)
}

func NewQuery[T any](store *Store, key string, fetch func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{store: store, key: key, fetch: fetch}
}

func (q *Query[T]) Key() string { return q.key }

// Get returns the cached value when fresh and fetches otherwise.
func (q *Query[T]) Get(ctx context.Context) (Result[T], error) {
	e, err := q.store.Read(ctx, q.key, q.fetcher())
	return q.convert(e, err)
}

// Refetch always issues a fetch, joining one in flight.
func (q *Query[T]) Refetch(ctx context.Context) (Result[T], error) {
	e, err := q.store.Fetch(ctx, q.key, q.fetcher())
	return q.convert(e, err)
}

// Peek returns the current cached state; ok is false before the first fetch.
func (q *Query[T]) Peek() (Result[T], bool) {
	e, ok := q.store.Peek(q.key)
	if !ok {
		return Result[T]{Status: StatusLoading}, false
	}
	r, _ := q.convert(e, nil)
	return r, true
}

// Invalidate marks the query stale.
func (q *Query[T]) Invalidate() { q.store.Invalidate(q.key) }

// Subscribe streams typed snapshots until the returned func is called.
// The returned channel is closed after unsubscribing.
func (q *Query[T]) Subscribe() (<-chan Result[T], func()) {
	in, cancel := q.store.Subscribe(q.key)
	out := make(chan Result[T], 1)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case e := <-in:
				r, _ := q.convert(e, nil)
				select {
				case out <- r:
				case <-done:
					return
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return out, func() {
		once.Do(func() {
			cancel()
			close(done)
		})
	}
}

func (q *Query[T]) fetcher() Fetcher {
	return func(ctx context.Context) (any, error) {
		return q.fetch(ctx)
	}
}

func (q *Query[T]) convert(e Entry, err error) (Result[T], error) {
	r := Result[T]{
		Status:        e.Status,
		HasData:       e.HasData,
		Err:           e.Err,
		LastFetchedAt: e.LastFetchedAt,
		Stale:         e.Stale,
		Fetching:      e.Fetching,
	}
	if r.Status == "" {
		r.Status = StatusLoading
	}
	if e.HasData {
		v, ok := e.Data.(T)
		if !ok {
			return r, fmt.Errorf("%w: key %q holds %T", ErrNoData, q.key, e.Data)
		}
		r.Data = v
	}
	return r, err
}
