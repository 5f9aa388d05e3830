package query

import "context"

// Mutation runs a remote write and keeps the cache consistent with it: on
// success the keys in Invalidates are marked stale and OnSuccess runs; on
// failure OnError runs and the cache is left untouched.
type Mutation[In, Out any] struct {
	store       *Store
	do          func(ctx context.Context, in In) (Out, error)
	Invalidates []string
	OnSuccess   func(ctx context.Context, out Out)
	OnError     func(ctx context.Context, err error)
}

func NewMutation[In, Out any](store *Store, do func(ctx context.Context, in In) (Out, error), invalidates ...string) *Mutation[In, Out] {
	return &Mutation[In, Out]{store: store, do: do, Invalidates: invalidates}
}

func (m *Mutation[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	out, err := m.do(ctx, in)
	if err != nil {
		if m.OnError != nil {
			m.OnError(ctx, err)
		}
		return out, err
	}

	if len(m.Invalidates) > 0 {
		m.store.Invalidate(m.Invalidates...)
	}
	if m.OnSuccess != nil {
		m.OnSuccess(ctx, out)
	}
	return out, nil
}
