package query

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type set struct {
	ID    int
	Title string
}

func TestQuery_GetAndPeek(t *testing.T) {
	s := NewStore()
	var calls atomic.Int32
	q := NewQuery(s, key, func(context.Context) ([]set, error) {
		calls.Add(1)
		return []set{{1, "Math"}}, nil
	})

	r, ok := q.Peek()
	assert.False(t, ok)
	assert.True(t, r.Loading())

	r, err := q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, r.Status)
	assert.Equal(t, []set{{1, "Math"}}, r.Data)
	assert.False(t, r.Loading())

	_, err = q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	_, err = q.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestQuery_ErrorKeepsTypedData(t *testing.T) {
	s := NewStore()
	fail := false
	q := NewQuery(s, key, func(context.Context) ([]set, error) {
		if fail {
			return nil, errors.New("down")
		}
		return []set{{1, "Math"}}, nil
	})

	_, err := q.Get(context.Background())
	require.NoError(t, err)

	fail = true
	q.Invalidate()
	r, err := q.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusError, r.Status)
	assert.True(t, r.HasData)
	assert.Equal(t, []set{{1, "Math"}}, r.Data)
	assert.EqualError(t, r.Err, "down")
}

func TestQuery_TypeMismatch(t *testing.T) {
	s := NewStore()
	var calls atomic.Int32
	_, err := s.Fetch(context.Background(), key, staticFetcher(&calls, "not a slice", nil))
	require.NoError(t, err)

	q := NewQuery(s, key, func(context.Context) ([]set, error) { return nil, nil })
	_, err = q.Get(context.Background())
	require.ErrorIs(t, err, ErrNoData)
}

func TestQuery_Subscribe(t *testing.T) {
	s := NewStore()
	q := NewQuery(s, key, func(context.Context) ([]set, error) {
		return []set{{2, "Art"}}, nil
	})

	ch, stop := q.Subscribe()

	_, err := q.Get(context.Background())
	require.NoError(t, err)

	deadline := time.After(time.Second)
	for {
		select {
		case r := <-ch:
			if r.Status != StatusSuccess {
				continue
			}
			assert.Equal(t, []set{{2, "Art"}}, r.Data)
			stop()
			stop()
			for range ch {
			}
			return
		case <-deadline:
			stop()
			t.Fatal("no success snapshot")
		}
	}
}

func TestMutation_SuccessInvalidates(t *testing.T) {
	s := NewStore()
	var calls atomic.Int32
	q := NewQuery(s, key, func(context.Context) ([]set, error) {
		calls.Add(1)
		return nil, nil
	})
	_, err := q.Get(context.Background())
	require.NoError(t, err)

	var succeeded set
	m := NewMutation(s, func(_ context.Context, title string) (set, error) {
		return set{ID: 9, Title: title}, nil
	}, key)
	m.OnSuccess = func(_ context.Context, out set) { succeeded = out }
	m.OnError = func(context.Context, error) { t.Fatal("OnError must not run") }

	out, err := m.Run(context.Background(), "Biology")
	require.NoError(t, err)
	assert.Equal(t, set{9, "Biology"}, out)
	assert.Equal(t, out, succeeded)

	r, _ := q.Peek()
	assert.True(t, r.Stale)

	_, err = q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMutation_FailureLeavesCache(t *testing.T) {
	s := NewStore()
	q := NewQuery(s, key, func(context.Context) ([]set, error) { return []set{{1, "Math"}}, nil })
	_, err := q.Get(context.Background())
	require.NoError(t, err)

	boom := errors.New("boom")
	var gotErr error
	m := NewMutation(s, func(context.Context, string) (set, error) { return set{}, boom }, key)
	m.OnSuccess = func(context.Context, set) { t.Fatal("OnSuccess must not run") }
	m.OnError = func(_ context.Context, err error) { gotErr = err }

	_, err = m.Run(context.Background(), "Biology")
	require.ErrorIs(t, err, boom)
	assert.ErrorIs(t, gotErr, boom)

	r, _ := q.Peek()
	assert.False(t, r.Stale)
	assert.Equal(t, []set{{1, "Math"}}, r.Data)
}
