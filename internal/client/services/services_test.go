package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmitrijs2005/quizzer/internal/client/apitest"
	"github.com/dmitrijs2005/quizzer/internal/client/client"
	"github.com/dmitrijs2005/quizzer/internal/client/forms"
	"github.com/dmitrijs2005/quizzer/internal/client/models"
	"github.com/dmitrijs2005/quizzer/internal/client/query"
	"github.com/dmitrijs2005/quizzer/internal/logging"
)

type recordingNotifier struct {
	mu      sync.Mutex
	success []string
	failure []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.success = append(n.success, msg)
}

func (n *recordingNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failure = append(n.failure, msg)
}

type fixture struct {
	srv      *apitest.Server
	client   *client.HTTPClient
	store    *query.Store
	notifier *recordingNotifier
	sets     StudySetService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.BaseURL())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	f := &fixture{srv: srv, client: c, store: query.NewStore(), notifier: &recordingNotifier{}}
	f.sets = NewStudySetService(c, f.store, f.notifier, nil)
	return f
}

func TestStudySets_ConcurrentListSharesOneRequest(t *testing.T) {
	f := setup(t)
	f.srv.Seed(models.StudySet{Title: "Math"})
	release := f.srv.HoldList()

	const observers = 5
	var wg sync.WaitGroup
	for i := 0; i < observers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := f.sets.List(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, []models.StudySet{{ID: "1", Title: "Math"}}, r.Data)
		}()
	}

	require.Eventually(t, func() bool { return f.srv.Count(apitest.RouteList) == 1 }, time.Second, 5*time.Millisecond)
	r, ok := f.sets.Peek()
	require.True(t, ok)
	assert.True(t, r.Loading())

	release()
	wg.Wait()
	assert.Equal(t, 1, f.srv.Count(apitest.RouteList))
}

func TestStudySets_CreateInvalidatesList(t *testing.T) {
	f := setup(t)
	f.srv.Seed(models.StudySet{Title: "Math"})

	r, err := f.sets.List(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Data, 1)

	created, err := f.sets.Create(context.Background(), "Biology")
	require.NoError(t, err)
	assert.Equal(t, "Biology", created.Title)
	assert.Equal(t, []string{CreateSuccessMessage}, f.notifier.success)

	r, _ = f.sets.Peek()
	assert.True(t, r.Stale)

	r, err = f.sets.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.StudySet{{ID: "1", Title: "Math"}, *created}, r.Data)
	assert.Equal(t, 2, f.srv.Count(apitest.RouteList))
}

func TestStudySets_CreateFailureKeepsCache(t *testing.T) {
	f := setup(t)
	_, err := f.sets.List(context.Background())
	require.NoError(t, err)

	f.srv.FailNext(apitest.RouteCreate, http.StatusInternalServerError)
	created, err := f.sets.Create(context.Background(), "Biology")
	require.ErrorIs(t, err, client.ErrTransport)
	assert.Nil(t, created)
	assert.Equal(t, []string{CreateFailureMessage}, f.notifier.failure)
	assert.Empty(t, f.notifier.success)

	r, _ := f.sets.Peek()
	assert.False(t, r.Stale)

	_, err = f.sets.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.srv.Count(apitest.RouteList), "failed create must not trigger a refetch")
}

func TestStudySets_RefreshErrorRetainsData(t *testing.T) {
	f := setup(t)
	f.srv.Seed(models.StudySet{Title: "Math"})
	_, err := f.sets.List(context.Background())
	require.NoError(t, err)

	f.srv.FailNext(apitest.RouteList, http.StatusBadGateway)
	r, err := f.sets.Refresh(context.Background())
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, query.StatusError, r.Status)
	assert.True(t, r.HasData)
	assert.Equal(t, []models.StudySet{{ID: "1", Title: "Math"}}, r.Data)
}

func TestStudySets_Subscribe(t *testing.T) {
	f := setup(t)
	ch, stop := f.sets.Subscribe()
	defer stop()

	_, err := f.sets.List(context.Background())
	require.NoError(t, err)

	deadline := time.After(time.Second)
	for {
		select {
		case r := <-ch:
			if r.Status == query.StatusSuccess {
				assert.Empty(t, r.Data)
				return
			}
		case <-deadline:
			t.Fatal("no success snapshot")
		}
	}
}

func TestAuthService_Register(t *testing.T) {
	f := setup(t)
	svc := NewAuthService(f.client, nil)

	var _ forms.Registrar = svc

	err := svc.Register(context.Background(), forms.Credentials{Email: "a@b.com", Password: "abcdef1!"})
	require.NoError(t, err)
	assert.Equal(t, []models.RegisterRequest{{Email: "a@b.com", Password: "abcdef1!"}}, f.srv.Registered())

	f.srv.FailNext(apitest.RouteRegister, http.StatusConflict)
	err = svc.Register(context.Background(), forms.Credentials{Email: "a@b.com", Password: "abcdef1!"})
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.StatusCode)

	require.NoError(t, svc.Close(context.Background()))
}

func TestStudySets_ListFailureLogsKey(t *testing.T) {
	f := setup(t)
	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewStudySetService(f.client, query.NewStore(), f.notifier, logging.NewZapLogger(zap.New(core)))

	f.srv.FailNext(apitest.RouteList, http.StatusInternalServerError)
	_, err := svc.List(context.Background())
	require.Error(t, err)

	entries := logs.FilterMessage("list failed").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, StudySetsKey, entries[0].ContextMap()["key"])
}
