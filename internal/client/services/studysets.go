package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quizzer/internal/client/client"
	"github.com/dmitrijs2005/quizzer/internal/client/models"
	"github.com/dmitrijs2005/quizzer/internal/client/notify"
	"github.com/dmitrijs2005/quizzer/internal/client/query"
	"github.com/dmitrijs2005/quizzer/internal/logging"
)

// StudySetsKey is the cache key of the study-sets collection.
const StudySetsKey = "study-sets"

const (
	CreateSuccessMessage = "Study set created"
	CreateFailureMessage = "Failed to create study set"
)

// StudySetService reads and writes the study-sets collection through the
// shared query store. Every observer of the list shares one cache entry.
type StudySetService interface {
	// List returns the cached list when fresh and fetches it otherwise.
	List(ctx context.Context) (query.Result[[]models.StudySet], error)
	// Refresh fetches the list even when the cached copy is fresh.
	Refresh(ctx context.Context) (query.Result[[]models.StudySet], error)
	// Peek returns whatever is cached without fetching.
	Peek() (query.Result[[]models.StudySet], bool)
	// Create posts a new set. On success the list is invalidated.
	Create(ctx context.Context, title string) (*models.StudySet, error)
	Subscribe() (<-chan query.Result[[]models.StudySet], func())
}

type studySetService struct {
	list   *query.Query[[]models.StudySet]
	create *query.Mutation[string, *models.StudySet]
	logger logging.Logger
}

func NewStudySetService(c client.Client, store *query.Store, n notify.Notifier, l logging.Logger) StudySetService {
	if n == nil {
		n = notify.Discard
	}
	if l == nil {
		l = logging.Nop()
	}
	s := &studySetService{logger: l.With("service", "study-sets")}

	s.list = query.NewQuery(store, StudySetsKey, c.ListStudySets)

	s.create = query.NewMutation(store, c.CreateStudySet, StudySetsKey)
	s.create.OnSuccess = func(ctx context.Context, created *models.StudySet) {
		s.logger.Info(ctx, "study set created", "id", created.ID, "title", created.Title, "invalidated", s.list.Key())
		n.Success(CreateSuccessMessage)
	}
	s.create.OnError = func(ctx context.Context, err error) {
		s.logger.Warn(ctx, "create study set failed", "error", err)
		n.Failure(CreateFailureMessage)
	}
	return s
}

func (s *studySetService) List(ctx context.Context) (query.Result[[]models.StudySet], error) {
	r, err := s.list.Get(ctx)
	if err != nil {
		s.logger.Warn(ctx, "list failed", "key", s.list.Key(), "error", err)
	}
	return r, err
}

func (s *studySetService) Refresh(ctx context.Context) (query.Result[[]models.StudySet], error) {
	return s.list.Refetch(ctx)
}

func (s *studySetService) Peek() (query.Result[[]models.StudySet], bool) {
	return s.list.Peek()
}

func (s *studySetService) Create(ctx context.Context, title string) (*models.StudySet, error) {
	created, err := s.create.Run(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("create study set: %w", err)
	}
	return created, nil
}

func (s *studySetService) Subscribe() (<-chan query.Result[[]models.StudySet], func()) {
	return s.list.Subscribe()
}
