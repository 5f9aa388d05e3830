package client

import (
	"context"

	"github.com/dmitrijs2005/quizzer/internal/client/models"
)

// Client is the transport-agnostic contract of the remote quizzer API.
type Client interface {
	ListStudySets(ctx context.Context) ([]models.StudySet, error)
	CreateStudySet(ctx context.Context, title string) (*models.StudySet, error)
	Register(ctx context.Context, email, password string) error
	Close() error
}
