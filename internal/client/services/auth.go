// Package services contains the application services of the quizzer client.
// This file defines the authentication service: account registration.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quizzer/internal/client/client"
	"github.com/dmitrijs2005/quizzer/internal/client/forms"
	"github.com/dmitrijs2005/quizzer/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Register creates a user on the server. The session cookie the server sets
// is kept by the underlying client for later requests. It implements
// forms.Registrar.
type AuthService interface {
	Register(ctx context.Context, c forms.Credentials) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	logger logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client, l logging.Logger) AuthService {
	if l == nil {
		l = logging.Nop()
	}
	return &authService{client: c, logger: l.With("service", "auth")}
}

func (a *authService) Register(ctx context.Context, c forms.Credentials) error {
	if err := a.client.Register(ctx, c.Email, c.Password); err != nil {
		a.logger.Warn(ctx, "register failed", "email", c.Email, "error", err)
		return fmt.Errorf("register: %w", err)
	}
	a.logger.Info(ctx, "registered", "email", c.Email)
	return nil
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
