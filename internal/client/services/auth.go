// Package services contains application services for the folio client.
// This file defines the authentication service: register, login, logout and
// the password-reset pair, with the session kept in step.
package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/logging"
	"golang.org/x/sync/semaphore"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register, Login: call the backend and on success replace the session.
//     A second call while one is running fails with client.ErrRequestInFlight.
//   - Logout: needs a refresh token; tells the server best-effort and always
//     clears the local session.
//   - RequestPasswordReset: reports success for any 4xx so that the reply
//     never reveals whether an account exists.
//   - ConfirmPasswordReset: sets a new password with an emailed token.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// SessionManager is what the services need from session.Manager.
type SessionManager interface {
	Set(ctx context.Context, user *models.User, tokens *models.AuthTokens) error
	Clear(ctx context.Context)
	Tokens() (models.AuthTokens, bool)
	User() (models.User, bool)
	IsAuthenticated() bool
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error)
	Reload(ctx context.Context) (models.User, error)
}

type authService struct {
	client   client.Client
	sessions SessionManager
	log      logging.Logger
	// inFlight admits one login/register at a time.
	inFlight *semaphore.Weighted
}

// NewAuthService constructs an AuthService bound to the given API client and
// session manager.
func NewAuthService(c client.Client, sessions SessionManager, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{
		client:   c,
		sessions: sessions,
		log:      log.With("component", "auth"),
		inFlight: semaphore.NewWeighted(1),
	}
}

func (a *authService) begin() (func(), error) {
	if !a.inFlight.TryAcquire(1) {
		return nil, client.ErrRequestInFlight
	}
	return func() { a.inFlight.Release(1) }, nil
}

func (a *authService) establish(ctx context.Context, res models.AuthResult) (models.User, error) {
	if err := a.sessions.Set(ctx, &res.User, &res.Tokens); err != nil {
		return models.User{}, err
	}
	return res.User, nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	done, err := a.begin()
	if err != nil {
		return models.User{}, err
	}
	defer done()

	res, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		return models.User{}, err
	}
	a.log.Info(ctx, "registered", "username", res.User.Username)
	return a.establish(ctx, res)
}

func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	done, err := a.begin()
	if err != nil {
		return models.User{}, err
	}
	defer done()

	res, err := a.client.Login(ctx, username, password)
	if err != nil {
		return models.User{}, err
	}
	a.log.Info(ctx, "logged in", "username", res.User.Username)
	return a.establish(ctx, res)
}

// Logout returns client.ErrNotAuthenticated when no refresh token is held.
// Otherwise it returns nil: a failed server call is only logged.
func (a *authService) Logout(ctx context.Context) error {
	tokens, ok := a.sessions.Tokens()
	if !ok || tokens.Refresh == "" {
		return client.ErrNotAuthenticated
	}
	defer a.sessions.Clear(ctx)

	if err := a.client.Logout(ctx, tokens); err != nil {
		a.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
		return nil
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) error {
	err := a.client.RequestPasswordReset(ctx, email)
	if err == nil {
		return nil
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= http.StatusBadRequest && apiErr.Status < http.StatusInternalServerError {
		a.log.Debug(ctx, "password reset request rejected, reporting success", "status", apiErr.Status)
		return nil
	}
	return err
}

func (a *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return a.client.ConfirmPasswordReset(ctx, token, newPassword)
}
