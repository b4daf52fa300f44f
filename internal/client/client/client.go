package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/folio/internal/client/models"
)

// Client is the backend API as seen by the services and the CLI.
type Client interface {
	// Do issues an arbitrary JSON request, attaching the bearer token when
	// one is held, and decodes a 2xx body into out (when non-nil).
	Do(ctx context.Context, method, endpoint string, body, out any) error

	Register(ctx context.Context, username, email, password string) (models.AuthResult, error)
	Login(ctx context.Context, username, password string) (models.AuthResult, error)
	Logout(ctx context.Context, tokens models.AuthTokens) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error

	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (models.UserPatch, error)
	GetPortfolio(ctx context.Context) (models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, p models.Portfolio) (models.Portfolio, error)
}

// TokenSource yields the access token to send, or "" when no session is held.
type TokenSource interface {
	AccessToken() string
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) AccessToken() string { return f() }

// envelope is the {data, message} wrapper used by the profile endpoints.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// dataOrBare decodes either {"data": T, ...} or a bare T. The portfolio
// viewset answers bare while the account endpoints wrap.
type dataOrBare[T any] struct {
	Data T
}

func (d *dataOrBare[T]) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err == nil {
		if raw, ok := fields["data"]; ok {
			return json.Unmarshal(raw, &d.Data)
		}
	}
	return json.Unmarshal(b, &d.Data)
}
