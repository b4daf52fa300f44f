package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/folio/internal/client/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Register creates an account. Field-level rejections come back as
// *ValidationError.
func (h *HTTPClient) Register(ctx context.Context, username, email, password string) (models.AuthResult, error) {
	var res models.AuthResult
	err := h.do(ctx, request{
		method:    http.MethodPost,
		endpoint:  registerPath,
		body:      registerRequest{Username: username, Email: email, Password: password},
		out:       &res,
		anonymous: true,
	})
	if err != nil {
		return models.AuthResult{}, err
	}
	if !res.Tokens.Complete() {
		return models.AuthResult{}, fmt.Errorf("register: incomplete token pair in response")
	}
	return res, nil
}

// Login exchanges credentials for a session. A 401 is reported as
// *AuthenticationError with Kind telling which field was wrong.
func (h *HTTPClient) Login(ctx context.Context, username, password string) (models.AuthResult, error) {
	var res models.AuthResult
	err := h.do(ctx, request{
		method:    http.MethodPost,
		endpoint:  loginPath,
		body:      loginRequest{Username: username, Password: password},
		out:       &res,
		anonymous: true,
		op:        opLogin,
	})
	if err != nil {
		return models.AuthResult{}, err
	}
	if !res.Tokens.Complete() {
		return models.AuthResult{}, fmt.Errorf("login: incomplete token pair in response")
	}
	return res, nil
}

// Logout invalidates the refresh token server-side.
func (h *HTTPClient) Logout(ctx context.Context, tokens models.AuthTokens) error {
	if tokens.Refresh == "" {
		return ErrNotAuthenticated
	}
	return h.do(ctx, request{
		method:   http.MethodPost,
		endpoint: logoutPath,
		body:     logoutRequest{RefreshToken: tokens.Refresh},
		bearer:   tokens.Access,
	})
}

func (h *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	return h.do(ctx, request{
		method:   http.MethodPost,
		endpoint: forgotPasswordPath,
		body:     emailRequest{Email: email},
	})
}

// ConfirmPasswordReset sets a new password using the emailed reset token.
func (h *HTTPClient) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return h.do(ctx, request{
		method:    http.MethodPost,
		endpoint:  resetPasswordPath,
		body:      resetPasswordRequest{Token: token, NewPassword: newPassword},
		anonymous: true,
	})
}
