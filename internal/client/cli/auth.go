package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/folio/internal/client/forms"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for username, email and password, checks them locally and
// creates the account. On success the new session is active.
func (a *App) Register(ctx context.Context) error {
	var f forms.Register
	var err error
	if f.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if f.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	if err := forms.Validate(f); err != nil {
		return a.fail(ctx, err)
	}

	u, err := a.authService.Register(ctx, f.Username, f.Email, f.Password)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Account created. Signed in as %s.\n", u.Username)
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	var f forms.Login
	var err error
	if f.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	if err := forms.Validate(f); err != nil {
		return a.fail(ctx, err)
	}

	u, err := a.authService.Login(ctx, f.Username, f.Password)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Signed in as %s.\n", u.Username)
	return nil
}

// Logout always ends the local session, whatever the server says.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// Forgot requests a reset email. The answer is the same whether or not the
// address belongs to an account.
func (a *App) Forgot(ctx context.Context) error {
	var f forms.ForgotPassword
	var err error
	if f.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if err := forms.Validate(f); err != nil {
		return a.fail(ctx, err)
	}
	if err := a.authService.RequestPasswordReset(ctx, f.Email); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "If an account exists for that email, a reset link is on its way.")
	return nil
}

// Reset sets a new password using the token from the reset email.
func (a *App) Reset(ctx context.Context) error {
	var f forms.ResetPassword
	var err error
	if f.Token, err = getSimpleText(a.reader, "Reset token", a.out); err != nil {
		return err
	}
	if f.Password, err = getPassword(a.reader, "New password", a.out); err != nil {
		return err
	}
	if err := forms.Validate(f); err != nil {
		return a.fail(ctx, err)
	}
	if err := a.authService.ConfirmPasswordReset(ctx, f.Token, f.Password); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Password changed. You can log in now.")
	return nil
}
