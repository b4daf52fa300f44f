// Package cli provides the interactive folio command-line client.
//
// It wires configuration, the local session database, the API client and
// services, and an interactive REPL. On start the saved session (if any) is
// restored, so a user stays signed in across runs until logout or expiry.
//
// Key features:
//   - Register / Login / Logout
//   - Password reset request and confirmation
//   - Show and edit the profile
//   - Show the portfolio and replace its skills
//   - Print the public profile link
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
