// Package client contains the client-side building blocks for talking to the
// portfolio backend and for opening the local database.
//
// # Overview
//
// The package provides:
//  1. The API contract (see the Client interface): the authentication calls
//     Register, Login, Logout, RequestPasswordReset and ConfirmPasswordReset,
//     the profile and portfolio calls, and the generic Do.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     access token from a TokenSource as a bearer credential, tags each
//     request with an X-Request-ID and maps failures to typed errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every non-2xx reply is an *APIError. Two refinements wrap it and can be
// matched with errors.As: *ValidationError (400 with field-keyed messages)
// and *AuthenticationError (rejected login, with the offending field).
// Transport failures are *NetworkError. ErrNotAuthenticated and
// ErrRequestInFlight are sentinels for errors.Is.
//
// Nothing here retries, and no token refresh happens: a 401 on an ordinary
// request is just an *APIError the caller may act on.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All calls take a context.Context and
// honor cancellation; a per-request timeout is set with WithTimeout.
package client
