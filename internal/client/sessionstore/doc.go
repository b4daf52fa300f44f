// Package sessionstore persists the signed-in session between runs.
//
// The session is kept as two entries of the local metadata table, one for
// the token pair ("auth_tokens") and one for the user record ("user"). Both
// are written in a single transaction with the same absolute expiry and are
// always removed together. Loading is fail-closed: a missing, expired or
// undecodable half makes the whole session unavailable.
//
// When a store secret is configured the blobs are sealed with AES-GCM under
// a key derived from the secret and a per-database random salt; a blob that
// cannot be opened counts as corrupt.
package sessionstore
