// Package metadata provides the client-side key/value persistence layer.
//
// # Overview
//
// The package defines a Repository interface over named byte blobs with an
// optional absolute expiry. A SQLite-backed implementation (SQLiteRepository)
// persists data using a dbx.DBTX (either *sql.DB or *sql.Tx), so a caller can
// write several keys in one transaction.
//
// Expiry is stored, not enforced: Get returns expired entries and callers
// decide with Entry.Expired.
//
// Typical Usage
//
//	repo := metadata.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "user", metadata.Entry{Value: blob, ExpiresAt: exp})
//	e, _ := repo.Get(ctx, "user") // nil, nil when missing
//	_ = repo.Delete(ctx, "user", "auth_tokens")
package metadata
