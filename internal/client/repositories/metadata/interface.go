package metadata

import (
	"context"
	"time"
)

// Entry is a stored value with an optional absolute expiry.
// A zero ExpiresAt means the entry never expires.
type Entry struct {
	Value     []byte
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Repository is the local key/value table. Get returns (nil, nil) for a
// missing key; expiry is recorded but interpreted by the caller.
type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, keys ...string) error
}
