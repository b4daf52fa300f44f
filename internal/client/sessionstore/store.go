package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/folio/internal/cryptox"
	"github.com/dmitrijs2005/folio/internal/dbx"
)

// Entry names, shared with anything inspecting the database by hand.
const (
	TokensKey = "auth_tokens"
	UserKey   = "user"

	saltKey = "store_salt"
)

// DefaultTTL is the lifetime of a saved session.
const DefaultTTL = 24 * time.Hour

var (
	// ErrNoSession means at least one half of the session is missing or expired.
	ErrNoSession = errors.New("no stored session")
	// ErrCorrupt means a stored half could not be decoded.
	ErrCorrupt = errors.New("stored session corrupt")
)

// Store is the persisted session boundary used by the session manager.
type Store interface {
	Load(ctx context.Context) (models.User, models.AuthTokens, error)
	Save(ctx context.Context, user models.User, tokens models.AuthTokens) error
	Clear(ctx context.Context) error
}

// SQLiteStore keeps the session in the local metadata table.
type SQLiteStore struct {
	db     *sql.DB
	ttl    time.Duration
	now    func() time.Time
	secret []byte
	codec  codec
}

type Option func(*SQLiteStore)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *SQLiteStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now; used by tests to move past expiry.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// WithSecret enables sealing of stored blobs. An empty secret is ignored.
func WithSecret(secret []byte) Option {
	return func(s *SQLiteStore) { s.secret = secret }
}

// New builds a store on an already migrated database.
func New(ctx context.Context, db *sql.DB, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, ttl: DefaultTTL, now: time.Now, codec: jsonCodec{}}
	for _, o := range opts {
		o(s)
	}
	if len(s.secret) > 0 {
		salt, err := s.loadOrCreateSalt(ctx)
		if err != nil {
			return nil, err
		}
		s.codec = sealedCodec{key: cryptox.DeriveKey(s.secret, salt)}
	}
	return s, nil
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLiteStore) loadOrCreateSalt(ctx context.Context) ([]byte, error) {
	var salt []byte
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		e, err := repo.Get(ctx, saltKey)
		if err != nil {
			return err
		}
		if e != nil {
			salt = e.Value
			return nil
		}
		if salt, err = cryptox.RandomBytes(16); err != nil {
			return err
		}
		return repo.Set(ctx, saltKey, metadata.Entry{Value: salt})
	})
	if err != nil {
		return nil, fmt.Errorf("store salt: %w", err)
	}
	return salt, nil
}

// Save writes both halves with one shared expiry in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, user models.User, tokens models.AuthTokens) error {
	if !tokens.Complete() {
		return fmt.Errorf("save session: %w", ErrCorrupt)
	}
	userBlob, err := s.codec.encode(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	tokensBlob, err := s.codec.encode(tokens)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	expires := s.now().Add(s.ttl)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, TokensKey, metadata.Entry{Value: tokensBlob, ExpiresAt: expires}); err != nil {
			return err
		}
		return repo.Set(ctx, UserKey, metadata.Entry{Value: userBlob, ExpiresAt: expires})
	})
}

// Load returns the stored session. It does not clean up on failure; callers
// decide whether to Clear.
func (s *SQLiteStore) Load(ctx context.Context) (models.User, models.AuthTokens, error) {
	var (
		user   models.User
		tokens models.AuthTokens
	)
	repo := s.repo(s.db)
	now := s.now()

	tokensEntry, err := repo.Get(ctx, TokensKey)
	if err != nil {
		return user, tokens, err
	}
	userEntry, err := repo.Get(ctx, UserKey)
	if err != nil {
		return user, tokens, err
	}
	if tokensEntry == nil || userEntry == nil || tokensEntry.Expired(now) || userEntry.Expired(now) {
		return user, tokens, ErrNoSession
	}

	if err := s.codec.decode(tokensEntry.Value, &tokens); err != nil {
		return models.User{}, models.AuthTokens{}, fmt.Errorf("%w: tokens: %v", ErrCorrupt, err)
	}
	if !tokens.Complete() {
		return models.User{}, models.AuthTokens{}, fmt.Errorf("%w: tokens incomplete", ErrCorrupt)
	}
	if err := s.codec.decode(userEntry.Value, &user); err != nil {
		return models.User{}, models.AuthTokens{}, fmt.Errorf("%w: user: %v", ErrCorrupt, err)
	}
	return user, tokens, nil
}

// Clear removes both halves.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, TokensKey, UserKey)
}

