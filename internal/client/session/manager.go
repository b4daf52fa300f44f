// Package session owns the process-wide session: the (user, tokens) pair, its
// mirror in the persisted store, and the profile calls that change the user.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/client/sessionstore"
	"github.com/dmitrijs2005/folio/internal/logging"
)

var (
	// ErrPartialSession rejects a Set with exactly one half present.
	ErrPartialSession = errors.New("user and tokens must be set together")
	// ErrSessionChanged means the session was replaced or cleared while a
	// profile call was in flight; the reply was dropped.
	ErrSessionChanged = errors.New("session changed during request")
)

// ProfileAPI is the part of the backend the manager calls itself.
type ProfileAPI interface {
	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (models.UserPatch, error)
}

// Manager is the single owner of session state. It is safe for concurrent
// use; the lock is never held across a network call.
type Manager struct {
	mu     sync.Mutex
	user   *models.User
	tokens *models.AuthTokens
	// gen counts Set/Clear calls so in-flight profile replies can tell
	// whether the session they started from is still current.
	gen uint64

	store   sessionstore.Store
	profile ProfileAPI
	log     logging.Logger
}

var _ client.TokenSource = (*Manager)(nil)

func NewManager(store sessionstore.Store, profile ProfileAPI, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{store: store, profile: profile, log: log.With("component", "session")}
}

// Initialize rehydrates from the store. A missing, expired or unreadable
// half clears both entries and leaves the session anonymous. Only storage
// failures are returned.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, tokens, err := m.store.Load(ctx)
	switch {
	case err == nil:
		m.user, m.tokens = &user, &tokens
		m.gen++
		m.log.Debug(ctx, "session restored", "username", user.Username)
		return nil
	case errors.Is(err, sessionstore.ErrNoSession):
		m.log.Debug(ctx, "no stored session")
	case errors.Is(err, sessionstore.ErrCorrupt):
		m.log.Warn(ctx, "stored session unreadable, discarding", "error", err)
	default:
		m.user, m.tokens = nil, nil
		return fmt.Errorf("load session: %w", err)
	}

	m.user, m.tokens = nil, nil
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	return nil
}

// Set replaces the session. Both nil clears it; exactly one nil, or a token
// pair missing either token, is ErrPartialSession and changes nothing.
func (m *Manager) Set(ctx context.Context, user *models.User, tokens *models.AuthTokens) error {
	if user == nil && tokens == nil {
		m.Clear(ctx)
		return nil
	}
	if user == nil || tokens == nil || !tokens.Complete() {
		return ErrPartialSession
	}

	u, t := *user, *tokens
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commit(ctx, &u, &t)
	return nil
}

// Clear drops the session in memory and in the store.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commit(ctx, nil, nil)
}

// commit assigns the pair and mirrors it. The store is a cache, so a failed
// write is logged and the in-memory session still changes. Callers hold mu.
func (m *Manager) commit(ctx context.Context, user *models.User, tokens *models.AuthTokens) {
	m.user, m.tokens = user, tokens
	m.gen++

	if user == nil {
		if err := m.store.Clear(ctx); err != nil {
			m.log.Error(ctx, "clearing stored session failed", "error", err)
		}
		return
	}
	if err := m.store.Save(ctx, *user, *tokens); err != nil {
		m.log.Error(ctx, "saving session failed", "error", err)
	}
}

func (m *Manager) IsAuthenticated() bool {
	return m.Session().Authenticated()
}

// Session returns a copy of the current pair.
func (m *Manager) Session() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s models.Session
	if m.user != nil {
		u, t := *m.user, *m.tokens
		s.User, s.Tokens = &u, &t
	}
	return s
}

// User returns the current user and whether there is one.
func (m *Manager) User() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

func (m *Manager) Tokens() (models.AuthTokens, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		return models.AuthTokens{}, false
	}
	return *m.tokens, true
}

// AccessToken implements client.TokenSource.
func (m *Manager) AccessToken() string {
	t, _ := m.Tokens()
	return t.Access
}

// snapshot reads the pair and generation under the lock.
func (m *Manager) snapshot() (models.User, models.AuthTokens, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, models.AuthTokens{}, m.gen, false
	}
	return *m.user, *m.tokens, m.gen, true
}

// commitUser stores user if the session is still the one seen at gen.
func (m *Manager) commitUser(ctx context.Context, gen uint64, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen || m.user == nil {
		return ErrSessionChanged
	}
	tokens := *m.tokens
	m.commit(ctx, &user, &tokens)
	return nil
}

// rejected clears the session when the backend refuses the access token.
// Any other failure leaves the session alone.
func (m *Manager) rejected(ctx context.Context, gen uint64, err error) {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return
	}
	m.log.Warn(ctx, "access token rejected, signing out")
	m.commit(ctx, nil, nil)
}

// UpdateUser merges patch onto the current user, sends the merged record to
// the backend and commits it once the backend accepts. Without a session it
// returns client.ErrNotAuthenticated and makes no call.
func (m *Manager) UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error) {
	current, _, gen, ok := m.snapshot()
	if !ok {
		return models.User{}, client.ErrNotAuthenticated
	}

	merged := current.Apply(patch)
	echoed, err := m.profile.UpdateProfile(ctx, merged.Patch().Merge(patch))
	if err != nil {
		m.rejected(ctx, gen, err)
		return models.User{}, err
	}

	updated := merged.Apply(echoed)
	if err := m.commitUser(ctx, gen, updated); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

// Reload replaces the current user with the backend's profile record.
func (m *Manager) Reload(ctx context.Context) (models.User, error) {
	_, _, gen, ok := m.snapshot()
	if !ok {
		return models.User{}, client.ErrNotAuthenticated
	}

	user, err := m.profile.GetProfile(ctx)
	if err != nil {
		m.rejected(ctx, gen, err)
		return models.User{}, err
	}
	if err := m.commitUser(ctx, gen, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
