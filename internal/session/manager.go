// Package session owns authentication state: the current user, the
// authenticated flag, the loading flag, and the last error. It is the only
// writer of the token and cached-user entries in the local store.
package session

import (
	"context"
	"sync"

	"taskboard/internal/api"
	"taskboard/internal/model"
	"taskboard/internal/store"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnknown is the pre-init state, before the local store check.
	StateUnknown State = iota

	// StateVerifying means a cached token was found and server
	// confirmation is pending. The session is treated as authenticated.
	StateVerifying

	// StateAuthenticated is a confirmed (or optimistically kept) session.
	StateAuthenticated

	// StateAnonymous means no session.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Manager is the session manager. Methods are safe for concurrent use;
// concurrent calls are not serialized against each other, the last write
// to complete wins.
type Manager struct {
	client *api.Client
	local  *store.Store

	mu       sync.RWMutex
	state    State
	user     *model.User
	loading  bool
	lastErr  string
	remember bool
}

// New creates a Manager in the Unknown state. Call Init before use.
func New(client *api.Client, local *store.Store) *Manager {
	return &Manager{client: client, local: local, state: StateUnknown}
}

// Init runs startup reconciliation against the local store.
//
// No cached token: the session becomes Anonymous without any network
// call. With a cached token the session is optimistically Authenticated
// from the cache (stale data beats a blank screen), then the token is
// verified remotely:
//
//   - confirmed: the server's user overwrites the cache
//   - explicit rejection: local store cleared, session Anonymous
//   - transport failure: the optimistic state is kept — a connectivity
//     problem is not an invalid token
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
	defer m.setLoading(false)

	token, okToken := m.local.Token()
	cached, okUser := m.local.User()
	if !okToken || !okUser {
		m.mu.Lock()
		m.state = StateAnonymous
		m.user = nil
		m.mu.Unlock()
		return
	}

	m.client.SetToken(token)
	m.mu.Lock()
	m.state = StateVerifying
	m.user = &cached
	m.remember = true
	m.mu.Unlock()

	verified, err := m.client.VerifyToken(ctx)
	switch {
	case err == nil:
		m.local.SaveUser(verified)
		m.mu.Lock()
		m.state = StateAuthenticated
		m.user = &verified
		m.mu.Unlock()
	case api.IsRejection(err):
		// Server said no: the token is dead.
		m.local.Clear()
		m.client.ClearToken()
		m.mu.Lock()
		m.state = StateAnonymous
		m.user = nil
		m.mu.Unlock()
	default:
		// Could not ask the server; keep the cached session.
		m.mu.Lock()
		m.state = StateAuthenticated
		m.mu.Unlock()
	}
}

// Login authenticates with the remote API. On success the token is
// installed on the client and, when remember is set, token and user are
// persisted locally. On failure the session error is set and the failure
// is returned to the caller.
func (m *Manager) Login(ctx context.Context, email, password string, remember bool) error {
	m.beginAuthCall()
	defer m.setLoading(false)

	user, token, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.setError(api.Message(err))
		return err
	}
	return m.establish(user, token, remember)
}

// Signup creates an account. Same contract as Login; signup sessions are
// always remembered.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	m.beginAuthCall()
	defer m.setLoading(false)

	user, token, err := m.client.Signup(ctx, name, email, password)
	if err != nil {
		m.setError(api.Message(err))
		return err
	}
	return m.establish(user, token, true)
}

// establish installs a fresh session after a successful login or signup.
func (m *Manager) establish(user model.User, token string, remember bool) error {
	m.client.SetToken(token)
	if remember {
		if err := m.local.SaveToken(token); err != nil {
			m.setError(err.Error())
			return err
		}
		if err := m.local.SaveUser(user); err != nil {
			m.setError(err.Error())
			return err
		}
	}
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &user
	m.remember = remember
	m.lastErr = ""
	m.mu.Unlock()
	return nil
}

// UpdateWallet links a wallet address to the current user. Requires an
// installed token; does not touch the loading flag. On success the
// address is merged into the in-memory user and the merged profile is
// persisted.
func (m *Manager) UpdateWallet(ctx context.Context, address string) error {
	if !m.client.HasToken() {
		m.setError(api.ErrUnauthenticated.Error())
		return api.ErrUnauthenticated
	}

	if err := m.client.UpdateWallet(ctx, address); err != nil {
		m.setError(api.Message(err))
		return err
	}

	m.mu.Lock()
	var persist *model.User
	if m.user != nil {
		u := *m.user
		u.WalletAddress = address
		m.user = &u
		if m.remember {
			persist = &u
		}
	}
	m.lastErr = ""
	m.mu.Unlock()

	if persist != nil {
		m.local.SaveUser(*persist)
	}
	return nil
}

// Logout tears the session down unconditionally: local store entries
// cleared, user dropped, error reset. Never fails.
func (m *Manager) Logout() {
	m.local.Clear()
	m.client.ClearToken()
	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.lastErr = ""
	m.loading = false
	m.mu.Unlock()
}

// Reset returns the manager to the pre-init state. Intended for tests.
func (m *Manager) Reset() {
	m.client.ClearToken()
	m.mu.Lock()
	m.state = StateUnknown
	m.user = nil
	m.lastErr = ""
	m.loading = false
	m.remember = false
	m.mu.Unlock()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the current user, ok=false when anonymous.
func (m *Manager) User() (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return model.User{}, false
	}
	return *m.user, true
}

// IsAuthenticated reports whether a user is present. Holds the
// isAuthenticated == (user != nil) invariant by construction.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading reports whether an auth call is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Err returns the last auth error message, empty when none.
func (m *Manager) Err() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

func (m *Manager) beginAuthCall() {
	m.mu.Lock()
	m.loading = true
	m.lastErr = ""
	m.mu.Unlock()
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) setError(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}
