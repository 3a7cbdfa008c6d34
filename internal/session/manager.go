// Package session owns the authentication lifecycle: restoring a persisted
// session at startup, sign-in/sign-up/sign-out, token refresh, and the
// change events the UI uses to decide which region is visible.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"notable/internal/backend"
	"notable/internal/logging"
	"notable/internal/store"
	"notable/internal/types"
)

const (
	minPasswordLength = 6
	// Refresh when the access token expires within this window.
	refreshLeeway = 60 * time.Second
	eventBuffer   = 16
)

// Local precondition failures. These never reach the backend.
var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrNotSignedIn         = errors.New("not signed in")
)

// Event announces the session state after a change. Session is nil when no
// one is signed in. Every way a session can appear or disappear (login,
// signup auto-login, refresh, logout, expiry) is delivered through the same
// event stream, so subscribers need exactly one code path.
type Event struct {
	Session *types.Session
}

// AuthBackend is the slice of the backend client the manager needs.
type AuthBackend interface {
	SignUp(ctx context.Context, email, password string) (*types.Session, error)
	SignIn(ctx context.Context, email, password string) (*types.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*types.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*types.User, error)
}

type Manager struct {
	api   AuthBackend
	store store.SessionStore
	log   logging.Logger

	mu      sync.Mutex
	current *types.Session
	subs    map[int]chan Event
	nextSub int
}

func NewManager(api AuthBackend, sessions store.SessionStore, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		api:   api,
		store: sessions,
		log:   log,
		subs:  map[int]chan Event{},
	}
}

// Subscribe registers a persistent listener for session changes. The cancel
// func removes it; the channel is buffered so a briefly busy subscriber
// does not block state transitions.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	ch := make(chan Event, eventBuffer)
	m.subs[id] = ch
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Restore recovers the persisted session, refreshing it if stale and
// validating it against the backend. A structured rejection means the
// session is gone (cleared, nil returned); a transport failure is returned
// as an error so the caller can halt initialization.
func (m *Manager) Restore(ctx context.Context) (*types.Session, error) {
	saved, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if !saved.Active() {
		return nil, nil
	}

	if saved.ExpiresWithin(time.Now(), refreshLeeway) {
		refreshed, err := m.api.RefreshSession(ctx, saved.RefreshToken)
		if err != nil {
			if backend.AsAPIError(err) != nil {
				m.log.Info("stored session rejected on refresh", logging.F("err", err))
				m.discard()
				return nil, nil
			}
			return nil, err
		}
		saved = refreshed
	}

	user, err := m.api.CurrentUser(ctx, saved.AccessToken)
	if err != nil {
		if backend.AsAPIError(err) != nil {
			m.log.Info("stored session rejected", logging.F("err", err))
			m.discard()
			return nil, nil
		}
		return nil, err
	}
	saved.User = user

	m.adopt(saved)
	m.log.Info("session restored", logging.F("user", user.ID))
	return saved, nil
}

// SignIn delegates the credential check entirely to the backend. On success
// the session is adopted and announced; the caller performs no UI
// transition of its own.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	session, err := m.api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.adopt(session)
	m.emit(session)
	m.log.Info("signed in", logging.F("user", session.UserID()))
	return session, nil
}

// SignUp checks the local preconditions before any network call. When the
// backend auto-confirms the account it returns an active session, which is
// adopted and announced exactly like a login.
func (m *Manager) SignUp(ctx context.Context, email, password, confirm string) (*types.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	session, err := m.api.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if session.Active() {
		m.adopt(session)
		m.emit(session)
		m.log.Info("signed up and in", logging.F("user", session.UserID()))
	} else {
		m.log.Info("signed up, confirmation pending", logging.F("email", email))
	}
	return session, nil
}

// SignOut terminates the backend session. Only a confirmed termination
// clears local state; on failure the session is kept, since it was not
// actually destroyed.
func (m *Manager) SignOut(ctx context.Context) error {
	token := m.AccessToken()
	if token == "" {
		return ErrNotSignedIn
	}
	if err := m.api.SignOut(ctx, token); err != nil {
		return err
	}
	m.discard()
	m.emit(nil)
	m.log.Info("signed out")
	return nil
}

// EnsureFresh refreshes the access token when it is about to expire. A
// structured rejection of the refresh token means the session was revoked
// or expired for good: state is cleared and the signed-out event fires, the
// same push subscribers see for an explicit logout. Transport failures
// leave the session in place.
func (m *Manager) EnsureFresh(ctx context.Context) error {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()
	if !current.Active() || !current.ExpiresWithin(time.Now(), refreshLeeway) {
		return nil
	}

	refreshed, err := m.api.RefreshSession(ctx, current.RefreshToken)
	if err != nil {
		if backend.AsAPIError(err) != nil {
			m.log.Warn("session expired", logging.F("err", err))
			m.discard()
			m.emit(nil)
			return nil
		}
		return err
	}
	m.adopt(refreshed)
	m.emit(refreshed)
	m.log.Debug("session refreshed", logging.F("user", refreshed.UserID()))
	return nil
}

// CurrentUser re-resolves the identity bound to the session at call time.
func (m *Manager) CurrentUser(ctx context.Context) (*types.User, error) {
	token := m.AccessToken()
	if token == "" {
		return nil, ErrNotSignedIn
	}
	return m.api.CurrentUser(ctx, token)
}

func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.Active() {
		return ""
	}
	return m.current.AccessToken
}

func (m *Manager) Email() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Email()
}

func (m *Manager) adopt(session *types.Session) {
	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
	if err := m.store.Save(session); err != nil {
		m.log.Warn("failed to persist session", logging.F("err", err))
	}
}

func (m *Manager) discard() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	if err := m.store.Clear(); err != nil {
		m.log.Warn("failed to clear stored session", logging.F("err", err))
	}
}

func (m *Manager) emit(session *types.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- Event{Session: session}:
		default:
		}
	}
}
