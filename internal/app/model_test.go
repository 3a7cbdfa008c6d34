package app

import (
	"context"
	"errors"
	"testing"

	"notable/internal/session"
	"notable/internal/types"

	tea "github.com/charmbracelet/bubbletea"
)

type stubSessions struct {
	events chan session.Event

	signInErr     error
	signUpSession *types.Session
	signUpErr     error
	signOutErr    error
	signOutCalls  int
	user          *types.User
	userErr       error
	email         string
}

func newStubSessions() *stubSessions {
	return &stubSessions{
		events: make(chan session.Event, 4),
		user:   &types.User{ID: "user-1", Email: "a@example.com"},
		email:  "a@example.com",
	}
}

func (s *stubSessions) Restore(ctx context.Context) (*types.Session, error) { return nil, nil }

func (s *stubSessions) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return &types.Session{AccessToken: "token-1"}, nil
}

func (s *stubSessions) SignUp(ctx context.Context, email, password, confirm string) (*types.Session, error) {
	return s.signUpSession, s.signUpErr
}

func (s *stubSessions) SignOut(ctx context.Context) error {
	s.signOutCalls++
	return s.signOutErr
}

func (s *stubSessions) EnsureFresh(ctx context.Context) error { return nil }

func (s *stubSessions) CurrentUser(ctx context.Context) (*types.User, error) {
	return s.user, s.userErr
}

func (s *stubSessions) Subscribe() (<-chan session.Event, func()) {
	return s.events, func() {}
}

func (s *stubSessions) Email() string { return s.email }

type stubNotes struct {
	notes     []*types.Note
	listErr   error
	listCalls int

	created     *types.Note
	createErr   error
	createCalls int
	createdUser string

	updateErr   error
	updateCalls int
	updatedID   string

	deleteErr   error
	deleteCalls int
	deletedID   string
}

func (s *stubNotes) ListNotes(ctx context.Context) ([]*types.Note, error) {
	s.listCalls++
	return s.notes, s.listErr
}

func (s *stubNotes) CreateNote(ctx context.Context, title, content, userID string) (*types.Note, error) {
	s.createCalls++
	s.createdUser = userID
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		return s.created, nil
	}
	return &types.Note{ID: "n-new", Title: title, Content: content, UserID: userID}, nil
}

func (s *stubNotes) UpdateNote(ctx context.Context, id, title, content string) (*types.Note, error) {
	s.updateCalls++
	s.updatedID = id
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &types.Note{ID: id, Title: title, Content: content}, nil
}

func (s *stubNotes) DeleteNote(ctx context.Context, id string) error {
	s.deleteCalls++
	s.deletedID = id
	return s.deleteErr
}

func newTestModel(t *testing.T) (*Model, *stubSessions, *stubNotes) {
	t.Helper()
	sessions := newStubSessions()
	notes := &stubNotes{}
	m := NewModel(sessions, notes, nil)
	m.width = 100
	m.height = 40
	m.reflow()
	return m, sessions, notes
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestSessionEventIsTheOnlyRegionSwitch(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)
	m.mode = modeAuth

	// A successful sign-in message on its own changes nothing.
	m.reduceSignIn(signInMsg{})
	if m.mode != modeAuth {
		t.Fatalf("sign-in result must not switch regions")
	}

	cmd := m.reduceSessionEvent(sessionEventMsg{event: session.Event{Session: &types.Session{AccessToken: "token-1"}}, ok: true})
	if m.mode != modeNotes {
		t.Fatalf("signed-in event must show the notes region, mode %d", m.mode)
	}
	if cmd == nil {
		t.Fatalf("expected the event wait to be re-armed and notes fetched")
	}

	m.reduceSessionEvent(sessionEventMsg{event: session.Event{}, ok: true})
	if m.mode != modeAuth {
		t.Fatalf("signed-out event must show the auth region, mode %d", m.mode)
	}
	if m.auth.info == "" {
		t.Fatalf("expected a signed-out notice")
	}
}

func TestSessionEventWhileInNotesDoesNotRefetch(t *testing.T) {
	t.Parallel()
	m, _, notes := newTestModel(t)
	m.mode = modeNotes

	cmd := m.reduceSessionEvent(sessionEventMsg{event: session.Event{Session: &types.Session{AccessToken: "token-2"}}, ok: true})
	if cmd == nil {
		t.Fatalf("expected re-armed event wait")
	}
	if notes.listCalls != 0 {
		t.Fatalf("a refresh event must not trigger a refetch")
	}
	if m.mode != modeNotes {
		t.Fatalf("unexpected mode %d", m.mode)
	}
}

func TestRestoreOutcomes(t *testing.T) {
	t.Parallel()
	t.Run("transport failure halts startup", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.reduceRestore(restoreMsg{err: errors.New("connection refused")})
		if m.mode != modeInitError {
			t.Fatalf("expected init error mode, got %d", m.mode)
		}
	})
	t.Run("no session shows auth", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		m.reduceRestore(restoreMsg{})
		if m.mode != modeAuth {
			t.Fatalf("expected auth mode, got %d", m.mode)
		}
	})
	t.Run("active session shows notes and fetches", func(t *testing.T) {
		m, _, _ := newTestModel(t)
		cmd := m.reduceRestore(restoreMsg{session: &types.Session{AccessToken: "token-1"}})
		if m.mode != modeNotes {
			t.Fatalf("expected notes mode, got %d", m.mode)
		}
		if cmd == nil || !m.board.loading {
			t.Fatalf("expected notes load to begin")
		}
	})
}

func TestSignOutFailureKeepsNotesRegion(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)
	m.mode = modeNotes
	m.board.signOutBusy = true

	m.reduceSignOut(signOutMsg{err: errors.New("network down")})
	if m.mode != modeNotes {
		t.Fatalf("failed sign-out must keep the notes region")
	}
	if m.board.signOutBusy {
		t.Fatalf("busy flag must clear")
	}
	if m.toastLevel != toastLevelError || m.toastText == "" {
		t.Fatalf("expected an error toast, got %q", m.toastText)
	}
}

func TestSignOutKeyIsSingleFlight(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel(t)
	m.mode = modeNotes
	m.board.focus = focusList

	first := m.reduceNotesKey(keyMsg("ctrl+o"))
	if first == nil {
		t.Fatalf("expected sign-out command")
	}
	if second := m.reduceNotesKey(keyMsg("ctrl+o")); second != nil {
		t.Fatalf("second sign-out while busy must be ignored")
	}
}
