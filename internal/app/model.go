// Package app is the terminal UI: a bubbletea model with two regions, the
// auth forms and the notes board. All state lives on the model and every
// mutation arrives as a message on the single program loop; slow work runs
// in commands that report back with a message.
package app

import (
	"fmt"
	"strings"
	"time"

	"notable/internal/logging"
	"notable/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type uiMode int

const (
	modeInit uiMode = iota
	modeInitError
	modeAuth
	modeNotes
)

const toastDuration = 5 * time.Second

type Model struct {
	sessions SessionAPI
	notes    NotesAPI
	log      logging.Logger

	mode    uiMode
	width   int
	height  int
	initErr error

	events       <-chan session.Event
	cancelEvents func()

	auth  authState
	board notesState

	confirm *ConfirmController
	spin    spinner.Model

	toastText  string
	toastLevel toastLevel
	toastUntil time.Time
}

func NewModel(sessions SessionAPI, notes NotesAPI, log logging.Logger) *Model {
	if log == nil {
		log = logging.Nop()
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle
	events, cancel := sessions.Subscribe()
	return &Model{
		sessions:     sessions,
		notes:        notes,
		log:          log,
		mode:         modeInit,
		events:       events,
		cancelEvents: cancel,
		auth:         newAuthState(),
		board:        newNotesState(),
		confirm:      NewConfirmController(),
		spin:         spin,
	}
}

func Run(sessions SessionAPI, notes NotesAPI, log logging.Logger) error {
	program := tea.NewProgram(NewModel(sessions, notes, log), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		restoreCmd(m.sessions),
		waitForSessionEventCmd(m.events),
		tickCmd(),
		m.spin.Tick,
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reflow()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if m.mode == modeNotes {
			cmds = append(cmds, ensureFreshCmd(m.sessions))
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.mode != modeInit && !m.board.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case restoreMsg:
		return m, m.reduceRestore(msg)

	case sessionEventMsg:
		return m, m.reduceSessionEvent(msg)

	case sessionFreshMsg:
		// Expiry is announced on the event stream; a transport failure here
		// just means the next tick tries again.
		if msg.err != nil {
			m.log.Debug("session refresh attempt failed", logging.F("err", msg.err))
		}
		return m, nil

	case signInMsg:
		m.reduceSignIn(msg)
		return m, nil

	case signUpMsg:
		return m, m.reduceSignUp(msg)

	case switchToLoginMsg:
		m.reduceSwitchToLogin(msg)
		return m, nil

	case signOutMsg:
		m.reduceSignOut(msg)
		return m, nil

	case notesMsg:
		m.reduceNotes(msg)
		return m, nil

	case noteCreatedMsg:
		return m, m.reduceNoteCreated(msg)

	case noteSavedMsg:
		return m, m.reduceNoteSaved(msg)

	case noteDeletedMsg:
		return m, m.reduceNoteDeleted(msg)

	case clipboardResultMsg:
		if msg.err != nil {
			m.showErrorToast(msg.err.Error())
		} else {
			m.showInfoToast(msg.success)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.mode {
	case modeInit:
		return m, nil
	case modeInitError:
		if msg.String() == "q" || msg.String() == "enter" || msg.String() == "esc" {
			return m.quit()
		}
		return m, nil
	case modeAuth:
		return m, m.reduceAuthKey(msg)
	case modeNotes:
		return m, m.reduceNotesKey(msg)
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.cancelEvents != nil {
		m.cancelEvents()
	}
	return m, tea.Quit
}

func (m *Model) reduceRestore(msg restoreMsg) tea.Cmd {
	if m.mode != modeInit {
		return nil
	}
	if msg.err != nil {
		m.initErr = msg.err
		m.mode = modeInitError
		m.log.Error("session restore failed", logging.F("err", msg.err))
		return nil
	}
	if msg.session.Active() {
		m.enterNotes()
		return m.beginNotesLoad()
	}
	m.enterAuth("")
	return nil
}

// reduceSessionEvent is the only place the visible region follows the
// session state. Commands that change the session never switch regions
// themselves; they wait for their event to arrive here.
func (m *Model) reduceSessionEvent(msg sessionEventMsg) tea.Cmd {
	if !msg.ok {
		return nil
	}
	cmds := []tea.Cmd{waitForSessionEventCmd(m.events)}
	if msg.event.Session.Active() {
		if m.mode != modeNotes {
			m.enterNotes()
			cmds = append(cmds, m.beginNotesLoad())
		}
	} else if m.mode != modeAuth {
		m.enterAuth("You have been signed out.")
	}
	return tea.Batch(cmds...)
}

func (m *Model) enterNotes() {
	m.mode = modeNotes
	m.clearToast()
	m.confirm.Close()
	m.board = newNotesState()
	m.auth = newAuthState()
	m.reflow()
}

func (m *Model) enterAuth(notice string) {
	m.mode = modeAuth
	m.clearToast()
	m.confirm.Close()
	m.board = newNotesState()
	m.auth = newAuthState()
	m.auth.info = notice
	m.auth.focusCurrent()
	m.reflow()
}

func (m *Model) reflow() {
	m.auth.resize(m.width)
	m.board.resize(m.width, m.height)
}

func (m *Model) View() string {
	switch m.mode {
	case modeInit:
		return "\n  " + m.spin.View() + " Starting up..."
	case modeInitError:
		var b strings.Builder
		b.WriteString("\n  " + errorTextStyle.Render("Could not reach the notes backend:"))
		b.WriteString("\n  " + errorTextStyle.Render(m.initErr.Error()))
		b.WriteString("\n\n  " + helpStyle.Render("press q to quit"))
		return b.String()
	case modeAuth:
		return m.viewAuth()
	case modeNotes:
		return m.viewNotes()
	}
	return ""
}

func (m *Model) headerLine(title string) string {
	left := headerStyle.Render(" notable ") + " " + title
	email := m.sessions.Email()
	if email == "" || m.width <= 0 {
		return left
	}
	right := statusStyle.Render(truncatePlain(email, 48) + " ")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}
