package app

import (
	"context"
	"time"

	"notable/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// Pause before moving a freshly signed-up user to the login tab, long
	// enough to read the confirmation notice.
	signupSwitchDelay = 2 * time.Second
	tickInterval      = time.Second
)

func restoreCmd(api SessionAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		session, err := api.Restore(ctx)
		return restoreMsg{session: session, err: err}
	}
}

// waitForSessionEventCmd blocks on the manager's change stream and is
// re-armed by the model after every delivery, so region switches always
// arrive through the same message.
func waitForSessionEventCmd(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		return sessionEventMsg{event: event, ok: ok}
	}
}

func signInCmd(api SessionAPI, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := api.SignIn(ctx, email, password)
		return signInMsg{err: err}
	}
}

func signUpCmd(api SessionAPI, email, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		session, err := api.SignUp(ctx, email, password, confirm)
		return signUpMsg{session: session, email: email, err: err}
	}
}

func signOutCmd(api SessionAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return signOutMsg{err: api.SignOut(ctx)}
	}
}

func ensureFreshCmd(api SessionAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return sessionFreshMsg{err: api.EnsureFresh(ctx)}
	}
}

func fetchNotesCmd(api NotesAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		notes, err := api.ListNotes(ctx)
		return notesMsg{notes: notes, err: err}
	}
}

// createNoteCmd re-resolves the signed-in identity right before the write,
// so a revoked session fails here instead of inserting under a stale user.
func createNoteCmd(sessions SessionAPI, notes NotesAPI, title, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := sessions.CurrentUser(ctx)
		if err != nil {
			return noteCreatedMsg{err: err}
		}
		note, err := notes.CreateNote(ctx, title, content, user.ID)
		return noteCreatedMsg{note: note, err: err}
	}
}

func saveNoteCmd(api NotesAPI, id, title, content string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := api.UpdateNote(ctx, id, title, content)
		return noteSavedMsg{id: id, err: err}
	}
}

func deleteNoteCmd(api NotesAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return noteDeletedMsg{id: id, err: api.DeleteNote(ctx, id)}
	}
}

func copyNoteCmd(text, success string) tea.Cmd {
	return func() tea.Msg {
		if _, err := copyTextToClipboard(text); err != nil {
			return clipboardResultMsg{err: err}
		}
		return clipboardResultMsg{success: success}
	}
}

func switchToLoginCmd(email string) tea.Cmd {
	return tea.Tick(signupSwitchDelay, func(time.Time) tea.Msg {
		return switchToLoginMsg{email: email}
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
