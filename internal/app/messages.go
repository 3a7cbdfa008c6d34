package app

import (
	"time"

	"notable/internal/session"
	"notable/internal/types"
)

type restoreMsg struct {
	session *types.Session
	err     error
}

// sessionEventMsg delivers one event from the session manager's change
// stream. ok is false when the stream closed.
type sessionEventMsg struct {
	event session.Event
	ok    bool
}

type signInMsg struct {
	err error
}

type signUpMsg struct {
	session *types.Session
	email   string
	err     error
}

type signOutMsg struct {
	err error
}

type sessionFreshMsg struct {
	err error
}

type notesMsg struct {
	notes []*types.Note
	err   error
}

type noteCreatedMsg struct {
	note *types.Note
	err  error
}

type noteSavedMsg struct {
	id  string
	err error
}

type noteDeletedMsg struct {
	id  string
	err error
}

// switchToLoginMsg fires after the post-signup pause, carrying the email to
// prefill on the login tab.
type switchToLoginMsg struct {
	email string
}

type clipboardResultMsg struct {
	success string
	err     error
}

type tickMsg time.Time
