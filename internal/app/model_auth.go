package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type authTab int

const (
	authTabLogin authTab = iota
	authTabSignup
)

const authFieldLimit = 128

type authState struct {
	tab authTab

	loginEmail    textinput.Model
	loginPassword textinput.Model

	signupEmail    textinput.Model
	signupPassword textinput.Model
	signupConfirm  textinput.Model

	focus   int
	busy    bool
	errText string
	info    string
}

func newAuthState() authState {
	a := authState{
		loginEmail:     newAuthInput("you@example.com", false),
		loginPassword:  newAuthInput("password", true),
		signupEmail:    newAuthInput("you@example.com", false),
		signupPassword: newAuthInput("at least 6 characters", true),
		signupConfirm:  newAuthInput("repeat password", true),
	}
	a.focusCurrent()
	return a
}

func newAuthInput(placeholder string, secret bool) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = authFieldLimit
	input.Width = 40
	if secret {
		input.EchoMode = textinput.EchoPassword
	}
	return input
}

func (a *authState) fields() []*textinput.Model {
	if a.tab == authTabLogin {
		return []*textinput.Model{&a.loginEmail, &a.loginPassword}
	}
	return []*textinput.Model{&a.signupEmail, &a.signupPassword, &a.signupConfirm}
}

func (a *authState) focusCurrent() {
	fields := a.fields()
	if a.focus >= len(fields) {
		a.focus = 0
	}
	for i, field := range fields {
		if i == a.focus {
			field.Focus()
		} else {
			field.Blur()
		}
	}
}

func (a *authState) cycleFocus(delta int) {
	fields := a.fields()
	a.focus = (a.focus + delta + len(fields)) % len(fields)
	a.focusCurrent()
}

func (a *authState) switchTab(tab authTab) {
	if a.tab == tab {
		return
	}
	a.tab = tab
	a.focus = 0
	a.errText = ""
	a.info = ""
	a.focusCurrent()
}

func (a *authState) resize(width int) {
	inputWidth := 40
	if width > 0 && width-8 < inputWidth {
		inputWidth = max(20, width-8)
	}
	for _, field := range []*textinput.Model{&a.loginEmail, &a.loginPassword, &a.signupEmail, &a.signupPassword, &a.signupConfirm} {
		field.Width = inputWidth
	}
}

func (m *Model) reduceAuthKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+t":
		if m.auth.busy {
			return nil
		}
		if m.auth.tab == authTabLogin {
			m.auth.switchTab(authTabSignup)
		} else {
			m.auth.switchTab(authTabLogin)
		}
		return nil
	case "tab", "down":
		m.auth.cycleFocus(1)
		return nil
	case "shift+tab", "up":
		m.auth.cycleFocus(-1)
		return nil
	case "enter":
		return m.submitAuth()
	case "esc":
		m.auth.errText = ""
		return nil
	}
	if m.auth.busy {
		return nil
	}
	field := m.auth.fields()[m.auth.focus]
	var cmd tea.Cmd
	*field, cmd = field.Update(msg)
	return cmd
}

// submitAuth hands credentials to the session manager. Local precondition
// failures come back on the same message path as backend rejections, so the
// form treats them alike.
func (m *Model) submitAuth() tea.Cmd {
	if m.auth.busy {
		return nil
	}
	m.auth.errText = ""
	m.auth.info = ""
	m.auth.busy = true
	if m.auth.tab == authTabLogin {
		return signInCmd(m.sessions, strings.TrimSpace(m.auth.loginEmail.Value()), m.auth.loginPassword.Value())
	}
	return signUpCmd(
		m.sessions,
		strings.TrimSpace(m.auth.signupEmail.Value()),
		m.auth.signupPassword.Value(),
		m.auth.signupConfirm.Value(),
	)
}

func (m *Model) reduceSignIn(msg signInMsg) {
	if m.mode != modeAuth {
		return
	}
	m.auth.busy = false
	if msg.err != nil {
		m.auth.errText = errText(msg.err)
	}
	// Success switches regions through the session event, not here.
}

func (m *Model) reduceSignUp(msg signUpMsg) tea.Cmd {
	if m.mode != modeAuth {
		return nil
	}
	m.auth.busy = false
	if msg.err != nil {
		m.auth.errText = errText(msg.err)
		return nil
	}
	if msg.session.Active() {
		// Auto-confirmed account; the signed-in event moves us to notes.
		return nil
	}
	m.auth.signupEmail.SetValue("")
	m.auth.signupPassword.SetValue("")
	m.auth.signupConfirm.SetValue("")
	m.auth.info = "Account created! Check your email to confirm, then sign in."
	return switchToLoginCmd(msg.email)
}

func (m *Model) reduceSwitchToLogin(msg switchToLoginMsg) {
	if m.mode != modeAuth {
		return
	}
	m.auth.switchTab(authTabLogin)
	m.auth.loginEmail.SetValue(msg.email)
	m.auth.loginPassword.SetValue("")
	m.auth.info = "Account created! Please sign in."
	m.auth.focus = 1
	m.auth.focusCurrent()
}

func (m *Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(m.headerLine(statusStyle.Render("sign in to your notes")))
	b.WriteString("\n\n")

	loginTab := "  Sign In  "
	signupTab := "  Sign Up  "
	if m.auth.tab == authTabLogin {
		loginTab = tabActiveStyle.Render(loginTab)
		signupTab = tabInactiveStyle.Render(signupTab)
	} else {
		loginTab = tabInactiveStyle.Render(loginTab)
		signupTab = tabActiveStyle.Render(signupTab)
	}
	b.WriteString("  " + loginTab + " " + signupTab + "\n\n")

	labels := []string{"Email", "Password"}
	if m.auth.tab == authTabSignup {
		labels = []string{"Email", "Password", "Confirm password"}
	}
	for i, field := range m.auth.fields() {
		b.WriteString("  " + labelStyle.Render(labels[i]) + "\n")
		b.WriteString("  " + field.View() + "\n\n")
	}

	if m.auth.busy {
		action := "Signing in..."
		if m.auth.tab == authTabSignup {
			action = "Signing up..."
		}
		b.WriteString("  " + statusStyle.Render(action) + "\n")
	}
	if m.auth.errText != "" {
		b.WriteString("  " + errorTextStyle.Render(m.auth.errText) + "\n")
	}
	if m.auth.info != "" {
		b.WriteString("  " + infoTextStyle.Render(m.auth.info) + "\n")
	}

	b.WriteString("\n  " + helpStyle.Render("tab: next field • enter: submit • ctrl+t: switch form • ctrl+c: quit"))
	if line := m.toastLine(m.width); line != "" {
		b.WriteString("\n" + line)
	}
	return b.String()
}
