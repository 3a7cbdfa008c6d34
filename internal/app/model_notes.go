package app

import (
	"strings"
	"time"

	"notable/internal/app/sanitizer"
	"notable/internal/types"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type notesFocus int

const (
	focusCreate notesFocus = iota
	focusList
)

const (
	createContentHeight = 4
	editContentHeight   = 6
	noteTitleLimit      = 200
)

// Remote note text is untrusted; strip terminal escapes before it reaches
// the screen.
var (
	displaySanitizer = sanitizer.NewTerminalSanitizer(sanitizer.DefaultConfig())
	titleSanitizer   = sanitizer.NewTerminalSanitizer(sanitizer.SingleLineConfig())
)

type notesState struct {
	createTitle   textinput.Model
	createContent textarea.Model
	createField   int
	createBusy    bool
	createErr     string

	notes    []*types.Note
	loading  bool
	loadErr  string
	selected int

	focus notesFocus
	edit  *editState

	pendingDelete string
	signOutBusy   bool

	preview bool
	vp      viewport.Model
}

// editState is the per-card editing buffer. Only one card can be in the
// editing state at a time, and a refetch always drops it.
type editState struct {
	id      string
	title   textinput.Model
	content textarea.Model
	field   int
	busy    bool
}

func newNotesState() notesState {
	title := textinput.New()
	title.Placeholder = "Note title"
	title.CharLimit = noteTitleLimit
	title.Width = 60
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Write your note here... (markdown welcome)"
	content.CharLimit = 0
	content.ShowLineNumbers = false
	content.SetWidth(60)
	content.SetHeight(createContentHeight)

	return notesState{
		createTitle:   title,
		createContent: content,
		focus:         focusCreate,
		vp:            viewport.New(80, 20),
	}
}

func (n *notesState) resize(width, height int) {
	inner := 60
	if width > 0 {
		inner = max(20, width-6)
	}
	n.createTitle.Width = inner
	n.createContent.SetWidth(inner)
	if n.edit != nil {
		n.edit.title.Width = inner
		n.edit.content.SetWidth(inner)
	}
	if width > 0 {
		n.vp.Width = width
	}
	if height > 0 {
		n.vp.Height = max(5, height-14)
	}
}

func (n *notesState) selectedNote() *types.Note {
	if n.selected < 0 || n.selected >= len(n.notes) {
		return nil
	}
	return n.notes[n.selected]
}

func (n *notesState) clampSelection() {
	if n.selected >= len(n.notes) {
		n.selected = len(n.notes) - 1
	}
	if n.selected < 0 {
		n.selected = 0
	}
}

func (n *notesState) focusCreateField() {
	if n.createField == 0 {
		n.createTitle.Focus()
		n.createContent.Blur()
	} else {
		n.createTitle.Blur()
		n.createContent.Focus()
	}
}

func (n *notesState) blurCreate() {
	n.createTitle.Blur()
	n.createContent.Blur()
}

func (m *Model) beginNotesLoad() tea.Cmd {
	if m.board.loading {
		return nil
	}
	m.board.loading = true
	m.board.loadErr = ""
	return tea.Batch(fetchNotesCmd(m.notes), m.spin.Tick)
}

func (m *Model) reduceNotes(msg notesMsg) {
	if m.mode != modeNotes {
		return
	}
	m.board.loading = false
	// A refetch replaces the whole list; any card that was in the editing
	// state reverts to display.
	m.board.edit = nil
	if msg.err != nil {
		m.board.loadErr = errText(msg.err)
		return
	}
	m.board.loadErr = ""
	m.board.notes = msg.notes
	m.board.clampSelection()
}

func (m *Model) reduceNoteCreated(msg noteCreatedMsg) tea.Cmd {
	if m.mode != modeNotes {
		return nil
	}
	m.board.createBusy = false
	if msg.err != nil {
		m.showErrorToast("Could not add note: " + errText(msg.err))
		return nil
	}
	m.board.createTitle.SetValue("")
	m.board.createContent.SetValue("")
	m.board.createField = 0
	if m.board.focus == focusCreate {
		m.board.focusCreateField()
	}
	m.showInfoToast("Note added!")
	return m.beginNotesLoad()
}

func (m *Model) reduceNoteSaved(msg noteSavedMsg) tea.Cmd {
	if m.mode != modeNotes {
		return nil
	}
	edit := m.board.edit
	if edit == nil || edit.id != msg.id {
		return nil
	}
	edit.busy = false
	if msg.err != nil {
		// The buffer survives a failed save so nothing typed is lost.
		m.showErrorToast("Could not save note: " + errText(msg.err))
		return nil
	}
	m.board.edit = nil
	m.showInfoToast("Note updated!")
	return m.beginNotesLoad()
}

func (m *Model) reduceNoteDeleted(msg noteDeletedMsg) tea.Cmd {
	if m.mode != modeNotes {
		return nil
	}
	m.board.pendingDelete = ""
	if msg.err != nil {
		m.showErrorToast("Could not delete note: " + errText(msg.err))
		return nil
	}
	m.showInfoToast("Note deleted!")
	return m.beginNotesLoad()
}

func (m *Model) reduceSignOut(msg signOutMsg) {
	m.board.signOutBusy = false
	if msg.err != nil {
		// The backend still considers the session live, so the notes region
		// stays put.
		m.showErrorToast("Sign out failed: " + errText(msg.err))
	}
}

func (m *Model) reduceNotesKey(msg tea.KeyMsg) tea.Cmd {
	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		if !handled {
			return nil
		}
		switch choice {
		case confirmChoiceConfirm:
			m.confirm.Close()
			return m.deleteConfirmed()
		case confirmChoiceCancel:
			m.confirm.Close()
			m.board.pendingDelete = ""
		}
		return nil
	}
	if m.board.edit != nil {
		return m.reduceEditKey(msg)
	}
	switch msg.String() {
	case "ctrl+o":
		return m.requestSignOut()
	}
	if m.board.focus == focusCreate {
		return m.reduceCreateKey(msg)
	}
	return m.reduceListKey(msg)
}

func (m *Model) requestSignOut() tea.Cmd {
	if m.board.signOutBusy {
		return nil
	}
	m.board.signOutBusy = true
	return signOutCmd(m.sessions)
}

func (m *Model) reduceCreateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		if m.board.createField == 0 {
			m.board.createField = 1
			m.board.focusCreateField()
		} else {
			m.board.focus = focusList
			m.board.blurCreate()
		}
		return nil
	case "shift+tab":
		if m.board.createField == 1 {
			m.board.createField = 0
			m.board.focusCreateField()
		} else {
			m.board.focus = focusList
			m.board.blurCreate()
		}
		return nil
	case "esc":
		m.board.focus = focusList
		m.board.blurCreate()
		m.board.createErr = ""
		return nil
	case "ctrl+s":
		return m.submitCreate()
	case "enter":
		if m.board.createField == 0 {
			m.board.createField = 1
			m.board.focusCreateField()
			return nil
		}
	}
	var cmd tea.Cmd
	if m.board.createField == 0 {
		m.board.createTitle, cmd = m.board.createTitle.Update(msg)
	} else {
		m.board.createContent, cmd = m.board.createContent.Update(msg)
	}
	return cmd
}

// submitCreate rejects an empty title locally; the backend never sees the
// request.
func (m *Model) submitCreate() tea.Cmd {
	if m.board.createBusy {
		return nil
	}
	title := strings.TrimSpace(m.board.createTitle.Value())
	if title == "" {
		m.board.createErr = "Title is required."
		return nil
	}
	m.board.createErr = ""
	m.board.createBusy = true
	return createNoteCmd(m.sessions, m.notes, title, m.board.createContent.Value())
}

func (m *Model) reduceListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		if m.cancelEvents != nil {
			m.cancelEvents()
		}
		return tea.Quit
	case "tab", "n":
		m.board.focus = focusCreate
		m.board.createField = 0
		m.board.focusCreateField()
		return nil
	case "j", "down":
		if m.board.selected < len(m.board.notes)-1 {
			m.board.selected++
		}
		return nil
	case "k", "up":
		if m.board.selected > 0 {
			m.board.selected--
		}
		return nil
	case "g", "home":
		m.board.selected = 0
		return nil
	case "G", "end":
		m.board.selected = max(0, len(m.board.notes)-1)
		return nil
	case "e", "enter":
		m.enterEdit()
		return nil
	case "d", "delete":
		m.requestDelete()
		return nil
	case "y":
		return m.copySelectedNote()
	case "p":
		m.board.preview = !m.board.preview
		return nil
	case "pgdown":
		m.board.vp.HalfViewDown()
		return nil
	case "pgup":
		m.board.vp.HalfViewUp()
		return nil
	case "r":
		return m.beginNotesLoad()
	}
	return nil
}

func (m *Model) enterEdit() {
	note := m.board.selectedNote()
	if note == nil || m.board.edit != nil {
		return
	}
	title := textinput.New()
	title.CharLimit = noteTitleLimit
	title.SetValue(note.Title)
	title.Focus()

	content := textarea.New()
	content.CharLimit = 0
	content.ShowLineNumbers = false
	content.SetHeight(editContentHeight)
	content.SetValue(note.Content)

	m.board.edit = &editState{id: note.ID, title: title, content: content}
	m.board.resize(m.width, m.height)
}

func (m *Model) reduceEditKey(msg tea.KeyMsg) tea.Cmd {
	edit := m.board.edit
	switch msg.String() {
	case "esc":
		if edit.busy {
			return nil
		}
		// Cancel discards the buffer and refetches, so the card shows
		// backend truth rather than whatever was last rendered.
		m.board.edit = nil
		return m.beginNotesLoad()
	case "tab", "shift+tab":
		if edit.field == 0 {
			edit.field = 1
			edit.title.Blur()
			edit.content.Focus()
		} else {
			edit.field = 0
			edit.content.Blur()
			edit.title.Focus()
		}
		return nil
	case "ctrl+s":
		return m.submitEdit()
	case "enter":
		if edit.field == 0 {
			edit.field = 1
			edit.title.Blur()
			edit.content.Focus()
			return nil
		}
	}
	var cmd tea.Cmd
	if edit.field == 0 {
		edit.title, cmd = edit.title.Update(msg)
	} else {
		edit.content, cmd = edit.content.Update(msg)
	}
	return cmd
}

func (m *Model) submitEdit() tea.Cmd {
	edit := m.board.edit
	if edit == nil || edit.busy {
		return nil
	}
	title := strings.TrimSpace(edit.title.Value())
	if title == "" {
		m.showWarningToast("Title is required.")
		return nil
	}
	edit.busy = true
	return saveNoteCmd(m.notes, edit.id, title, edit.content.Value())
}

func (m *Model) requestDelete() {
	note := m.board.selectedNote()
	if note == nil || m.board.pendingDelete != "" {
		return
	}
	m.board.pendingDelete = note.ID
	title := titleSanitizer.Sanitize(note.Title)
	m.confirm.Open("Delete note", "Delete \""+title+"\"? This cannot be undone.", "Delete", "Cancel")
}

func (m *Model) deleteConfirmed() tea.Cmd {
	id := m.board.pendingDelete
	if id == "" {
		return nil
	}
	return deleteNoteCmd(m.notes, id)
}

func (m *Model) copySelectedNote() tea.Cmd {
	note := m.board.selectedNote()
	if note == nil {
		return nil
	}
	return copyNoteCmd(note.Content, "Note copied to clipboard")
}

func (m *Model) viewNotes() string {
	var b strings.Builder
	b.WriteString(m.headerLine(statusStyle.Render("your notes")))
	b.WriteString("\n\n")
	b.WriteString(m.viewCreateForm())
	b.WriteString("\n")

	if m.confirm.IsOpen() {
		b.WriteString(m.confirm.View(m.width))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewNoteList())
	}

	help := "tab: new note • j/k: select • e: edit • d: delete • y: copy • p: preview • r: refresh • ctrl+o: sign out • q: quit"
	if m.board.focus == focusCreate {
		help = "tab: next field • ctrl+s: add note • esc: back to list • ctrl+o: sign out"
	}
	if m.board.edit != nil {
		help = "tab: switch field • ctrl+s: save • esc: cancel"
	}
	b.WriteString("\n" + helpStyle.Render("  "+help))
	if line := m.toastLine(m.width); line != "" {
		b.WriteString("\n" + line)
	}
	return b.String()
}

func (m *Model) viewCreateForm() string {
	var b strings.Builder
	heading := "Add a Note"
	if m.board.focus == focusCreate {
		heading = sectionActiveStyle.Render(heading)
	} else {
		heading = sectionStyle.Render(heading)
	}
	b.WriteString("  " + heading + "\n")
	b.WriteString("  " + m.board.createTitle.View() + "\n")
	b.WriteString(indentBlock(m.board.createContent.View(), 2) + "\n")
	if m.board.createBusy {
		b.WriteString("  " + statusStyle.Render("Adding...") + "\n")
	}
	if m.board.createErr != "" {
		b.WriteString("  " + errorTextStyle.Render(m.board.createErr) + "\n")
	}
	return b.String()
}

func (m *Model) viewNoteList() string {
	if m.board.loading && len(m.board.notes) == 0 {
		return "  " + m.spin.View() + " Loading notes...\n"
	}
	if m.board.loadErr != "" {
		return "  " + errorTextStyle.Render("Could not load notes: "+m.board.loadErr) + "\n"
	}
	if len(m.board.notes) == 0 {
		return "  " + statusStyle.Render("No notes yet. Press tab to write your first one.") + "\n"
	}

	cardWidth := 76
	if m.width > 0 {
		cardWidth = max(30, m.width-4)
	}
	var cards []string
	for i, note := range m.board.notes {
		if m.board.edit != nil && m.board.edit.id == note.ID {
			cards = append(cards, m.renderEditCard(cardWidth))
			continue
		}
		cards = append(cards, m.renderNoteCard(note, i == m.board.selected && m.board.focus == focusList, cardWidth))
	}

	starts := make([]int, len(cards))
	total := 0
	for i, card := range cards {
		starts[i] = total
		total += lipgloss.Height(card)
	}
	vp := &m.board.vp
	vp.SetContent(indentBlock(strings.Join(cards, "\n"), 2))
	if sel := m.board.selected; sel >= 0 && sel < len(cards) {
		start := starts[sel]
		end := start + lipgloss.Height(cards[sel])
		if start < vp.YOffset {
			vp.SetYOffset(start)
		} else if end > vp.YOffset+vp.Height {
			vp.SetYOffset(end - vp.Height)
		}
	}
	return vp.View() + "\n"
}

func (m *Model) renderNoteCard(note *types.Note, selected bool, width int) string {
	innerWidth := max(10, width-4)
	title := truncateToWidth(titleSanitizer.Sanitize(note.Title), innerWidth)
	lines := []string{noteTitleStyle.Render(title)}

	stamp := formatTimestamp(note.CreatedAt)
	if !note.UpdatedAt.IsZero() && note.UpdatedAt.Sub(note.CreatedAt) > time.Minute {
		stamp += " • edited " + formatTimestamp(note.UpdatedAt)
	}
	lines = append(lines, noteMetaStyle.Render(stamp))

	content := displaySanitizer.Sanitize(note.Content)
	if strings.TrimSpace(content) != "" {
		if m.board.preview {
			content = renderMarkdown(content, innerWidth)
		} else {
			content = xansi.Hardwrap(content, innerWidth, true)
		}
		lines = append(lines, content)
	}

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderEditCard(width int) string {
	edit := m.board.edit
	lines := []string{
		sectionActiveStyle.Render("Editing"),
		edit.title.View(),
		edit.content.View(),
	}
	if edit.busy {
		lines = append(lines, statusStyle.Render("Saving..."))
	}
	return cardEditingStyle.Width(width).Render(strings.Join(lines, "\n"))
}
