package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const confirmMaxWidth = 60

// ConfirmController is a modal yes/no prompt. While it is open it owns the
// keyboard.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	// Cancel is the safe default.
	c.selected = 1
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
	c.confirmLabel = ""
	c.cancelLabel = ""
	c.selected = 0
}

func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if c == nil || !c.active {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "q":
		return true, confirmChoiceCancel
	case "left", "h":
		c.selected = 0
		return true, confirmChoiceNone
	case "right", "l":
		c.selected = 1
		return true, confirmChoiceNone
	case "tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone
	case "y":
		return true, confirmChoiceConfirm
	case "n":
		return true, confirmChoiceCancel
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	return true, confirmChoiceNone
}

func (c *ConfirmController) View(maxWidth int) string {
	if c == nil || !c.active {
		return ""
	}
	width := confirmMaxWidth
	if maxWidth > 0 && maxWidth-4 < width {
		width = max(24, maxWidth-4)
	}
	contentWidth := width - 4

	title := c.title
	if title == "" {
		title = "Confirm"
	}
	lines := []string{confirmTitleStyle.Render(truncateToWidth(title, contentWidth))}
	if c.message != "" {
		wrapped := xansi.Hardwrap(c.message, contentWidth, true)
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}

	confirm := "[ " + c.confirmLabel + " ]"
	cancel := "[ " + c.cancelLabel + " ]"
	if c.selected == 0 {
		confirm = selectedStyle.Render(confirm)
	} else {
		cancel = selectedStyle.Render(cancel)
	}
	lines = append(lines, "", confirm+"  "+cancel)

	box := confirmBorderStyle.Width(width).Render(strings.Join(lines, "\n"))
	indent := 2
	if maxWidth > width+4 {
		indent = (maxWidth - width) / 2
	}
	return indentBlock(box, indent)
}
