package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	sectionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	sectionActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	spinnerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	tabActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Bold(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236"))

	errorTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	infoTextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))

	noteTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	noteMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)

	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	cardSelectedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("75")).Padding(0, 1)
	cardEditingStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("179")).Padding(0, 1)

	confirmTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	confirmBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208")).Padding(0, 1)

	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
