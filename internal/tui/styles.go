package tui

import (
	"github.com/charmbracelet/lipgloss"

	"APIDirectory/internal/catalog"
)

var (
	colorPrimary = lipgloss.Color("#5B8DEF")
	colorMuted   = lipgloss.Color("#8C8C8C")
	colorText    = lipgloss.Color("#EEEEEE")
	colorDanger  = lipgloss.Color("#FF5252")
	colorGreen   = lipgloss.Color("#00E676")
	colorBlue    = lipgloss.Color("#00BFFF")
	colorPurple  = lipgloss.Color("#B388FF")
	colorSurface = lipgloss.Color("#2A2A3C")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	styleSubtitle = lipgloss.NewStyle().Foreground(colorMuted)

	styleFacet         = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	styleFacetSelected = lipgloss.NewStyle().Bold(true).Foreground(colorText).Background(colorPrimary).Padding(0, 1)

	styleCounter = lipgloss.NewStyle().Foreground(colorMuted)
	styleCount   = lipgloss.NewStyle().Bold(true).Foreground(colorText)

	styleEntryName = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	styleCategory  = lipgloss.NewStyle().Foreground(colorMuted).Background(colorSurface).Padding(0, 1)
	styleDesc      = lipgloss.NewStyle().Foreground(colorMuted)
	styleLink      = lipgloss.NewStyle().Foreground(colorPrimary).Underline(true)

	styleEmpty = lipgloss.NewStyle().Foreground(colorMuted).Padding(1, 2)
	styleError = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDanger).Padding(1, 2)
	styleHelp  = lipgloss.NewStyle().Foreground(colorMuted)
)

// authBadge colours the auth label by its display class.
func authBadge(e catalog.Entry) string {
	label := e.Auth
	if label == "" {
		label = "No"
	}

	st := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch e.AuthMode() {
	case catalog.AuthNone:
		st = st.Foreground(colorGreen)
	case catalog.AuthKey:
		st = st.Foreground(colorBlue)
	case catalog.AuthOAuth:
		st = st.Foreground(colorPurple)
	default:
		st = st.Foreground(colorMuted)
	}
	return st.Render(label)
}
