package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/eap/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style used for an item status.
func StatusStyle(s domain.ItemStatus) lipgloss.Style {
	switch s {
	case domain.StatusCompleted:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusBlocked:
		return StyleRed
	case domain.StatusPaused:
		return StyleBlue
	case domain.StatusCancelled:
		return StyleDim
	default:
		return StyleFg
	}
}

// StatusPill returns a colored status indicator such as "● In Progress".
func StatusPill(s domain.ItemStatus) string {
	switch s {
	case domain.StatusNotStarted:
		return StatusStyle(s).Render("○ Not Started")
	case domain.StatusInProgress:
		return StatusStyle(s).Render("● In Progress")
	case domain.StatusCompleted:
		return StatusStyle(s).Render("✔ Completed")
	case domain.StatusPaused:
		return StatusStyle(s).Render("‖ Paused")
	case domain.StatusCancelled:
		return StatusStyle(s).Render("✖ Cancelled")
	case domain.StatusBlocked:
		return StatusStyle(s).Render("⊘ Blocked")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
